package triage

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RedactedMarker replaces a patient name the answering service redacted.
const RedactedMarker = "[REDACTED]"

// labeledNameRe matches an explicit name label followed by two or more
// consecutive all-caps word tokens. The label match is case-insensitive but
// the name tokens are not: mixed-case words are left to the generic
// heuristic.
var labeledNameRe = regexp.MustCompile(`\b(?:(?i:PATIENT\s+NAME|PATIENT|NAME|PT))\s*:\s*((?:[A-Z][A-Z'-]+\s+)+[A-Z][A-Z'-]+)`)

// nameStopwords rejects generic-heuristic candidates whose first or last
// token is doctor/date/status/medical vocabulary rather than a name.
var nameStopwords = map[string]struct{}{
	"dr": {}, "dob": {}, "ob": {}, "gyn": {}, "patient": {}, "name": {},
	"urgent": {}, "stat": {}, "postpartum": {}, "pregnant": {}, "weeks": {},
	"wks": {}, "breast": {}, "pain": {}, "severe": {}, "bleeding": {},
	"fever": {}, "nausea": {}, "mastitis": {}, "cramping": {}, "call": {},
	"callback": {}, "please": {}, "message": {}, "service": {}, "answering": {},
	"concerns": {}, "redacted": {}, "not": {}, "with": {}, "about": {},
}

// labelWords are stripped from the front of a positionally-captured name.
var labelWords = map[string]struct{}{"patient": {}, "name": {}}

// NameResult holds the patient-name resolution outcome.
type NameResult struct {
	Status Status
	Name   string
}

// ResolvePatientName tries, in order, explicit name labels, all-caps tokens
// positioned after the extracted doctor name, and a generic capitalized-word
// heuristic. It reads the original normalized text, not the chain residual,
// and never consumes spans.
func ResolvePatientName(normalized string, doctor DoctorResult) NameResult {
	if m := labeledNameRe.FindStringSubmatch(normalized); m != nil {
		return NameResult{Status: StatusMatched, Name: formatPatientName(m[1])}
	}

	if doctor.Status == StatusMatched {
		if raw := nameAfterDoctor(normalized, doctor.Raw); raw != "" {
			return NameResult{Status: StatusMatched, Name: formatPatientName(raw)}
		}
	}

	if raw := genericNameCandidate(normalized); raw != "" {
		return NameResult{Status: StatusMatched, Name: formatPatientName(raw)}
	}

	return NameResult{Status: StatusNoMatch}
}

// nameAfterDoctor collects two or more consecutive all-caps tokens
// immediately following the doctor-name occurrence, stopping at a
// phone-like digit run, a DOB label, a doubled comma, or end of string.
// Label words captured incidentally ("PATIENT", "PATIENT NAME") are
// stripped before the result is returned.
func nameAfterDoctor(normalized, doctorRaw string) string {
	idx := strings.Index(normalized, doctorRaw)
	if idx < 0 {
		return ""
	}
	tail := normalized[idx+len(doctorRaw):]

	var tokens []string
	for _, field := range strings.Fields(tail) {
		if strings.Contains(field, ",,") {
			break
		}
		word := strings.Trim(field, ".,;:")
		if word == "" || hasDigit(word) || strings.HasPrefix(strings.ToUpper(word), "DOB") {
			break
		}
		if !isAllCapsWord(word) {
			break
		}
		tokens = append(tokens, word)
	}
	if len(tokens) < 2 {
		return ""
	}

	// Strip leading label words.
	for len(tokens) > 0 {
		if _, ok := labelWords[strings.ToLower(tokens[0])]; !ok {
			break
		}
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return ""
	}
	return strings.Join(tokens, " ")
}

// genericNameCandidate scans for two to three consecutive Capitalized
// mixed-case words and accepts the first candidate whose first and last
// tokens pass the stopword filter. A middle token is included only when it
// passes the filter too.
func genericNameCandidate(normalized string) string {
	fields := strings.Fields(normalized)
	words := make([]string, len(fields))
	caps := make([]bool, len(fields))
	for i, f := range fields {
		w := strings.Trim(f, ".,;:!?")
		words[i] = w
		caps[i] = isCapitalizedWord(w)
	}

	for i := 0; i < len(words)-1; i++ {
		if !caps[i] || !caps[i+1] {
			continue
		}
		first := words[i]
		if isStopword(first) {
			continue
		}

		if i+2 < len(words) && caps[i+2] {
			middle, last := words[i+1], words[i+2]
			if !isStopword(last) {
				if isStopword(middle) {
					return first + " " + last
				}
				return first + " " + middle + " " + last
			}
			// Fall through to the two-token form.
		}

		if second := words[i+1]; !isStopword(second) {
			return first + " " + second
		}
	}
	return ""
}

// formatPatientName Title-cases each word; a literal redaction keyword
// short-circuits to the fixed marker instead.
func formatPatientName(name string) string {
	if strings.Contains(strings.ToUpper(name), "REDACTED") {
		return RedactedMarker
	}
	// cases.Caser is stateful, so build one per call to keep this function
	// safe for concurrent use.
	return cases.Title(language.English).String(strings.ToLower(name))
}

func isStopword(word string) bool {
	_, ok := nameStopwords[strings.ToLower(word)]
	return ok
}

// isAllCapsWord reports whether word is letters, apostrophes, and hyphens
// with every letter uppercase.
func isAllCapsWord(word string) bool {
	hasLetter := false
	for _, r := range word {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r == '\'' || r == '-':
		default:
			return false
		}
	}
	return hasLetter
}

// isCapitalizedWord reports whether word is of the mixed-case Xxxx shape.
func isCapitalizedWord(word string) bool {
	if len(word) < 2 || word[0] < 'A' || word[0] > 'Z' {
		return false
	}
	for _, r := range word[1:] {
		switch {
		case r >= 'a' && r <= 'z':
		case r == '\'' || r == '-':
		default:
			return false
		}
	}
	return true
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
