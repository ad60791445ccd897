package triage

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// doctorRe anchors at the start of the normalized text: an optional "DR" or
// "DR." token (any case) followed by an all-caps surname token. Occurrences
// elsewhere in the message are never considered.
var doctorRe = regexp.MustCompile(`^(?:(?i:DR\.?)\s+)?([A-Z][A-Z'-]+)`)

// DoctorResult holds the attending-doctor extraction outcome.
type DoctorResult struct {
	Status  Status
	Surname string // re-capitalized, e.g. "Laberge"
	Raw     string // surname exactly as matched, for positional name lookup
}

// ExtractDoctor matches the doctor prefix at the start of text. On a match
// it returns the formatted surname and the residual after the matched span;
// otherwise the text passes through unchanged.
func ExtractDoctor(text string) (DoctorResult, string) {
	m := doctorRe.FindStringSubmatchIndex(text)
	if m == nil {
		return DoctorResult{Status: StatusNoMatch}, text
	}

	raw := text[m[2]:m[3]]
	residual := strings.TrimSpace(text[m[1]:])

	return DoctorResult{
		Status:  StatusMatched,
		Surname: capitalizeFirst(raw),
		Raw:     raw,
	}, residual
}

// capitalizeFirst lowercases s and re-capitalizes the first letter only:
// "LABERGE" → "Laberge", "O'BRIEN" → "O'brien".
func capitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
