package triage

import "regexp"

// obRule pairs a status pattern with its canonical phrasing.
type obRule struct {
	re     *regexp.Regexp
	phrase func(m []string) string
}

// obRules are checked in order, stopping at the first match anywhere in the
// residual. Postpartum-weeks detection outranks a literal "NOT OB" in the
// same message.
var obRules = []obRule{
	{
		re:     regexp.MustCompile(`(?i)POST\s*PARTUM\s*(\d+)\s*(?:WEEKS|WKS)`),
		phrase: func(m []string) string { return "Postpartum " + m[1] + " weeks" },
	},
	{
		re:     regexp.MustCompile(`(?i)\bNOT\s+OB\b`),
		phrase: func([]string) string { return "Not OB" },
	},
	{
		re:     regexp.MustCompile(`(?i)\bOB\b`),
		phrase: func([]string) string { return "OB" },
	},
	{
		re:     regexp.MustCompile(`(?i)\b(\d+)\s*(?:WEEKS|WKS)\s*(?:GA|GESTATION)?\b`),
		phrase: func(m []string) string { return m[1] + " weeks GA" },
	},
}

// OBStatusResult holds the obstetric-status extraction outcome.
type OBStatusResult struct {
	Status Status
	Phrase string
}

// ExtractOBStatus resolves the obstetric status from the residual text and
// removes the matched span on success.
func ExtractOBStatus(text string) (OBStatusResult, string) {
	for _, rule := range obRules {
		m := rule.re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		groups := []string{text[m[0]:m[1]]}
		if len(m) > 2 && m[2] >= 0 {
			groups = append(groups, text[m[2]:m[3]])
		}
		residual := collapseWhitespace(text[:m[0]] + text[m[1]:])
		return OBStatusResult{Status: StatusMatched, Phrase: rule.phrase(groups)}, residual
	}
	return OBStatusResult{Status: StatusNoMatch}, text
}
