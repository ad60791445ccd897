package triage

import (
	"fmt"
	"regexp"
	"strings"
)

// phonePatterns are tried in priority order anywhere in the residual text;
// the first pattern that produces any match wins and the remaining patterns
// are not consulted. No attempt is made to find additional numbers or to
// prefer a "better" match among patterns.
var phonePatterns = []*regexp.Regexp{
	// Optionally-parenthesized area code with flexible separators and an
	// optional country code: "(713) 854-9439", "713-854.9439", "+1 713 854 9439".
	regexp.MustCompile(`(?:\+?1[\s.-]+)?\(?\d{3}\)?[\s.-]*\d{3}[\s.-]*\d{4}`),
	// Dash/dot/space triple grouping.
	regexp.MustCompile(`\d{3}[\s.-]\d{3}[\s.-]\d{4}`),
	// Bare run of ten digits.
	regexp.MustCompile(`\d{10}`),
}

// PhoneResult holds the callback-number extraction outcome.
type PhoneResult struct {
	Status Status
	Number string
}

// ExtractPhone finds the first callback number in the residual text. The
// matched span, decorative characters included, is removed and surrounding
// whitespace re-collapsed. Matches that recover exactly ten digits are
// re-templated as (XXX) XXX-XXXX; anything else is returned as matched.
func ExtractPhone(text string) (PhoneResult, string) {
	for _, re := range phonePatterns {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		match := text[loc[0]:loc[1]]
		residual := collapseWhitespace(text[:loc[0]] + text[loc[1]:])
		return PhoneResult{Status: StatusMatched, Number: formatPhone(match)}, residual
	}
	return PhoneResult{Status: StatusNoMatch}, text
}

func formatPhone(match string) string {
	digits := digitsOnly(match)
	if len(digits) != 10 {
		return strings.TrimSpace(match)
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
