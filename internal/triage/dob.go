package triage

import (
	"regexp"
	"time"

	"github.com/meridian-health/triage-cli/internal/model"
)

// dobRe matches a case-insensitive DOB label with optional colon and a
// M/D/Y date token using slash or dash separators.
var dobRe = regexp.MustCompile(`(?i)\bDOB:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)

// DOBResult holds the date-of-birth extraction outcome.
type DOBResult struct {
	Status Status
	Date   model.CalendarDate
}

// ExtractDOB looks for a labeled date of birth. A label that matched
// textually but whose date fails disambiguation yields StatusMatchedInvalid
// with the residual untouched; callers treat it like "no DOB" but the two
// outcomes stay distinguishable. On success the full span, label included,
// is removed from the residual.
func ExtractDOB(text string, now time.Time) (DOBResult, string) {
	m := dobRe.FindStringSubmatchIndex(text)
	if m == nil {
		return DOBResult{Status: StatusNoMatch}, text
	}

	date, ok := DisambiguateDate(text[m[2]:m[3]], now)
	if !ok {
		return DOBResult{Status: StatusMatchedInvalid}, text
	}

	residual := collapseWhitespace(text[:m[0]] + text[m[1]:])
	return DOBResult{Status: StatusMatched, Date: date}, residual
}
