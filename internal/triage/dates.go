package triage

import (
	"strconv"
	"strings"
	"time"

	"github.com/meridian-health/triage-cli/internal/model"
)

// twoDigitYearPivot splits two-digit years: tokens at or below it resolve
// into the 2000s, above it into the 1900s. "25" → 2025, "26" → 1926.
const twoDigitYearPivot = 25

// minValidYear is the oldest accepted date-of-birth year.
const minValidYear = 1900

// ResolveYear maps a two-digit year onto an absolute year using the pivot.
// Values of 100 or more pass through unchanged.
func ResolveYear(year int) int {
	switch {
	case year <= twoDigitYearPivot:
		return year + 2000
	case year <= 99:
		return year + 1900
	default:
		return year
	}
}

// DisambiguateDate splits an M/D/Y token on "/" or "-", resolves the year,
// and validates the result. now bounds the upper year check. Any violation
// (wrong part count, non-numeric parts, month or day out of range, resolved
// year outside [1900, now.Year()]) returns false with no date, even when all
// three integers parsed. Both the rule-based DOB extractor and the model
// path's date post-processing use this.
func DisambiguateDate(token string, now time.Time) (model.CalendarDate, bool) {
	parts := strings.FieldsFunc(token, func(r rune) bool {
		return r == '/' || r == '-'
	})
	if len(parts) != 3 {
		return model.CalendarDate{}, false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return model.CalendarDate{}, false
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return model.CalendarDate{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return model.CalendarDate{}, false
	}

	year = ResolveYear(year)
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return model.CalendarDate{}, false
	}
	if year < minValidYear || year > now.Year() {
		return model.CalendarDate{}, false
	}

	return model.CalendarDate{Year: year, Month: month, Day: day}, true
}
