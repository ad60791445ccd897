package triage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-health/triage-cli/internal/model"
)

var testNow = time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)

func TestResolveYear_PivotBoundaries(t *testing.T) {
	assert.Equal(t, 2025, ResolveYear(25))
	assert.Equal(t, 1926, ResolveYear(26))
	assert.Equal(t, 2000, ResolveYear(0))
	assert.Equal(t, 1999, ResolveYear(99))
	assert.Equal(t, 1993, ResolveYear(1993))
}

func TestDisambiguateDate_TwoDigitYears(t *testing.T) {
	d, ok := DisambiguateDate("01/15/97", testNow)
	require.True(t, ok)
	assert.Equal(t, model.CalendarDate{Year: 1997, Month: 1, Day: 15}, d)

	d, ok = DisambiguateDate("03/20/10", testNow)
	require.True(t, ok)
	assert.Equal(t, model.CalendarDate{Year: 2010, Month: 3, Day: 20}, d)
}

func TestDisambiguateDate_DashSeparators(t *testing.T) {
	d, ok := DisambiguateDate("6-30-1993", testNow)
	require.True(t, ok)
	assert.Equal(t, model.CalendarDate{Year: 1993, Month: 6, Day: 30}, d)
}

func TestDisambiguateDate_InvalidContent(t *testing.T) {
	cases := []string{
		"13/01/90",   // month out of range
		"12/32/90",   // day out of range
		"0/10/90",    // month zero
		"06/30/1899", // before 1900
		"06/30/2030", // after the reference year
		"06/30",      // missing part
		"06/30/19/93",
		"ab/cd/ef",
		"",
	}
	for _, token := range cases {
		_, ok := DisambiguateDate(token, testNow)
		assert.False(t, ok, "token %q", token)
	}
}

func TestDisambiguateDate_UpperBoundTracksClock(t *testing.T) {
	// "26" resolves to 1926, never the upcoming 2026.
	d, ok := DisambiguateDate("01/01/26", testNow)
	require.True(t, ok)
	assert.Equal(t, 1926, d.Year)

	// A four-digit year equal to the clock year is accepted.
	d, ok = DisambiguateDate("01/01/2025", testNow)
	require.True(t, ok)
	assert.Equal(t, 2025, d.Year)
}
