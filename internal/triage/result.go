package triage

// Status discriminates extractor outcomes. MatchedInvalid marks the case
// where a pattern matched textually but its content failed validation (a
// DOB label with an impossible date), which callers must be able to tell
// apart from a plain miss.
type Status int

const (
	StatusNoMatch Status = iota
	StatusMatchedInvalid
	StatusMatched
)

// String implements fmt.Stringer for log fields.
func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusMatchedInvalid:
		return "matched_invalid"
	default:
		return "no_match"
	}
}
