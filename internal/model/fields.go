package model

import "fmt"

// ExtractionSource identifies which path produced a parse result.
type ExtractionSource string

const (
	SourceModel ExtractionSource = "model"
	SourceRules ExtractionSource = "rules"
)

// CalendarDate is a date of birth without time or zone. Year is always
// four digits after disambiguation.
type CalendarDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String renders the date as MM/DD/YYYY.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Month, d.Day, d.Year)
}

// IsZero reports whether the date is unset.
func (d CalendarDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// ParsedTriageFields is the structured output of a single parse. Every field
// is optional except ChiefComplaint, which is always populated when the raw
// input was non-empty.
type ParsedTriageFields struct {
	AttendingDoctor string        `json:"attending_doctor,omitempty"`
	PatientName     string        `json:"patient_name,omitempty"`
	CallbackNumber  string        `json:"callback_number,omitempty"`
	DateOfBirth     *CalendarDate `json:"date_of_birth,omitempty"`
	OBStatus        string        `json:"ob_status,omitempty"`
	ChiefComplaint  string        `json:"chief_complaint,omitempty"`

	// Specialty-extended fields. Only the model-based path fills these, and
	// only when the active specialty profile recognizes them.
	GestationalAge string `json:"gestational_age,omitempty"`
	PatientAge     string `json:"patient_age,omitempty"`
	SafetyConcerns string `json:"safety_concerns,omitempty"`
}

// ParseOutcome pairs the extracted fields with the path that produced them,
// so callers can display or audit the extraction source.
type ParseOutcome struct {
	Fields ParsedTriageFields `json:"fields"`
	Source ExtractionSource   `json:"source"`
}
