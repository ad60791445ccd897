package triage

import (
	"time"

	"go.uber.org/zap"

	"github.com/meridian-health/triage-cli/internal/model"
)

// Parser runs the rule-based extraction chain: normalize, then doctor →
// phone → DOB → OB status each consuming the previous stage's residual,
// with the patient-name resolver reading the original normalized text and
// the complaint finalizer taking whatever is left. The chain is pure and
// safe for concurrent use; the clock is injectable so year validation is
// testable.
type Parser struct {
	now func() time.Time
}

// New returns a Parser using the wall clock.
func New() *Parser {
	return NewWithClock(time.Now)
}

// NewWithClock returns a Parser with an explicit clock.
func NewWithClock(now func() time.Time) *Parser {
	return &Parser{now: now}
}

// Parse extracts structured fields from a raw triage message. It never
// fails: every extractor degrades to "field absent" on malformed input, and
// for non-empty input the chief complaint is always populated.
func (p *Parser) Parse(raw string) model.ParsedTriageFields {
	normalized := Normalize(raw)
	if normalized == "" {
		return model.ParsedTriageFields{}
	}

	doctor, residual := ExtractDoctor(normalized)
	phone, residual := ExtractPhone(residual)
	dob, residual := ExtractDOB(residual, p.now())
	obStatus, residual := ExtractOBStatus(residual)
	name := ResolvePatientName(normalized, doctor)

	var fields model.ParsedTriageFields
	if doctor.Status == StatusMatched {
		fields.AttendingDoctor = doctor.Surname
	}
	if phone.Status == StatusMatched {
		fields.CallbackNumber = phone.Number
	}
	if dob.Status == StatusMatched {
		d := dob.Date
		fields.DateOfBirth = &d
	}
	if obStatus.Status == StatusMatched {
		fields.OBStatus = obStatus.Phrase
	}
	if name.Status == StatusMatched {
		fields.PatientName = name.Name
	}
	fields.ChiefComplaint = FinalizeComplaint(residual, raw)

	zap.L().Debug("rule chain complete",
		zap.Stringer("doctor", doctor.Status),
		zap.Stringer("phone", phone.Status),
		zap.Stringer("dob", dob.Status),
		zap.Stringer("ob_status", obStatus.Status),
		zap.Stringer("patient_name", name.Status),
	)

	return fields
}
