package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePatientName_LabeledMarker(t *testing.T) {
	res := ResolvePatientName("PATIENT NAME: JANE DOE cb 713", DoctorResult{})
	assert.Equal(t, StatusMatched, res.Status)
	assert.Equal(t, "Jane Doe", res.Name)
}

func TestResolvePatientName_ShortLabel(t *testing.T) {
	res := ResolvePatientName("PT: MARY ANN SMITH fever", DoctorResult{})
	assert.Equal(t, "Mary Ann Smith", res.Name)
}

func TestResolvePatientName_LabelRequiresTwoTokens(t *testing.T) {
	res := ResolvePatientName("NAME: JANE called earlier", DoctorResult{})
	assert.Equal(t, StatusNoMatch, res.Status)
}

func TestResolvePatientName_PositionalAfterDoctor(t *testing.T) {
	normalized := "DR LABERGE JANE DOE DOB:06/30/1993 fever"
	doctor, _ := ExtractDoctor(normalized)
	res := ResolvePatientName(normalized, doctor)
	assert.Equal(t, StatusMatched, res.Status)
	assert.Equal(t, "Jane Doe", res.Name)
}

func TestResolvePatientName_PositionalStripsLabelWords(t *testing.T) {
	normalized := "DR LABERGE PATIENT NAME REDACTED. ,713-854-9439DOB:06/30/1993"
	doctor, _ := ExtractDoctor(normalized)
	res := ResolvePatientName(normalized, doctor)
	assert.Equal(t, RedactedMarker, res.Name)
}

func TestResolvePatientName_PositionalStopsAtDigits(t *testing.T) {
	normalized := "DR SMITH JANE DOE 7138549439"
	doctor, _ := ExtractDoctor(normalized)
	res := ResolvePatientName(normalized, doctor)
	assert.Equal(t, "Jane Doe", res.Name)
}

func TestResolvePatientName_GenericHeuristic(t *testing.T) {
	res := ResolvePatientName("Patient John Smith called about refill", DoctorResult{})
	assert.Equal(t, StatusMatched, res.Status)
	assert.Equal(t, "John Smith", res.Name)
}

func TestResolvePatientName_GenericThreeTokens(t *testing.T) {
	res := ResolvePatientName("msg from Mary Ann Smith re appointment", DoctorResult{})
	assert.Equal(t, "Mary Ann Smith", res.Name)
}

func TestResolvePatientName_GenericRejectsStopwords(t *testing.T) {
	res := ResolvePatientName("Urgent Breast pain worsening", DoctorResult{})
	assert.Equal(t, StatusNoMatch, res.Status)
}

func TestResolvePatientName_NoCandidates(t *testing.T) {
	res := ResolvePatientName("worried about medication refill", DoctorResult{})
	assert.Equal(t, StatusNoMatch, res.Status)
}

func TestFormatPatientName_Redaction(t *testing.T) {
	assert.Equal(t, RedactedMarker, formatPatientName("REDACTED"))
	assert.Equal(t, RedactedMarker, formatPatientName("name redacted"))
	assert.Equal(t, "Jane Doe", formatPatientName("JANE DOE"))
}
