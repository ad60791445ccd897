package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalizeComplaint_StripsBoilerplateAndCorrects(t *testing.T) {
	residual := "PATIENT NAME REDACTED. ,NOT OBCONCERNS FOR MASTITIST,SEVEREPAIN ,,"
	out := FinalizeComplaint(residual, residual)
	assert.Contains(t, out, "mastitis")
	assert.Contains(t, out, "severe pain")
	assert.NotContains(t, out, "concerns for")
	assert.NotContains(t, out, "CONCERNS")
}

func TestFinalizeComplaint_SentenceCase(t *testing.T) {
	out := FinalizeComplaint("FEVER AND CHILLS SINCE MONDAY", "x")
	assert.Equal(t, "Fever and chills since monday", out)
}

func TestFinalizeComplaint_CommaSpacing(t *testing.T) {
	out := FinalizeComplaint("cramping ,spotting,   fatigue", "x")
	assert.Equal(t, "Cramping, spotting, fatigue", out)
}

func TestFinalizeComplaint_TrimsStrayPunctuation(t *testing.T) {
	out := FinalizeComplaint(". ,heavy bleeding,- ", "x")
	assert.Equal(t, "Heavy bleeding", out)
}

func TestFinalizeComplaint_EmptyResidualFallsBackToWholeMessage(t *testing.T) {
	// Everything was consumed by the extractor chain; the whole raw message
	// is re-normalized and sentence-cased so the complaint is never empty.
	raw := "DR LABERGE ,,713-854-9439"
	out := FinalizeComplaint(" ,, ", raw)
	assert.Equal(t, "Dr laberge 713-854-9439", out)
}

func TestFinalizeComplaint_BoilerplateOnlyResidual(t *testing.T) {
	out := FinalizeComplaint("CONCERNS FOR", "CONCERNS FOR")
	assert.NotEmpty(t, out)
}
