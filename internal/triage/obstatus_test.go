package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOBStatus_PostpartumWeeks(t *testing.T) {
	res, residual := ExtractOBStatus("mastitis POSTPARTUM 3 WKS left side")
	assert.Equal(t, StatusMatched, res.Status)
	assert.Equal(t, "Postpartum 3 weeks", res.Phrase)
	assert.Equal(t, "mastitis left side", residual)
}

func TestExtractOBStatus_PostpartumSpacingTolerant(t *testing.T) {
	res, _ := ExtractOBStatus("POST PARTUM 1WKS")
	assert.Equal(t, "Postpartum 1 weeks", res.Phrase)
}

func TestExtractOBStatus_PostpartumBeatsNotOB(t *testing.T) {
	// Postpartum-weeks detection outranks a literal NOT OB in the same
	// message.
	res, _ := ExtractOBStatus("NOT OB per caller, POST PARTUM 2 WEEKS")
	assert.Equal(t, "Postpartum 2 weeks", res.Phrase)
}

func TestExtractOBStatus_NotOB(t *testing.T) {
	res, residual := ExtractOBStatus("stomach pain NOT OB per caller")
	assert.Equal(t, "Not OB", res.Phrase)
	assert.Equal(t, "stomach pain per caller", residual)
}

func TestExtractOBStatus_StandaloneOB(t *testing.T) {
	res, _ := ExtractOBStatus("cramping OB 28 y/o")
	assert.Equal(t, "OB", res.Phrase)
}

func TestExtractOBStatus_StandaloneOBRequiresWordBoundary(t *testing.T) {
	res, _ := ExtractOBStatus("problem with job schedule")
	assert.Equal(t, StatusNoMatch, res.Status)
}

func TestExtractOBStatus_WeeksGestation(t *testing.T) {
	res, _ := ExtractOBStatus("contractions 32 WKS GA")
	assert.Equal(t, "32 weeks GA", res.Phrase)

	res, _ = ExtractOBStatus("spotting 12 weeks gestation")
	assert.Equal(t, "12 weeks GA", res.Phrase)
}

func TestExtractOBStatus_NoMatch(t *testing.T) {
	res, residual := ExtractOBStatus("medication refill request")
	assert.Equal(t, StatusNoMatch, res.Status)
	assert.Equal(t, "medication refill request", residual)
}
