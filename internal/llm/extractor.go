// Package llm implements model-based field extraction with a silent
// fallback to the deterministic rule chain.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/meridian-health/triage-cli/internal/model"
	"github.com/meridian-health/triage-cli/internal/specialty"
	"github.com/meridian-health/triage-cli/internal/triage"
	"github.com/meridian-health/triage-cli/pkg/anthropic"
)

// Extractor extracts triage fields from a raw message.
type Extractor interface {
	// Available reports whether the extractor can be used at all. An
	// extractor without credentials returns false rather than erroring
	// on every call.
	Available() bool
	Extract(ctx context.Context, raw string, profile specialty.Profile) (model.ParsedTriageFields, error)
}

const extractPrompt = `You are a medical triage assistant extracting structured fields from a nurse triage message. Messages are noisy: run-together words, section markers, misspellings, and redacted names are all common.

%s

Raw message:
%s

Return a valid JSON object with exactly these keys (use "" for fields not present):
{"attending_doctor": "", "patient_name": "", "callback_number": "", "date_of_birth": "MM/DD/YYYY or empty", "ob_status": "", "chief_complaint": "", "gestational_age": "", "patient_age": "", "safety_concerns": ""}

Rules:
- attending_doctor is the surname only, capitalized like "Laberge".
- callback_number is formatted "(XXX) XXX-XXXX" when ten digits are present.
- patient_name is "[REDACTED]" when the message says the name was redacted.
- chief_complaint must never be empty: if nothing else, summarize the whole message.
- Correct obvious misspellings in the chief complaint.`

// wireFields mirrors the JSON shape the model is asked to return.
type wireFields struct {
	AttendingDoctor string `json:"attending_doctor"`
	PatientName     string `json:"patient_name"`
	CallbackNumber  string `json:"callback_number"`
	DateOfBirth     string `json:"date_of_birth"`
	OBStatus        string `json:"ob_status"`
	ChiefComplaint  string `json:"chief_complaint"`
	GestationalAge  string `json:"gestational_age"`
	PatientAge      string `json:"patient_age"`
	SafetyConcerns  string `json:"safety_concerns"`
}

// AnthropicExtractor implements Extractor against the Anthropic messages API.
type AnthropicExtractor struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	now       func() time.Time
}

// NewAnthropicExtractor builds an extractor. A nil client yields an
// unavailable extractor.
func NewAnthropicExtractor(client anthropic.Client, modelID string, maxTokens int64) *AnthropicExtractor {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &AnthropicExtractor{
		client:    client,
		model:     modelID,
		maxTokens: maxTokens,
		now:       time.Now,
	}
}

// WithClock overrides the clock used for two-digit year resolution.
func (e *AnthropicExtractor) WithClock(now func() time.Time) *AnthropicExtractor {
	e.now = now
	return e
}

func (e *AnthropicExtractor) Available() bool {
	return e != nil && e.client != nil && e.model != ""
}

func (e *AnthropicExtractor) Extract(ctx context.Context, raw string, profile specialty.Profile) (model.ParsedTriageFields, error) {
	var fields model.ParsedTriageFields

	if !e.Available() {
		return fields, eris.New("llm: extractor not configured")
	}

	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(profile.Instructions),
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(extractPrompt, profile.Instructions, raw)},
		},
	})
	if err != nil {
		return fields, eris.Wrap(err, "llm: extract")
	}
	resp.Usage.LogCost(e.model, "extract")

	var wire wireFields
	if err := json.Unmarshal([]byte(cleanJSON(extractText(resp))), &wire); err != nil {
		return fields, eris.Wrap(err, "llm: parse model response")
	}

	return e.assemble(wire, raw, profile), nil
}

// assemble converts the wire shape to domain fields, revalidating everything
// the model returned rather than trusting it.
func (e *AnthropicExtractor) assemble(wire wireFields, raw string, profile specialty.Profile) model.ParsedTriageFields {
	fields := model.ParsedTriageFields{
		AttendingDoctor: strings.TrimSpace(wire.AttendingDoctor),
		PatientName:     strings.TrimSpace(wire.PatientName),
		CallbackNumber:  strings.TrimSpace(wire.CallbackNumber),
		OBStatus:        strings.TrimSpace(wire.OBStatus),
		ChiefComplaint:  strings.TrimSpace(wire.ChiefComplaint),
	}

	if wire.DateOfBirth != "" {
		if date, ok := triage.DisambiguateDate(wire.DateOfBirth, e.now()); ok {
			fields.DateOfBirth = &date
		}
	}

	if profile.Recognizes("gestational_age") {
		fields.GestationalAge = strings.TrimSpace(wire.GestationalAge)
	}
	if profile.Recognizes("patient_age") {
		fields.PatientAge = strings.TrimSpace(wire.PatientAge)
	}
	if profile.Recognizes("safety_concerns") {
		fields.SafetyConcerns = strings.TrimSpace(wire.SafetyConcerns)
	}

	// A model response with an empty complaint still has to carry the
	// message content somewhere.
	if fields.ChiefComplaint == "" {
		fields.ChiefComplaint = triage.FinalizeComplaint("", raw)
	}

	return fields
}

// extractText concatenates all text blocks from a response.
func extractText(resp *anthropic.MessageResponse) string {
	if resp == nil {
		return ""
	}
	var parts []string
	for _, block := range resp.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
