package llm

import (
	"context"

	"go.uber.org/zap"

	"github.com/meridian-health/triage-cli/internal/model"
	"github.com/meridian-health/triage-cli/internal/specialty"
	"github.com/meridian-health/triage-cli/internal/triage"
)

// Service routes each message through model-based extraction when an
// extractor is configured, falling back to the rule chain otherwise or on
// any model failure. Callers always get fields back; model problems are
// logged, never surfaced.
type Service struct {
	extractor Extractor
	rules     *triage.Parser
}

// NewService builds a Service. extractor may be nil for rules-only operation.
func NewService(extractor Extractor, rules *triage.Parser) *Service {
	if rules == nil {
		rules = triage.New()
	}
	return &Service{extractor: extractor, rules: rules}
}

// Parse extracts triage fields from raw, recording which path produced them.
func (s *Service) Parse(ctx context.Context, raw string, profile specialty.Profile) model.ParseOutcome {
	if s.extractor != nil && s.extractor.Available() {
		fields, err := s.extractor.Extract(ctx, raw, profile)
		if err == nil {
			return model.ParseOutcome{Fields: fields, Source: model.SourceModel}
		}
		zap.L().Warn("model extraction failed, using rule chain",
			zap.String("specialty", profile.ID),
			zap.Error(err),
		)
	}

	return model.ParseOutcome{Fields: s.rules.Parse(raw), Source: model.SourceRules}
}
