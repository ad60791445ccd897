package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/meridian-health/triage-cli/internal/directory"
	"github.com/meridian-health/triage-cli/internal/llm"
	"github.com/meridian-health/triage-cli/internal/specialty"
	"github.com/meridian-health/triage-cli/internal/triage"
	"github.com/meridian-health/triage-cli/pkg/anthropic"
)

// parseEnv bundles the collaborators every parsing command needs.
type parseEnv struct {
	Service  *llm.Service
	Profiles *specialty.Registry
	Store    directory.Store
}

// initParseEnv wires the extraction service, specialty profiles, and
// doctor directory from config. rulesOnly forces the deterministic chain
// even when an API key is configured.
func initParseEnv(ctx context.Context, rulesOnly bool) (*parseEnv, error) {
	profiles, err := specialty.Load(cfg.Parser.ProfilesDir)
	if err != nil {
		return nil, err
	}

	var extractor llm.Extractor
	if !rulesOnly && !cfg.Parser.RulesOnly && cfg.Anthropic.Key != "" {
		client := anthropic.NewClient(cfg.Anthropic.Key)
		extractor = llm.NewAnthropicExtractor(client, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
	}

	store, err := directory.Open(ctx, cfg.Directory.Driver, cfg.Directory.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if store != nil {
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
	}

	return &parseEnv{
		Service:  llm.NewService(extractor, triage.New()),
		Profiles: profiles,
		Store:    store,
	}, nil
}

func (e *parseEnv) Close() {
	if e.Store != nil {
		if err := e.Store.Close(); err != nil {
			zap.L().Warn("directory close failed", zap.Error(err))
		}
	}
}
