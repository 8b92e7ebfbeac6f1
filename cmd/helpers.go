package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-enricher/internal/enrich"
	"github.com/sells-group/lead-enricher/internal/leads"
	"github.com/sells-group/lead-enricher/internal/research"
	"github.com/sells-group/lead-enricher/internal/store"
	anthropicpkg "github.com/sells-group/lead-enricher/pkg/anthropic"
	"github.com/sells-group/lead-enricher/pkg/firecrawl"
	"github.com/sells-group/lead-enricher/pkg/sunbiz"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "enricher.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// newResearcher builds the stage researcher. Offline mode needs no
// credentials; the real researcher validates them first.
func newResearcher(offline bool) (research.Researcher, error) {
	if offline {
		return research.StubResearcher{}, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	firecrawlClient := firecrawl.NewClient(cfg.Firecrawl.Key, firecrawl.WithBaseURL(cfg.Firecrawl.BaseURL))
	anthropicClient := anthropicpkg.NewClient(cfg.Anthropic.Key)

	return research.NewClaudeResearcher(
		anthropicClient,
		cfg.Anthropic.Model,
		cfg.Anthropic.MaxTokens,
		research.WithSearch(firecrawlClient),
	), nil
}

// newOrchestrator wires the researcher, store, and stage timeout together.
func newOrchestrator(st store.Store, offline bool) (*enrich.Orchestrator, error) {
	researcher, err := newResearcher(offline)
	if err != nil {
		return nil, err
	}

	opts := []enrich.Option{
		enrich.WithStageTimeout(time.Duration(cfg.Enrich.StageTimeoutSecs) * time.Second),
	}
	if st != nil {
		opts = append(opts, enrich.WithStore(st))
	}
	return enrich.New(researcher, opts...), nil
}

// newProcessor builds the batch lead processor from config and flags.
func newProcessor(registryEnabled bool, concurrency int) (*leads.Processor, error) {
	rules := leads.DefaultRules()
	if cfg.Batch.RulesPath != "" {
		loaded, err := leads.LoadRules(cfg.Batch.RulesPath)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}

	opts := []leads.ProcessorOption{
		leads.WithRules(rules),
		leads.WithConcurrency(concurrency),
	}
	if registryEnabled {
		opts = append(opts, leads.WithRegistry(sunbiz.NewClient(
			sunbiz.WithBaseURL(cfg.Sunbiz.BaseURL),
			sunbiz.WithRateLimit(cfg.Sunbiz.RequestsPerSec),
		)))
	}
	return leads.NewProcessor(opts...), nil
}
