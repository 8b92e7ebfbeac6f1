// Package store persists enrichment runs and batch summaries. Two drivers
// are provided: SQLite (default, single-binary use) and Postgres.
package store

import (
	"context"

	"github.com/sells-group/lead-enricher/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Domain string          `json:"domain,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for enrichment history.
type Store interface {
	// Single-record enrichment runs
	CreateRun(ctx context.Context, email, domain string) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	UpdateRunResult(ctx context.Context, runID string, result *model.EnrichmentResult) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Lead-list batch runs
	SaveBatchRun(ctx context.Context, source string, result *model.LeadProcessingResult) (*model.BatchRun, error)
	ListBatchRuns(ctx context.Context, limit int) ([]model.BatchRun, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
