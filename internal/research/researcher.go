// Package research defines the collaborator that answers one research stage
// and its Claude-backed and stub implementations.
package research

import (
	"context"

	"github.com/sells-group/lead-enricher/internal/model"
)

// StageQuery is the input to one research stage invocation.
type StageQuery struct {
	Category model.FieldCategory
	Fields   []model.EnrichmentField
	Domain   string
	Email    string
	Context  string // rendered summary of prior stage results
}

// Researcher answers a single research stage. Implementations must be safe
// for concurrent use; the orchestrator invokes stages sequentially but batch
// callers may run multiple enrichments at once.
type Researcher interface {
	ResearchStage(ctx context.Context, q StageQuery) (*model.StageResult, error)
}
