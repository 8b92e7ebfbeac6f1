package model

import "time"

// RunStatus tracks the lifecycle of a persisted enrichment run.
type RunStatus string

const (
	RunStatusQueued      RunStatus = "queued"
	RunStatusResearching RunStatus = "researching"
	RunStatusComplete    RunStatus = "complete"
	RunStatusFailed      RunStatus = "failed"
)

// Run is one persisted single-record enrichment run.
type Run struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Domain    string            `json:"domain"`
	Status    RunStatus         `json:"status"`
	Result    *EnrichmentResult `json:"result,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// BatchRun is one persisted lead-list batch run summary.
type BatchRun struct {
	ID        string                `json:"id"`
	Source    string                `json:"source"`
	Result    *LeadProcessingResult `json:"result,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}
