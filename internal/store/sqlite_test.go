package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-enricher/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	run, err := s.CreateRun(ctx, "dale@absolutealuminum.com", "absolutealuminum.com")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)

	require.NoError(t, s.UpdateRunStatus(ctx, run.ID, model.RunStatusResearching))

	result := &model.EnrichmentResult{
		Email:  "dale@absolutealuminum.com",
		Domain: "absolutealuminum.com",
		Discovery: &model.DiscoveryResult{
			CompanyName:     "Absolute Aluminum",
			Domain:          "absolutealuminum.com",
			ConfidenceScore: 0.9,
		},
		OverallConfidence: 0.9,
	}
	require.NoError(t, s.UpdateRunResult(ctx, run.ID, result))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Result)
	require.NotNil(t, got.Result.Discovery)
	assert.Equal(t, "Absolute Aluminum", got.Result.Discovery.CompanyName)
	assert.InDelta(t, 0.9, got.Result.OverallConfidence, 0.001)
}

func TestSQLiteStore_UpdateMissingRun(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	assert.Error(t, s.UpdateRunStatus(ctx, "nope", model.RunStatusFailed))
	assert.Error(t, s.UpdateRunResult(ctx, "nope", &model.EnrichmentResult{}))

	_, err := s.GetRun(ctx, "nope")
	assert.Error(t, err)
}

func TestSQLiteStore_ListRuns_Filter(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	r1, err := s.CreateRun(ctx, "a@acme.com", "acme.com")
	require.NoError(t, err)
	_, err = s.CreateRun(ctx, "b@globex.com", "globex.com")
	require.NoError(t, err)
	require.NoError(t, s.UpdateRunStatus(ctx, r1.ID, model.RunStatusComplete))

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	complete, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, r1.ID, complete[0].ID)

	byDomain, err := s.ListRuns(ctx, RunFilter{Domain: "globex.com"})
	require.NoError(t, err)
	require.Len(t, byDomain, 1)
	assert.Equal(t, "globex.com", byDomain[0].Domain)
}

func TestSQLiteStore_BatchRuns(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	result := &model.LeadProcessingResult{
		TotalRows:           3,
		ProcessedRows:       2,
		DecisionMakersFound: 1,
		Errors:              []string{"Row 2: missing organization name"},
	}

	saved, err := s.SaveBatchRun(ctx, "leads.csv", result)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	batches, err := s.ListBatchRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "leads.csv", batches[0].Source)
	require.NotNil(t, batches[0].Result)
	assert.Equal(t, 3, batches[0].Result.TotalRows)
	assert.Equal(t, 1, batches[0].Result.DecisionMakersFound)
}
