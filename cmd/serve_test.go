package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-enricher/internal/enrich"
	"github.com/sells-group/lead-enricher/internal/leads"
	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/internal/research"
	"github.com/sells-group/lead-enricher/internal/store"
)

func newTestEnv(t *testing.T) serverEnv {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	return serverEnv{
		store:        st,
		orchestrator: enrich.New(research.StubResearcher{}, enrich.WithStore(st)),
		processor:    leads.NewProcessor(),
		baseCtx:      context.Background(),
	}
}

func TestServer_Health(t *testing.T) {
	router := newRouter(newTestEnv(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_EnrichValidation(t *testing.T) {
	router := newRouter(newTestEnv(t))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"accepted", `{"email":"jane@acme.com"}`, http.StatusAccepted},
		{"malformed email", `{"email":"not-an-email"}`, http.StatusBadRequest},
		{"missing email", `{}`, http.StatusBadRequest},
		{"bad category", `{"email":"jane@acme.com","fields":[{"name":"x","category":"bogus"}]}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/enrich", strings.NewReader(tt.body))
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestServer_ListRuns(t *testing.T) {
	env := newTestEnv(t)
	router := newRouter(env)

	_, err := env.store.CreateRun(context.Background(), "jane@acme.com", "acme.com")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs?domain=acme.com", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var runs []model.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "acme.com", runs[0].Domain)
}

func TestServer_ListRuns_EmptyIsArray(t *testing.T) {
	router := newRouter(newTestEnv(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestServer_ProcessLeads(t *testing.T) {
	env := newTestEnv(t)
	router := newRouter(env)

	body := `{"source":"test","records":[
		{"organization_name":"Acme","seniority":"c_suite"},
		{"organization_name":""}
	]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/leads/process", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var result model.LeadProcessingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 1, result.ProcessedRows)
	assert.Equal(t, 1, result.DecisionMakersFound)

	// The batch summary lands in the store.
	batches, err := env.store.ListBatchRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "test", batches[0].Source)
}

func TestServer_ProcessLeads_NoRecords(t *testing.T) {
	router := newRouter(newTestEnv(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/leads/process", strings.NewReader(`{"records":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
