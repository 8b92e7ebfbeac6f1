package firecrawl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-api-key", WithBaseURL(srv.URL))
	return srv, c
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantHits   int
		wantErr    bool
		wantAPIErr bool
		wantStatus int
	}{
		{
			name: "happy path",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/search", r.URL.Path)
				assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req SearchRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "acme.com company profile", req.Query)
				assert.Equal(t, 3, req.Limit)

				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(SearchResponse{
					Success: true,
					Data: SearchData{
						Web: []SearchResult{
							{URL: "https://acme.com/about", Title: "About Acme", Description: "Widget maker"},
							{URL: "https://example.com/acme", Title: "Acme Corp profile"},
						},
					},
				})
			},
			wantHits: 2,
		},
		{
			name: "auth error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"Unauthorized"}`))
			},
			wantErr:    true,
			wantAPIErr: true,
			wantStatus: 401,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"internal server error"}`))
			},
			wantErr:    true,
			wantAPIErr: true,
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := newTestServer(t, tt.handler)
			resp, err := c.Search(context.Background(), SearchRequest{
				Query: "acme.com company profile",
				Limit: 3,
			})

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantAPIErr {
					var apiErr *APIError
					require.ErrorAs(t, err, &apiErr)
					assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
				}
				return
			}
			require.NoError(t, err)
			assert.True(t, resp.Success)
			assert.Len(t, resp.Data.Web, tt.wantHits)
		})
	}
}

func TestScrape(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/scrape", r.URL.Path)

		var req ScrapeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://acme.com", req.URL)
		assert.Equal(t, []string{"markdown"}, req.Formats)

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ScrapeResponse{
			Success: true,
			Data: PageData{
				URL:        "https://acme.com",
				Title:      "Acme Corp",
				Markdown:   "# Acme\nWe make widgets.",
				StatusCode: 200,
			},
		})
	})

	resp, err := c.Scrape(context.Background(), ScrapeRequest{
		URL:     "https://acme.com",
		Formats: []string{"markdown"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Acme Corp", resp.Data.Title)
	assert.Contains(t, resp.Data.Markdown, "widgets")
}

func TestSearch_RateLimited(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(SearchResponse{Success: true})
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-api-key", WithBaseURL(srv.URL), WithRateLimit(1000))

	for range 3 {
		_, err := c.Search(context.Background(), SearchRequest{Query: "x"})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{StatusCode: 429, Body: `{"error":"rate limited"}`}
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limited")
}
