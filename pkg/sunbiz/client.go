// Package sunbiz queries the Florida Division of Corporations business search.
package sunbiz

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Default base URL for the Sunbiz entity search.
const defaultBaseURL = "https://search.sunbiz.org"

const searchPath = "/Inquiry/CorporationSearch/SearchResults"

// Client defines the registry operations used by lead processing.
type Client interface {
	SearchCompany(ctx context.Context, name string) (string, error)
}

// APIError is returned when Sunbiz responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sunbiz: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit caps outbound requests per second. The registry has no
// published limit but throttles aggressive clients.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// httpClient implements Client by scraping the entity search results page.
type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new Sunbiz client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// resultRow matches one row of the search results table: entity name link,
// document number link, then the status cell.
var resultRow = regexp.MustCompile(
	`(?s)<td[^>]*class="large-width"[^>]*>\s*<a[^>]*>([^<]+)</a>.*?<td[^>]*class="small-width"[^>]*>\s*<a[^>]*>([^<]+)</a>.*?<td[^>]*class="small-width"[^>]*>\s*([A-Za-z]+)`,
)

// SearchCompany looks up the entity by name and returns a one-line summary of
// the best match, for example "ABSOLUTE ALUMINUM, INC. (P12000034567, Active)".
// An empty string with no error means the registry had no match.
func (c *httpClient) SearchCompany(ctx context.Context, name string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", eris.Wrap(err, "sunbiz: rate limit wait")
		}
	}

	q := url.Values{}
	q.Set("inquiryType", "EntityName")
	q.Set("searchTerm", name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+q.Encode(), nil)
	if err != nil {
		return "", eris.Wrap(err, "sunbiz: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "sunbiz: execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", eris.Wrap(err, "sunbiz: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: truncate(string(data), 200)}
	}

	m := resultRow.FindStringSubmatch(string(data))
	if m == nil {
		return "", nil
	}

	entity := strings.TrimSpace(m[1])
	docNumber := strings.TrimSpace(m[2])
	status := strings.TrimSpace(m[3])
	return fmt.Sprintf("%s (%s, %s)", entity, docNumber, status), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
