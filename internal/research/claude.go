package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/pkg/anthropic"
	"github.com/sells-group/lead-enricher/pkg/firecrawl"
)

const searchResultLimit = 5

// ClaudeResearcher answers stage queries with Claude, optionally grounding
// each prompt in fresh web search snippets from Firecrawl.
type ClaudeResearcher struct {
	ai        anthropic.Client
	search    firecrawl.Client
	model     string
	maxTokens int64
}

// ClaudeOption configures a ClaudeResearcher.
type ClaudeOption func(*ClaudeResearcher)

// WithSearch enables web search grounding for stage prompts.
func WithSearch(fc firecrawl.Client) ClaudeOption {
	return func(r *ClaudeResearcher) { r.search = fc }
}

// NewClaudeResearcher creates a researcher backed by the given model.
func NewClaudeResearcher(ai anthropic.Client, modelID string, maxTokens int64, opts ...ClaudeOption) *ClaudeResearcher {
	r := &ClaudeResearcher{
		ai:        ai,
		model:     modelID,
		maxTokens: maxTokens,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResearchStage runs one research stage: search, prompt, parse.
func (r *ClaudeResearcher) ResearchStage(ctx context.Context, q StageQuery) (*model.StageResult, error) {
	snippets, sourceURLs := r.gatherSnippets(ctx, q)

	resp, err := r.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     r.model,
		MaxTokens: r.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(systemPrompt(q.Category)),
		Messages: []anthropic.Message{
			{Role: "user", Content: userPrompt(q, snippets)},
		},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "research: %s stage", q.Category)
	}
	resp.Usage.LogCost(r.model, "stage:"+string(q.Category))

	sr, err := parseStageResponse(q, resp.Text())
	if err != nil {
		return nil, err
	}
	attachSources(sr, sourceURLs)
	return sr, nil
}

// gatherSnippets runs the stage's web search. Search failures degrade to an
// ungrounded prompt rather than failing the stage.
func (r *ClaudeResearcher) gatherSnippets(ctx context.Context, q StageQuery) ([]string, []string) {
	if r.search == nil {
		return nil, nil
	}

	resp, err := r.search.Search(ctx, firecrawl.SearchRequest{
		Query: searchQuery(q),
		Limit: searchResultLimit,
	})
	if err != nil {
		zap.L().Warn("research: web search failed",
			zap.String("stage", string(q.Category)),
			zap.String("domain", q.Domain),
			zap.Error(err),
		)
		return nil, nil
	}

	var snippets, urls []string
	for _, hit := range resp.Data.Web {
		snippet := hit.Title
		if hit.Description != "" {
			snippet += " - " + hit.Description
		}
		snippets = append(snippets, fmt.Sprintf("[%s] %s", hit.URL, snippet))
		urls = append(urls, hit.URL)
	}
	return snippets, urls
}

// searchQuery builds the web query for a stage.
func searchQuery(q StageQuery) string {
	switch q.Category {
	case model.CategoryDiscovery:
		return q.Domain + " company about"
	case model.CategoryProfile:
		return q.Domain + " company industry headquarters size"
	case model.CategoryFunding:
		return q.Domain + " funding round investors"
	case model.CategoryTechStack:
		return q.Domain + " technology stack engineering"
	case model.CategoryMetrics:
		return q.Domain + " revenue employees growth"
	default:
		var names []string
		for _, f := range q.Fields {
			names = append(names, f.Name)
		}
		return q.Domain + " " + strings.Join(names, " ")
	}
}

// systemPrompt returns the cached system prompt for a stage. The JSON schema
// the model must emit matches the stage's result struct.
func systemPrompt(cat model.FieldCategory) string {
	header := "You are a company research analyst. Answer only from the evidence given. " +
		"Respond with a single JSON object and nothing else. " +
		"Set confidence_score between 0.0 and 1.0 based on how well the evidence supports your answer. " +
		"Use extraction_notes for caveats. Omit fields you cannot support.\n\nJSON schema:\n"

	switch cat {
	case model.CategoryDiscovery:
		return header + `{"company_name": string, "website": string, "description": string, "confidence_score": number, "source_urls": [string], "extraction_notes": string}`
	case model.CategoryProfile:
		return header + `{"company_name": string, "industry": string, "company_size": string, "headquarters": string, "founded_year": number, "description": string, "key_people": [string], "confidence_score": number, "source_urls": [string], "extraction_notes": string}`
	case model.CategoryFunding:
		return header + `{"total_funding": string, "last_funding_round": string, "last_funding_amount": string, "last_funding_date": string, "investors": [string], "funding_stages": [string], "confidence_score": number, "source_urls": [string], "extraction_notes": string}`
	case model.CategoryTechStack:
		return header + `{"technologies": [string], "programming_languages": [string], "frameworks": [string], "databases": [string], "cloud_services": [string], "confidence_score": number, "source_urls": [string], "extraction_notes": string}`
	case model.CategoryMetrics:
		return header + `{"revenue": string, "employee_count": string, "growth_rate": string, "market_share": string, "valuation": string, "confidence_score": number, "source_urls": [string], "extraction_notes": string}`
	default:
		return header + `{"extracted_data": {"<field name>": string|number|boolean|null}, "confidence_score": number, "source_urls": [string], "extraction_notes": string}`
	}
}

// userPrompt assembles the per-stage user message.
func userPrompt(q StageQuery, snippets []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Research the company behind the domain %s (contact email: %s).\n", q.Domain, q.Email)

	if len(q.Fields) > 0 {
		b.WriteString("\nFields to determine:\n")
		for _, f := range q.Fields {
			fmt.Fprintf(&b, "- %s", f.Name)
			if f.Description != "" {
				fmt.Fprintf(&b, ": %s", f.Description)
			}
			b.WriteString("\n")
		}
	}

	if q.Context != "" {
		b.WriteString("\nWhat is already known:\n")
		b.WriteString(q.Context)
		b.WriteString("\n")
	}

	if len(snippets) > 0 {
		b.WriteString("\nWeb search results:\n")
		for _, s := range snippets {
			b.WriteString(s)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// parseStageResponse decodes the model's JSON answer into the stage's result.
func parseStageResponse(q StageQuery, text string) (*model.StageResult, error) {
	raw := extractJSON(text)
	if raw == "" {
		return nil, eris.Errorf("research: %s stage returned no JSON", q.Category)
	}

	sr := &model.StageResult{Category: q.Category}
	var err error

	switch q.Category {
	case model.CategoryDiscovery:
		out := &model.DiscoveryResult{}
		err = json.Unmarshal([]byte(raw), out)
		out.Domain = q.Domain
		out.ConfidenceScore = clamp01(out.ConfidenceScore)
		sr.Discovery = out
	case model.CategoryProfile:
		out := &model.ProfileResult{}
		err = json.Unmarshal([]byte(raw), out)
		out.ConfidenceScore = clamp01(out.ConfidenceScore)
		sr.Profile = out
	case model.CategoryFunding:
		out := &model.FundingResult{}
		err = json.Unmarshal([]byte(raw), out)
		out.ConfidenceScore = clamp01(out.ConfidenceScore)
		sr.Funding = out
	case model.CategoryTechStack:
		out := &model.TechStackResult{}
		err = json.Unmarshal([]byte(raw), out)
		out.ConfidenceScore = clamp01(out.ConfidenceScore)
		sr.TechStack = out
	case model.CategoryMetrics:
		out := &model.MetricsResult{}
		err = json.Unmarshal([]byte(raw), out)
		out.ConfidenceScore = clamp01(out.ConfidenceScore)
		sr.Metrics = out
	case model.CategoryGeneral:
		out := &model.GeneralResult{}
		err = json.Unmarshal([]byte(raw), out)
		out.ConfidenceScore = clamp01(out.ConfidenceScore)
		sr.General = out
	default:
		return nil, eris.Errorf("research: unknown category %q", q.Category)
	}

	if err != nil {
		return nil, eris.Wrapf(err, "research: decode %s stage response", q.Category)
	}
	return sr, nil
}

// extractJSON pulls the JSON object out of a model response, handling fenced
// code blocks and surrounding prose.
func extractJSON(text string) string {
	if i := strings.Index(text, "```json"); i >= 0 {
		rest := text[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
	}
	if i := strings.Index(text, "```"); i >= 0 {
		rest := text[i+3:]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(text[start : end+1])
}

// attachSources backfills search URLs when the model cited nothing.
func attachSources(sr *model.StageResult, urls []string) {
	if len(urls) == 0 {
		return
	}
	switch {
	case sr.Discovery != nil && len(sr.Discovery.SourceURLs) == 0:
		sr.Discovery.SourceURLs = urls
	case sr.Profile != nil && len(sr.Profile.SourceURLs) == 0:
		sr.Profile.SourceURLs = urls
	case sr.Funding != nil && len(sr.Funding.SourceURLs) == 0:
		sr.Funding.SourceURLs = urls
	case sr.TechStack != nil && len(sr.TechStack.SourceURLs) == 0:
		sr.TechStack.SourceURLs = urls
	case sr.Metrics != nil && len(sr.Metrics.SourceURLs) == 0:
		sr.Metrics.SourceURLs = urls
	case sr.General != nil && len(sr.General.SourceURLs) == 0:
		sr.General.SourceURLs = urls
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
