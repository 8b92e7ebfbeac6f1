package enrich

import (
	"fmt"
	"strings"

	"github.com/sells-group/lead-enricher/internal/model"
)

// ContextAccumulator collects completed stage results in execution order and
// renders them as the textual context handed to the next research stage.
// Append-only; the structured results are kept so each formatter can decide
// what to surface instead of re-parsing a flat string.
type ContextAccumulator struct {
	results []*model.StageResult
}

// NewContextAccumulator returns an empty accumulator.
func NewContextAccumulator() *ContextAccumulator {
	return &ContextAccumulator{}
}

// Add appends a completed stage result. Nil results are ignored.
func (c *ContextAccumulator) Add(sr *model.StageResult) {
	if sr == nil {
		return
	}
	c.results = append(c.results, sr)
}

// Results returns the accumulated stage results in arrival order.
func (c *ContextAccumulator) Results() []*model.StageResult {
	return c.results
}

// Render produces the newline-joined context summary for the next stage.
func (c *ContextAccumulator) Render() string {
	var lines []string
	for _, sr := range c.results {
		lines = append(lines, formatStage(sr)...)
	}
	return strings.Join(lines, "\n")
}

// formatStage emits the context lines contributed by one stage result.
func formatStage(sr *model.StageResult) []string {
	var lines []string
	switch {
	case sr.Discovery != nil:
		d := sr.Discovery
		if d.CompanyName != "" {
			lines = append(lines, "Company: "+d.CompanyName)
		}
		if d.Website != "" {
			lines = append(lines, "Website: "+d.Website)
		}
		if d.Description != "" {
			lines = append(lines, "Description: "+d.Description)
		}
	case sr.Profile != nil:
		p := sr.Profile
		if p.Industry != "" {
			lines = append(lines, "Industry: "+p.Industry)
		}
		if p.CompanySize != "" {
			lines = append(lines, "Size: "+p.CompanySize)
		}
	case sr.Funding != nil:
		f := sr.Funding
		if f.TotalFunding != "" {
			lines = append(lines, "Total funding: "+f.TotalFunding)
		}
		if f.LastFundingRound != "" {
			lines = append(lines, "Last round: "+f.LastFundingRound)
		}
	case sr.TechStack != nil:
		ts := sr.TechStack
		if len(ts.Technologies) > 0 {
			lines = append(lines, "Technologies: "+strings.Join(truncateList(ts.Technologies, 5), ", "))
		}
	case sr.Metrics != nil:
		m := sr.Metrics
		if m.EmployeeCount != "" {
			lines = append(lines, "Employees: "+m.EmployeeCount)
		}
		if m.Revenue != "" {
			lines = append(lines, "Revenue: "+m.Revenue)
		}
	}
	return lines
}

// truncateList caps a list at n entries, appending a count marker when cut.
func truncateList(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	out := make([]string, n, n+1)
	copy(out, items[:n])
	return append(out, fmt.Sprintf("and %d more", len(items)-n))
}
