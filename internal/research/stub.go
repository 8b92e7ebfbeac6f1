package research

import (
	"context"

	"github.com/sells-group/lead-enricher/internal/model"
)

// StubResearcher returns deterministic placeholder results without touching
// the network. Used for dry runs and local smoke testing.
type StubResearcher struct{}

func (StubResearcher) ResearchStage(_ context.Context, q StageQuery) (*model.StageResult, error) {
	const note = "stubbed result, no research performed"
	sr := &model.StageResult{Category: q.Category}

	switch q.Category {
	case model.CategoryDiscovery:
		sr.Discovery = &model.DiscoveryResult{
			CompanyName:     q.Domain,
			Website:         "https://" + q.Domain,
			Domain:          q.Domain,
			ConfidenceScore: 0.1,
			ExtractionNotes: note,
		}
	case model.CategoryProfile:
		sr.Profile = &model.ProfileResult{ConfidenceScore: 0.1, ExtractionNotes: note}
	case model.CategoryFunding:
		sr.Funding = &model.FundingResult{ConfidenceScore: 0.1, ExtractionNotes: note}
	case model.CategoryTechStack:
		sr.TechStack = &model.TechStackResult{ConfidenceScore: 0.1, ExtractionNotes: note}
	case model.CategoryMetrics:
		sr.Metrics = &model.MetricsResult{ConfidenceScore: 0.1, ExtractionNotes: note}
	default:
		extracted := make(map[string]model.TaggedValue, len(q.Fields))
		for _, f := range q.Fields {
			extracted[f.Name] = model.NullValue()
		}
		sr.General = &model.GeneralResult{
			Extracted:       extracted,
			ConfidenceScore: 0.1,
			ExtractionNotes: note,
		}
	}
	return sr, nil
}
