package leads

import (
	"strings"

	"github.com/sells-group/lead-enricher/internal/model"
)

// Decision-maker confidence per classifier branch.
const (
	confidenceCSuite       = 0.9
	confidenceDirector     = 0.8
	confidenceEntryMatched = 0.6
	confidenceEntryPlain   = 0.2
	confidenceOther        = 0.1
)

// ClassifyDecisionMaker applies the seniority rule table to one record.
// Pure function: same record in, same verdict out.
func ClassifyDecisionMaker(rec model.LeadRecord, rules ClassifierRules) model.DecisionMakerValidation {
	seniority := strings.ToLower(strings.TrimSpace(rec.Seniority))
	headline := strings.ToLower(rec.LinkedInHeadline)

	v := model.DecisionMakerValidation{
		SeniorityLevel: seniority,
		JobTitle:       rec.LinkedInHeadline,
	}
	if v.SeniorityLevel == "" {
		v.SeniorityLevel = "unknown"
	}

	switch seniority {
	case "c_suite":
		v.IsDecisionMaker = true
		v.ConfidenceScore = confidenceCSuite
		v.Reasoning = "C-suite contacts are always decision makers"
	case "director":
		v.IsDecisionMaker = true
		v.ConfidenceScore = confidenceDirector
		v.Reasoning = "Director-level contacts are always decision makers"
	case "entry":
		if keyword := matchKeyword(headline, rules.EntryKeywords); keyword != "" {
			v.IsDecisionMaker = true
			v.ConfidenceScore = confidenceEntryMatched
			v.Reasoning = "Entry-level contact with ownership keyword in headline: " + keyword
		} else {
			v.ConfidenceScore = confidenceEntryPlain
			v.Reasoning = "Entry-level contact without ownership signals"
		}
	default:
		v.ConfidenceScore = confidenceOther
		v.Reasoning = "Seniority level does not indicate decision-making authority"
	}
	return v
}

// matchKeyword returns the first keyword found in the headline, or "".
func matchKeyword(headline string, keywords []string) string {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(headline, strings.ToLower(kw)) {
			return kw
		}
	}
	return ""
}
