package leads

import (
	"strings"

	"github.com/sells-group/lead-enricher/internal/model"
)

// Inferred-email confidence per channel. These are speculative patterns, not
// verified addresses.
const (
	confidenceBusinessPattern = 0.3
	confidencePersonalPattern = 0.2
)

// InferEmails fills in missing business and personal emails by pattern.
// Existing non-empty emails are never overwritten. Returns nil when neither
// channel could be attempted.
func InferEmails(rec model.LeadRecord, rules EmailRules) *model.EmailResearchResult {
	first := strings.ToLower(strings.TrimSpace(rec.FirstName))
	last := strings.ToLower(strings.TrimSpace(rec.LastName))

	result := &model.EmailResearchResult{
		ResearchNotes: "pattern-inferred candidates, unverified",
	}
	attempted := false

	if rec.Email == "" {
		if domain := bareDomain(rec.OrganizationWebsite); domain != "" {
			candidates := emailCandidates(first, last, domain)
			if len(candidates) > 0 {
				result.EmailFound = candidates[0]
				result.ConfidenceScore = confidenceBusinessPattern
				attempted = true
			}
		}
	}

	if rec.PersonalEmail == "" && first != "" && last != "" {
		result.PersonalEmailFound = first + "." + last + "@" + rules.PersonalDomain
		if confidencePersonalPattern > result.ConfidenceScore {
			result.ConfidenceScore = confidencePersonalPattern
		}
		attempted = true
	}

	if !attempted {
		return nil
	}
	return result
}

// emailCandidates lists address guesses in priority order. Patterns that need
// a name the record lacks are dropped rather than emitted malformed.
func emailCandidates(first, last, domain string) []string {
	var out []string
	if first != "" && last != "" {
		out = append(out, first+"."+last+"@"+domain)
	}
	if first != "" {
		out = append(out, first+"@"+domain)
	}
	if first != "" && last != "" {
		out = append(out, first[:1]+"."+last+"@"+domain)
	}
	out = append(out, "info@"+domain, "contact@"+domain)
	return out
}

// bareDomain reduces a website URL to its host: scheme, www. prefix, path,
// and port are stripped, the rest lowercased.
func bareDomain(website string) string {
	s := strings.TrimSpace(strings.ToLower(website))
	if s == "" {
		return ""
	}
	for _, prefix := range []string{"https://", "http://"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	return s
}
