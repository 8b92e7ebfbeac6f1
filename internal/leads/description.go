package leads

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// ConsolidateDescription builds a one-line company description from up to two
// free-text keyword fields. With no keywords the organization name alone
// anchors a generic description.
func ConsolidateDescription(orgName, keywords1, keywords2 string, rules DescriptionRules) string {
	var present []string
	for _, kw := range []string{keywords1, keywords2} {
		if kw = strings.TrimSpace(kw); kw != "" {
			present = append(present, kw)
		}
	}

	if len(present) == 0 {
		return orgName + " - Business services company"
	}

	joined := strings.Join(present, ", ")
	category := classifyServices(strings.ToLower(joined), rules)
	return category + " company that offers services: " + titleCaser.String(joined)
}

// classifyServices returns the first category whose keyword set hits the
// joined service text.
func classifyServices(services string, rules DescriptionRules) string {
	for _, cat := range rules.Categories {
		for _, kw := range cat.Keywords {
			if kw != "" && strings.Contains(services, strings.ToLower(kw)) {
				return cat.Name
			}
		}
	}
	return rules.Fallback
}
