// Package leads implements batch classification and enrichment of lead lists.
package leads

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Rules is the tunable rule set for batch lead processing. Confidence values
// are fixed in code; only keyword tables and trigger tokens are configurable.
type Rules struct {
	Classifier  ClassifierRules  `yaml:"classifier"`
	Email       EmailRules       `yaml:"email"`
	Description DescriptionRules `yaml:"description"`
	Registry    RegistryRules    `yaml:"registry"`
}

// ClassifierRules configures the decision-maker classifier.
type ClassifierRules struct {
	// EntryKeywords promote entry-level contacts to decision-makers when any
	// appears in the LinkedIn headline.
	EntryKeywords []string `yaml:"entry_keywords"`
}

// EmailRules configures email pattern inference.
type EmailRules struct {
	PersonalDomain string `yaml:"personal_domain"`
}

// DescriptionRules configures company description consolidation.
type DescriptionRules struct {
	Categories []DescriptionCategory `yaml:"categories"`
	Fallback   string                `yaml:"fallback"`
}

// DescriptionCategory maps keyword hits to a business category. Categories
// are checked in order; first match wins.
type DescriptionCategory struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// RegistryRules configures when the external registry lookup runs.
type RegistryRules struct {
	// TriggerTokens gate the lookup on the organization name. All-uppercase
	// tokens match case-sensitively so " FL" does not hit inside words.
	TriggerTokens []string `yaml:"trigger_tokens"`
}

// DefaultRules returns the built-in rule set.
func DefaultRules() *Rules {
	return &Rules{
		Classifier: ClassifierRules{
			EntryKeywords: []string{
				"owner", "founder", "co-founder", "partner", "principal",
				"president", "ceo", "cfo", "cto", "coo",
			},
		},
		Email: EmailRules{
			PersonalDomain: "gmail.com",
		},
		Description: DescriptionRules{
			Categories: []DescriptionCategory{
				{Name: "HVAC", Keywords: []string{"hvac", "air conditioning", "heating", "cooling"}},
				{Name: "Roofing/Construction", Keywords: []string{"roofing", "construction", "contractor"}},
				{Name: "Electrical", Keywords: []string{"electric", "electrical"}},
				{Name: "Plumbing", Keywords: []string{"plumbing", "plumber"}},
				{Name: "Cleaning", Keywords: []string{"cleaning", "janitorial"}},
			},
			Fallback: "Home services",
		},
		Registry: RegistryRules{
			TriggerTokens: []string{" FL", "Florida"},
		},
	}
}

// LoadRules reads a rule file and overlays it on the defaults, so a partial
// file only overrides the sections it names.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "leads: read rules %s", path)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, eris.Wrap(err, "leads: parse rules")
	}

	rules := DefaultRules()
	if len(loaded.Classifier.EntryKeywords) > 0 {
		rules.Classifier.EntryKeywords = loaded.Classifier.EntryKeywords
	}
	if loaded.Email.PersonalDomain != "" {
		rules.Email.PersonalDomain = loaded.Email.PersonalDomain
	}
	if len(loaded.Description.Categories) > 0 {
		rules.Description.Categories = loaded.Description.Categories
	}
	if loaded.Description.Fallback != "" {
		rules.Description.Fallback = loaded.Description.Fallback
	}
	if len(loaded.Registry.TriggerTokens) > 0 {
		rules.Registry.TriggerTokens = loaded.Registry.TriggerTokens
	}
	return rules, nil
}
