package leads

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	assert.Contains(t, rules.Classifier.EntryKeywords, "owner")
	assert.Contains(t, rules.Classifier.EntryKeywords, "coo")
	assert.Equal(t, "gmail.com", rules.Email.PersonalDomain)
	assert.Equal(t, "Home services", rules.Description.Fallback)
	require.NotEmpty(t, rules.Description.Categories)
	assert.Equal(t, "HVAC", rules.Description.Categories[0].Name)
	assert.Equal(t, []string{" FL", "Florida"}, rules.Registry.TriggerTokens)
}

func TestLoadRules_PartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
classifier:
  entry_keywords: ["proprietor"]
registry:
  trigger_tokens: [" TX", "Texas"]
`), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"proprietor"}, rules.Classifier.EntryKeywords)
	assert.Equal(t, []string{" TX", "Texas"}, rules.Registry.TriggerTokens)
	// Untouched sections keep their defaults.
	assert.Equal(t, "gmail.com", rules.Email.PersonalDomain)
	assert.Equal(t, "Home services", rules.Description.Fallback)
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read rules")
}

func TestLoadRules_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("classifier: [not a map"), 0o644))

	_, err := LoadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse rules")
}
