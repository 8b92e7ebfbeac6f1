package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-enricher/internal/model"
)

func TestDefaultFields(t *testing.T) {
	fields := defaultFields()
	require.NotEmpty(t, fields)

	groups := model.Categorize(fields)
	assert.NotEmpty(t, groups.Get(model.CategoryDiscovery))
	assert.NotEmpty(t, groups.Get(model.CategoryProfile))
	assert.NotEmpty(t, groups.Get(model.CategoryMetrics))
	assert.Equal(t, len(fields), groups.Total())
}

func TestLoadFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fields:
  - name: company_name
    category: discovery
    required: true
  - name: ipo_status
    category: funding
    description: whether the company is public
`), 0o644))

	fields, err := loadFields(path)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, model.CategoryDiscovery, fields[0].Category)
	assert.True(t, fields[0].Required)
	assert.Equal(t, "ipo_status", fields[1].Name)
	assert.Equal(t, "whether the company is public", fields[1].Description)
}

func TestLoadFields_UnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fields:
  - name: x
    category: nonsense
`), 0o644))

	_, err := loadFields(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field category")
}

func TestLoadFields_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fields: []"), 0o644))

	_, err := loadFields(path)
	require.Error(t, err)
}

func TestReadLeadFile_UnsupportedFormat(t *testing.T) {
	_, err := readLeadFile("leads.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported lead list format")
}
