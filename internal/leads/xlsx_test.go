package leads

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeTempXLSX(t *testing.T, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	require.NoError(t, err)
	for _, row := range rows {
		r := sheet.AddRow()
		for _, val := range row {
			r.AddCell().Value = val
		}
	}

	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadLeadXLSX(t *testing.T) {
	path := writeTempXLSX(t, [][]string{
		{"Organization Name", "First Name", "Last Name", "Seniority", "LinkedIn Headline"},
		{"Absolute Aluminum", "Dale", "Smith", "c_suite", "CEO"},
		{"Globex Services", "Pat", "Jones", "entry", ""},
	})

	records, err := ReadLeadXLSX(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Absolute Aluminum", records[0].OrganizationName)
	assert.Equal(t, "c_suite", records[0].Seniority)
	assert.Equal(t, "CEO", records[0].LinkedInHeadline)
	assert.Equal(t, "Pat", records[1].FirstName)
	// Column absent from the sheet maps to an absent value.
	assert.Empty(t, records[0].OrganizationWebsite)
}

func TestReadLeadXLSX_MissingRequiredColumn(t *testing.T) {
	path := writeTempXLSX(t, [][]string{
		{"First Name", "Last Name"},
		{"Dale", "Smith"},
	})

	_, err := ReadLeadXLSX(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Organization Name")
}

func TestReadLeadXLSX_NoDataRows(t *testing.T) {
	path := writeTempXLSX(t, [][]string{{"Organization Name"}})

	_, err := ReadLeadXLSX(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestReadLeadXLSX_MissingFile(t *testing.T) {
	_, err := ReadLeadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
}
