package leads

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-enricher/internal/model"
)

// Input column names for lead list files. Blank or missing cells map to
// absent values.
const (
	colOrgName      = "Organization Name"
	colFirstName    = "First Name"
	colLastName     = "Last Name"
	colSeniority    = "Seniority"
	colEmail        = "Email"
	colPersonal     = "Personal Email"
	colLinkedIn     = "LinkedIn URL"
	colHeadline     = "LinkedIn Headline"
	colOrgLinkedIn  = "Organization LinkedIn URL"
	colOrgWebsite   = "Organization Website"
	colOrgPhone     = "Organization Phone"
	colKeywords1    = "Keywords 1"
	colKeywords2    = "Keywords 2"
	colIceBreaker   = "Ice Breaker"
)

// ReadLeadCSV reads a lead list CSV and returns one record per data row.
func ReadLeadCSV(path string) ([]model.LeadRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "leads: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "leads: read csv")
	}
	if len(records) < 2 {
		return nil, eris.New("leads: csv has no data rows")
	}

	header := records[0]
	colIdx := headerIndex(header)
	if _, ok := colIdx[colOrgName]; !ok {
		return nil, eris.Errorf("leads: missing required column %q", colOrgName)
	}

	return recordsFromRows(colIdx, records[1:]), nil
}

// WriteLeadCSV writes the processed records of a batch run to a CSV file.
func WriteLeadCSV(path string, result *model.LeadProcessingResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "leads: create output csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		colOrgName, colFirstName, colLastName, "Seniority Title",
		colEmail, colPersonal, "Company Description",
		colLinkedIn, colOrgLinkedIn, colOrgWebsite, colOrgPhone,
		"Decision Maker", "Registry Data",
	}
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "leads: write csv header")
	}

	for _, rec := range result.Results {
		row := []string{
			rec.OrganizationName, rec.FirstName, rec.LastName, rec.SeniorityTitle,
			rec.Email, rec.PersonalEmail, rec.CompanyDescription,
			rec.LinkedInURL, rec.OrganizationLinkedIn, rec.OrganizationWebsite, rec.OrganizationPhone,
			strconv.FormatBool(rec.IsDecisionMaker), rec.RegistryData,
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "leads: write csv row")
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "leads: flush csv")
}

// headerIndex maps trimmed column names to their position.
func headerIndex(header []string) map[string]int {
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[strings.TrimSpace(col)] = i
	}
	return colIdx
}

// recordsFromRows maps raw rows to LeadRecords using the header index.
func recordsFromRows(colIdx map[string]int, rows [][]string) []model.LeadRecord {
	records := make([]model.LeadRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.LeadRecord{
			OrganizationName:      getCol(row, colIdx, colOrgName),
			FirstName:             getCol(row, colIdx, colFirstName),
			LastName:              getCol(row, colIdx, colLastName),
			Seniority:             getCol(row, colIdx, colSeniority),
			Email:                 getCol(row, colIdx, colEmail),
			PersonalEmail:         getCol(row, colIdx, colPersonal),
			LinkedInURL:           getCol(row, colIdx, colLinkedIn),
			LinkedInHeadline:      getCol(row, colIdx, colHeadline),
			OrganizationLinkedIn:  getCol(row, colIdx, colOrgLinkedIn),
			OrganizationWebsite:   getCol(row, colIdx, colOrgWebsite),
			OrganizationPhone:     getCol(row, colIdx, colOrgPhone),
			OrganizationKeywords1: getCol(row, colIdx, colKeywords1),
			OrganizationKeywords2: getCol(row, colIdx, colKeywords2),
			IceBreaker:            getCol(row, colIdx, colIceBreaker),
		})
	}
	return records
}

// getCol safely retrieves a column value from a row.
func getCol(row []string, colIdx map[string]int, col string) string {
	idx, ok := colIdx[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
