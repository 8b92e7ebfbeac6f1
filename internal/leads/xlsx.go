package leads

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/lead-enricher/internal/model"
)

// ReadLeadXLSX reads the first sheet of an XLSX lead list. The first row is
// the header; the same column names as the CSV reader apply.
func ReadLeadXLSX(path string) ([]model.LeadRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "leads: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("leads: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) < 2 {
		return nil, eris.New("leads: xlsx has no data rows")
	}

	header := rowToStrings(sheet.Rows[0])
	colIdx := headerIndex(header)
	if _, ok := colIdx[colOrgName]; !ok {
		return nil, eris.Errorf("leads: missing required column %q", colOrgName)
	}

	rows := make([][]string, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		rows = append(rows, rowToStrings(row))
	}
	return recordsFromRows(colIdx, rows), nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
