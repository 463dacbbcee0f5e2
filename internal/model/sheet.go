package model

// Row is one data row of a worksheet, keyed by the verbatim header string.
// Index is the Excel row number (the header is row 1, data starts at 2).
type Row struct {
	Index int             `json:"index"`
	Cells map[string]Cell `json:"cells"`
}

// ParsedSheet is one visible worksheet tab of an uploaded workbook.
// SheetDate is the canonical YYYY-MM-DD inferred from the tab name; empty
// means the name is not a recognized date, which blocks validation.
type ParsedSheet struct {
	Name      string   `json:"name"`
	Headers   []string `json:"headers"`
	Rows      []Row    `json:"rows"`
	SheetDate string   `json:"sheetDate,omitempty"`
}

// RowCount is a convenience for summaries and logging.
func (s *ParsedSheet) RowCount() int {
	return len(s.Rows)
}
