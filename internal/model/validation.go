package model

// RowIssue locates one validation finding. Row is the Excel row number
// within the owning sheet, Column the header the finding refers to.
type RowIssue struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

// ValidatedRow is the validation outcome for one source row. Errors come
// from the server batch-validate call only; Warnings are computed locally
// from reference resolution and are recomputed on edit.
type ValidatedRow struct {
	OriginalIndex int              `json:"originalIndex"`
	SheetIndex    int              `json:"sheetIndex"`
	Mapped        FlightImportData `json:"mapped"`
	IsValid       bool             `json:"isValid"`
	Errors        []RowIssue       `json:"errors"`
	Warnings      []RowIssue       `json:"warnings"`
}

// Uploadable reports whether the row may be included in the insert batch.
func (r *ValidatedRow) Uploadable() bool {
	return r.IsValid && len(r.Warnings) == 0
}

// SheetSummary aggregates per-sheet validation counts.
type SheetSummary struct {
	Sheet    string `json:"sheet"`
	Valid    int    `json:"valid"`
	Invalid  int    `json:"invalid"`
	Warnings int    `json:"warnings"`
}

// ValidationSummary is the toast-level pass/fail report for a validate run.
type ValidationSummary struct {
	FlagPass bool           `json:"flagPass"`
	Valid    int            `json:"valid"`
	Invalid  int            `json:"invalid"`
	Warnings int            `json:"warnings"`
	Sheets   []SheetSummary `json:"sheets"`
}
