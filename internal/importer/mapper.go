package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/triple-tgg/sams-sub001/internal/excel"
	"github.com/triple-tgg/sams-sub001/internal/model"
)

// Column aliases tolerate the header variants seen across airline
// schedule workbooks. Lookup is case-insensitive on trimmed headers.
var columnAliases = map[string][]string{
	"airline":     {"AIRLINE", "AIRLINES"},
	"acReg":       {"A/C REG", "AC REG", "ACREG", "REG"},
	"acType":      {"A/C TYPE", "AC TYPE", "ACTYPE"},
	"arrFlightNo": {"ARRIVAL FLIGHT NO", "ARR FLIGHT NO", "ARR.FLIGHT NO", "ARR FLT NO"},
	"depFlightNo": {"DEPARTURE FLIGHT NO", "DEP FLIGHT NO", "DEP.FLIGHT NO", "DEP FLT NO"},
	"routeFrom":   {"ROUTE FROM", "FROM"},
	"routeTo":     {"ROUTE TO", "TO"},
	"sta":         {"STA"},
	"std":         {"STD"},
	"eta":         {"ETA", "ATA"},
	"bay":         {"BAY", "BAY NO"},
	"status":      {"STATUS", "CHECK STATUS"},
	"cs":          {"CS", "C/S"},
	"mech":        {"MECH", "MECHANIC"},
	"note":        {"NOTE", "REMARK", "REMARKS"},
}

// findCell locates a field's cell in a row by trying the column's header
// aliases against the sheet's actual headers.
func findCell(row model.Row, headers []string, field string) (string, model.Cell, bool) {
	for _, header := range headers {
		normalized := strings.ToUpper(strings.TrimSpace(header))
		for _, alias := range columnAliases[field] {
			if normalized == alias {
				cell, ok := row.Cells[header]
				return header, cell, ok
			}
		}
	}
	return "", model.EmptyCell(), false
}

// textOf renders a cell as trimmed text. Numeric cells are formatted
// without a trailing fraction so bay "5" does not become "5.000000".
func textOf(c model.Cell) string {
	switch c.Kind {
	case model.CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case model.CellText:
		return strings.TrimSpace(c.Text)
	}
	return ""
}

// BuildImportData maps one raw row into the API shape, resolving
// references against the session's pinned option lists. Unresolved
// references come back as warnings; they never fail the mapping.
func BuildImportData(row model.Row, sheet *model.ParsedSheet, opts model.OptionSet) (model.FlightImportData, []model.RowIssue) {
	var data model.FlightImportData
	var warnings []model.RowIssue

	warn := func(column, format string, args ...any) {
		warnings = append(warnings, model.RowIssue{
			Row:     row.Index,
			Column:  column,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if header, cell, ok := findCell(row, sheet.Headers, "airline"); ok && !cell.IsBlank() {
		value := textOf(cell)
		if opt := excel.FindOptionMatch(value, opts.Airlines, excel.MatchByLabel); opt != nil {
			data.AirlinesID = opt.ID
		} else {
			warn(header, "airline '%s' not found in master data", value)
		}
	}

	if header, cell, ok := findCell(row, sheet.Headers, "acType"); ok && !cell.IsBlank() {
		value := textOf(cell)
		if opt := excel.FindOptionMatch(value, opts.AircraftTypes, excel.MatchByValue); opt != nil {
			data.AcTypeID = opt.ID
		} else {
			warn(header, "aircraft type '%s' not found in master data", value)
		}
	}

	if header, cell, ok := findCell(row, sheet.Headers, "routeFrom"); ok && !cell.IsBlank() {
		value := textOf(cell)
		if opt := excel.FindOptionMatch(value, opts.Stations, excel.MatchByValue); opt != nil {
			data.RouteFrom = opt.Value
		} else {
			data.RouteFrom = value
			warn(header, "station '%s' not found in master data", value)
		}
	}

	if header, cell, ok := findCell(row, sheet.Headers, "routeTo"); ok && !cell.IsBlank() {
		value := textOf(cell)
		if opt := excel.FindOptionMatch(value, opts.Stations, excel.MatchByValue); opt != nil {
			data.RouteTo = opt.Value
		} else {
			data.RouteTo = value
			warn(header, "station '%s' not found in master data", value)
		}
	}

	if header, cell, ok := findCell(row, sheet.Headers, "status"); ok && !cell.IsBlank() {
		value := textOf(cell)
		opt := excel.FindOptionMatch(value, opts.CheckStatuses, excel.MatchByLabel)
		if opt == nil {
			opt = excel.FindOptionMatch(value, opts.CheckStatuses, excel.MatchByValue)
		}
		if opt != nil {
			data.CheckStatusID = opt.ID
		} else {
			warn(header, "check status '%s' not found in master data", value)
		}
	}

	if header, cell, ok := findCell(row, sheet.Headers, "cs"); ok && !cell.IsBlank() {
		match := excel.MatchStaffList(cell.String(), opts.Staff)
		for _, opt := range match.Found {
			data.CsIDList = append(data.CsIDList, opt.ID)
		}
		for _, token := range match.NotFound {
			warn(header, "staff '%s' not found in master data", token)
		}
	}

	if header, cell, ok := findCell(row, sheet.Headers, "mech"); ok && !cell.IsBlank() {
		match := excel.MatchStaffList(cell.String(), opts.Staff)
		for _, opt := range match.Found {
			data.MechIDList = append(data.MechIDList, opt.ID)
		}
		for _, token := range match.NotFound {
			warn(header, "staff '%s' not found in master data", token)
		}
	}

	if _, cell, ok := findCell(row, sheet.Headers, "acReg"); ok {
		data.AcReg = textOf(cell)
	}
	if _, cell, ok := findCell(row, sheet.Headers, "arrFlightNo"); ok {
		data.ArrivalFlightNo = textOf(cell)
	}
	if _, cell, ok := findCell(row, sheet.Headers, "depFlightNo"); ok {
		data.DepartureFlightNo = textOf(cell)
	}
	if _, cell, ok := findCell(row, sheet.Headers, "bay"); ok {
		data.BayNo = textOf(cell)
	}
	if _, cell, ok := findCell(row, sheet.Headers, "note"); ok {
		data.Note = textOf(cell)
	}

	if _, cell, ok := findCell(row, sheet.Headers, "sta"); ok {
		data.ArrivalStaDate = excel.FormatDateTime(cell, sheet.SheetDate)
	}
	if _, cell, ok := findCell(row, sheet.Headers, "std"); ok {
		data.DepartureStdDate = excel.FormatDateTime(cell, sheet.SheetDate)
	}
	if _, cell, ok := findCell(row, sheet.Headers, "eta"); ok {
		data.EtaDate = excel.FormatDateTime(cell, sheet.SheetDate)
	}

	return data, warnings
}
