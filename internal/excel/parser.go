package excel

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/triple-tgg/sams-sub001/internal/model"
	"github.com/triple-tgg/sams-sub001/pkg/errors"
)

// AllowedExtension reports whether the uploaded file name carries an
// accepted spreadsheet extension. Checked before any parsing happens.
func AllowedExtension(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// ParseWorkbook reads raw spreadsheet bytes into one ParsedSheet per
// eligible tab. Tabs whose name starts with "_" and hidden tabs are
// skipped. The first row of each tab is taken verbatim as headers; rows
// whose cells are all blank-like are dropped.
func ParseWorkbook(data []byte) ([]model.ParsedSheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidFileFormat, err)
	}
	defer f.Close()

	var sheets []model.ParsedSheet
	totalRows := 0

	for _, name := range f.GetSheetList() {
		if strings.HasPrefix(name, "_") {
			continue
		}
		if visible, err := f.GetSheetVisible(name); err == nil && !visible {
			continue
		}

		raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		if len(raw) == 0 {
			continue
		}

		headers := raw[0]
		sheet := model.ParsedSheet{
			Name:    name,
			Headers: headers,
		}
		if d, ok := ParseSheetNameDate(name); ok {
			sheet.SheetDate = d
		}

		for ri := 1; ri < len(raw); ri++ {
			cells := make(map[string]model.Cell, len(headers))
			blank := true
			for ci, header := range headers {
				var value string
				if ci < len(raw[ri]) {
					value = raw[ri][ci]
				}
				cell := classifyCell(f, name, ci, ri, value)
				if !cell.IsBlank() {
					blank = false
				}
				cells[header] = cell
			}
			if blank {
				continue
			}
			sheet.Rows = append(sheet.Rows, model.Row{Index: ri + 1, Cells: cells})
		}

		totalRows += len(sheet.Rows)
		sheets = append(sheets, sheet)
	}

	if len(sheets) == 0 || totalRows == 0 {
		return nil, errors.ErrEmptyWorkbook
	}
	return sheets, nil
}

// classifyCell builds the tagged cell value from the raw string and the
// stored cell type. Shared/inline strings stay text even when they look
// numeric; everything else that parses as a float is a number.
func classifyCell(f *excelize.File, sheet string, col, row int, raw string) model.Cell {
	if raw == "" {
		return model.EmptyCell()
	}

	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err == nil {
		switch ct, _ := f.GetCellType(sheet, axis); ct {
		case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
			return model.TextCell(raw)
		}
	}

	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return model.NumberCell(v)
	}
	return model.TextCell(raw)
}
