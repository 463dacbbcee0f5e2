package model

import "strings"

type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
)

// Cell is a tagged union over the value kinds a spreadsheet cell can hold.
// Numbers carry Excel's raw serial value; dates and times arrive as numbers
// and are decoded downstream.
type Cell struct {
	Kind   CellKind `json:"kind"`
	Number float64  `json:"number,omitempty"`
	Text   string   `json:"text,omitempty"`
}

func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// IsBlank reports whether the cell counts as absent for row filtering:
// empty, whitespace-only, "-" or "N/A". Numeric cells are never blank,
// a numeric zero still counts as present.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellNumber:
		return false
	default:
		s := strings.TrimSpace(c.Text)
		if s == "" || s == "-" {
			return true
		}
		return strings.EqualFold(s, "n/a")
	}
}

// String returns the cell's text form, empty for blank cells. Numeric
// cells are not stringified here; callers that need a formatted value go
// through the excel package.
func (c Cell) String() string {
	if c.Kind == CellText {
		return c.Text
	}
	return ""
}
