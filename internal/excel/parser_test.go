package excel

import (
	stderrors "errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/triple-tgg/sams-sub001/internal/model"
	"github.com/triple-tgg/sams-sub001/pkg/errors"
)

func buildWorkbook(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	build(f)

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseWorkbook_SingleSheet(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, func(f *excelize.File) {
		f.SetSheetName("Sheet1", "05-02-2026")
		f.SetSheetRow("05-02-2026", "A1", &[]any{"AIRLINE", "A/C TYPE", "A/C REG", "STA"})
		f.SetSheetRow("05-02-2026", "A2", &[]any{"Thai Airways", "A320", "HS-ABC", 0.25})
	})

	sheets, err := ParseWorkbook(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("want 1 sheet got %d", len(sheets))
	}

	sheet := sheets[0]
	if sheet.SheetDate != "2026-02-05" {
		t.Fatalf("sheetDate want=2026-02-05 got=%s", sheet.SheetDate)
	}
	if len(sheet.Rows) != 1 {
		t.Fatalf("want 1 row got %d", len(sheet.Rows))
	}

	row := sheet.Rows[0]
	if row.Index != 2 {
		t.Fatalf("row index want=2 got=%d", row.Index)
	}
	if cell := row.Cells["AIRLINE"]; cell.Kind != model.CellText || cell.Text != "Thai Airways" {
		t.Fatalf("AIRLINE cell unexpected: %+v", cell)
	}
	if cell := row.Cells["STA"]; cell.Kind != model.CellNumber || cell.Number != 0.25 {
		t.Fatalf("STA cell unexpected: %+v", cell)
	}
}

func TestParseWorkbook_DropsBlankLikeRows(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, func(f *excelize.File) {
		f.SetSheetName("Sheet1", "05-02-2026")
		f.SetSheetRow("05-02-2026", "A1", &[]any{"AIRLINE", "BAY", "NOTE"})
		f.SetSheetRow("05-02-2026", "A2", &[]any{"-", "N/A", "  "})
		f.SetSheetRow("05-02-2026", "A3", &[]any{"", 0, ""})
		f.SetSheetRow("05-02-2026", "A4", &[]any{"n/a", "-", ""})
	})

	sheets, err := ParseWorkbook(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(sheets[0].Rows) != 1 {
		t.Fatalf("want 1 surviving row got %d", len(sheets[0].Rows))
	}
	// A numeric zero keeps its row.
	row := sheets[0].Rows[0]
	if row.Index != 3 {
		t.Fatalf("surviving row index want=3 got=%d", row.Index)
	}
	if cell := row.Cells["BAY"]; cell.Kind != model.CellNumber || cell.Number != 0 {
		t.Fatalf("BAY cell unexpected: %+v", cell)
	}
}

func TestParseWorkbook_SkipsInternalAndHiddenSheets(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, func(f *excelize.File) {
		f.SetSheetName("Sheet1", "05-02-2026")
		f.SetSheetRow("05-02-2026", "A1", &[]any{"AIRLINE"})
		f.SetSheetRow("05-02-2026", "A2", &[]any{"Thai Airways"})

		f.NewSheet("_meta")
		f.SetSheetRow("_meta", "A1", &[]any{"KEY"})
		f.SetSheetRow("_meta", "A2", &[]any{"value"})

		f.NewSheet("hidden")
		f.SetSheetRow("hidden", "A1", &[]any{"AIRLINE"})
		f.SetSheetRow("hidden", "A2", &[]any{"Mystery Air"})
		f.SetSheetVisible("hidden", false)
	})

	sheets, err := ParseWorkbook(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(sheets) != 1 || sheets[0].Name != "05-02-2026" {
		t.Fatalf("unexpected sheets: %+v", sheets)
	}
}

func TestParseWorkbook_UnrecognizedSheetNameHasNoDate(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, func(f *excelize.File) {
		f.SetSheetName("Sheet1", "notadate")
		f.SetSheetRow("notadate", "A1", &[]any{"AIRLINE"})
		f.SetSheetRow("notadate", "A2", &[]any{"Thai Airways"})
	})

	sheets, err := ParseWorkbook(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sheets[0].SheetDate != "" {
		t.Fatalf("sheetDate want empty got=%s", sheets[0].SheetDate)
	}
}

func TestParseWorkbook_EmptyAndInvalid(t *testing.T) {
	t.Parallel()

	headerOnly := buildWorkbook(t, func(f *excelize.File) {
		f.SetSheetRow("Sheet1", "A1", &[]any{"AIRLINE"})
	})
	if _, err := ParseWorkbook(headerOnly); !stderrors.Is(err, errors.ErrEmptyWorkbook) {
		t.Fatalf("header-only want ErrEmptyWorkbook got %v", err)
	}

	if _, err := ParseWorkbook([]byte("not a spreadsheet")); !stderrors.Is(err, errors.ErrInvalidFileFormat) {
		t.Fatalf("garbage bytes want ErrInvalidFileFormat got %v", err)
	}
}

func TestAllowedExtension(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"schedule.xlsx", "schedule.XLS"} {
		if !AllowedExtension(name) {
			t.Fatalf("%s should be allowed", name)
		}
	}
	for _, name := range []string{"schedule.csv", "schedule.pdf", "schedule"} {
		if AllowedExtension(name) {
			t.Fatalf("%s should be rejected", name)
		}
	}
}
