package importer

import (
	"testing"

	"github.com/triple-tgg/sams-sub001/internal/model"
)

func buildSheet(headers []string, cells map[string]model.Cell) (*model.ParsedSheet, model.Row) {
	sheet := &model.ParsedSheet{
		Name:      "05-02-2026",
		Headers:   headers,
		SheetDate: "2026-02-05",
	}
	row := model.Row{Index: 2, Cells: cells}
	sheet.Rows = []model.Row{row}
	return sheet, row
}

func TestBuildImportData_HeaderAliases(t *testing.T) {
	t.Parallel()

	sheet, row := buildSheet(
		[]string{"airline", "Arr Flt No", "DEP FLT NO", "BAY NO", "REMARK"},
		map[string]model.Cell{
			"airline":    model.TextCell("Thai Airways"),
			"Arr Flt No": model.TextCell("TG101"),
			"DEP FLT NO": model.TextCell("TG102"),
			"BAY NO":     model.NumberCell(5),
			"REMARK":     model.TextCell("night stop"),
		},
	)

	data, warnings := BuildImportData(row, sheet, testOptions())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if data.AirlinesID != 1 {
		t.Fatalf("airline alias not mapped, got %d", data.AirlinesID)
	}
	if data.ArrivalFlightNo != "TG101" || data.DepartureFlightNo != "TG102" {
		t.Fatalf("flight no aliases not mapped: %q %q", data.ArrivalFlightNo, data.DepartureFlightNo)
	}
	if data.BayNo != "5" {
		t.Fatalf("numeric bay want '5' got %q", data.BayNo)
	}
	if data.Note != "night stop" {
		t.Fatalf("REMARK alias not mapped, got %q", data.Note)
	}
}

func TestBuildImportData_StaffListsAndWarnings(t *testing.T) {
	t.Parallel()

	sheet, row := buildSheet(
		[]string{"C/S", "MECH"},
		map[string]model.Cell{
			"C/S":  model.TextCell("CS001, Ghost"),
			"MECH": model.TextCell("Somchai P."),
		},
	)

	data, warnings := BuildImportData(row, sheet, testOptions())
	if len(data.CsIDList) != 1 || data.CsIDList[0] != 31 {
		t.Fatalf("cs list want [31] got %v", data.CsIDList)
	}
	if len(data.MechIDList) != 1 || data.MechIDList[0] != 31 {
		t.Fatalf("mech label match want [31] got %v", data.MechIDList)
	}
	if len(warnings) != 1 {
		t.Fatalf("want 1 warning for unknown staff got %v", warnings)
	}
	if warnings[0].Column != "C/S" || warnings[0].Row != 2 {
		t.Fatalf("warning must carry column and source row: %+v", warnings[0])
	}
}

func TestBuildImportData_CheckStatusFallsBackToValue(t *testing.T) {
	t.Parallel()

	sheet, row := buildSheet(
		[]string{"STATUS"},
		map[string]model.Cell{"STATUS": model.TextCell("TR")},
	)

	data, warnings := BuildImportData(row, sheet, testOptions())
	if data.CheckStatusID != 40 {
		t.Fatalf("value fallback want 40 got %d", data.CheckStatusID)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestBuildImportData_TimesUseSheetDateContext(t *testing.T) {
	t.Parallel()

	sheet, row := buildSheet(
		[]string{"STA", "STD", "ETA"},
		map[string]model.Cell{
			"STA": model.TextCell("9:05"),
			"STD": model.NumberCell(0.5),
			"ETA": model.NumberCell(46100.25),
		},
	)

	data, warnings := BuildImportData(row, sheet, testOptions())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if data.ArrivalStaDate != "05/02/2026 09:05" {
		t.Fatalf("sta want context-joined value got %q", data.ArrivalStaDate)
	}
	if data.DepartureStdDate != "05/02/2026 12:00" {
		t.Fatalf("std serial fraction want 05/02/2026 12:00 got %q", data.DepartureStdDate)
	}
	if data.EtaDate != "19/03/2026 06:00" {
		t.Fatalf("full serial must carry its own date, got %q", data.EtaDate)
	}
}
