package excel

import (
	"testing"
	"time"

	"github.com/triple-tgg/sams-sub001/internal/model"
)

func TestSerialToTime_EpochOffset(t *testing.T) {
	t.Parallel()

	got := SerialToTime(25569)
	want := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("serial 25569 want=%v got=%v", want, got)
	}
}

func TestFormatDate_SerialRoundTrip(t *testing.T) {
	t.Parallel()

	// 45658 is 2025-01-01 under the 1900 epoch convention.
	if got := FormatDate(model.NumberCell(45658)); got != "2025-01-01" {
		t.Fatalf("serial 45658 want=2025-01-01 got=%s", got)
	}
	if got := FormatDate(model.NumberCell(25569)); got != "1970-01-01" {
		t.Fatalf("serial 25569 want=1970-01-01 got=%s", got)
	}
	// The fractional time part must not shift the day.
	if got := FormatDate(model.NumberCell(45658.9)); got != "2025-01-01" {
		t.Fatalf("serial 45658.9 want=2025-01-01 got=%s", got)
	}
}

func TestFormatDate_Strings(t *testing.T) {
	t.Parallel()

	if got := FormatDate(model.TextCell("2026-02-05")); got != "2026-02-05" {
		t.Fatalf("iso want=2026-02-05 got=%s", got)
	}
	if got := FormatDate(model.TextCell("05/02/2026")); got != "2026-02-05" {
		t.Fatalf("dd/mm want=2026-02-05 got=%s", got)
	}
	// Unparseable text comes back unchanged.
	if got := FormatDate(model.TextCell("tomorrow")); got != "tomorrow" {
		t.Fatalf("unparseable want=tomorrow got=%s", got)
	}
	if got := FormatDate(model.EmptyCell()); got != "" {
		t.Fatalf("empty cell want=\"\" got=%s", got)
	}
}

func TestFormatTime_SerialRounding(t *testing.T) {
	t.Parallel()

	if got := FormatTime(model.NumberCell(0.5)); got != "12:00" {
		t.Fatalf("0.5 want=12:00 got=%s", got)
	}
	if got := FormatTime(model.NumberCell(0.25)); got != "06:00" {
		t.Fatalf("0.25 want=06:00 got=%s", got)
	}
	if got := FormatTime(model.NumberCell(0.9993055555)); got != "23:59" {
		t.Fatalf("0.9993055555 want=23:59 got=%s", got)
	}
	// Serial >= 1 is a full datetime, only the fraction carries the time.
	if got := FormatTime(model.NumberCell(45658.75)); got != "18:00" {
		t.Fatalf("45658.75 want=18:00 got=%s", got)
	}
}

func TestFormatTime_Strings(t *testing.T) {
	t.Parallel()

	if got := FormatTime(model.TextCell("9:30")); got != "09:30" {
		t.Fatalf("9:30 want=09:30 got=%s", got)
	}
	if got := FormatTime(model.TextCell("09:30:15")); got != "09:30" {
		t.Fatalf("09:30:15 want=09:30 got=%s", got)
	}
	if got := FormatTime(model.TextCell("2026-02-05 14:30:00")); got != "14:30" {
		t.Fatalf("datetime string want=14:30 got=%s", got)
	}
	if got := FormatTime(model.TextCell("noon")); got != "noon" {
		t.Fatalf("unparseable want=noon got=%s", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	t.Parallel()

	// Bare time serial takes its date from the sheet context.
	if got := FormatDateTime(model.NumberCell(0.25), "2026-02-05"); got != "05/02/2026 06:00" {
		t.Fatalf("0.25+context want=05/02/2026 06:00 got=%s", got)
	}
	// No context available: bare time.
	if got := FormatDateTime(model.NumberCell(0.25), ""); got != "06:00" {
		t.Fatalf("0.25 no context want=06:00 got=%s", got)
	}
	// Full datetime serial ignores the context.
	if got := FormatDateTime(model.NumberCell(45658.5), "2026-02-05"); got != "01/01/2025 12:00" {
		t.Fatalf("45658.5 want=01/01/2025 12:00 got=%s", got)
	}
	if got := FormatDateTime(model.TextCell("2026-02-05 14:30"), ""); got != "05/02/2026 14:30" {
		t.Fatalf("iso string want=05/02/2026 14:30 got=%s", got)
	}
	if got := FormatDateTime(model.TextCell("14:30"), "2026-02-05"); got != "05/02/2026 14:30" {
		t.Fatalf("time string+context want=05/02/2026 14:30 got=%s", got)
	}
	if got := FormatDateTime(model.TextCell("garbage"), "2026-02-05"); got != "garbage" {
		t.Fatalf("unparseable want=garbage got=%s", got)
	}
}

func TestParseSheetNameDate_AcceptedFormats(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"05-02-2026": "2026-02-05",
		"05/02/2026": "2026-02-05",
		"05.02.2026": "2026-02-05",
		"2026-02-05": "2026-02-05",
		"2026/02/05": "2026-02-05",
		"2026.02.05": "2026-02-05",
		"05022026":   "2026-02-05",
		"20260205":   "2026-02-05",
	}
	for name, want := range cases {
		got, ok := ParseSheetNameDate(name)
		if !ok {
			t.Fatalf("%s: expected a date", name)
		}
		if got != want {
			t.Fatalf("%s want=%s got=%s", name, want, got)
		}
	}
}

func TestParseSheetNameDate_Unrecognized(t *testing.T) {
	t.Parallel()

	if _, ok := ParseSheetNameDate("notadate"); ok {
		t.Fatalf("notadate: expected no date")
	}
	if _, ok := ParseSheetNameDate(""); ok {
		t.Fatalf("empty: expected no date")
	}
}
