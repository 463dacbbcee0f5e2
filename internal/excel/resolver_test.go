package excel

import (
	"testing"

	"github.com/triple-tgg/sams-sub001/internal/model"
)

var stationOptions = []model.Option{
	{Value: "BKK", Label: "Bangkok Suvarnabhumi", ID: 1},
	{Value: "DMK", Label: "Bangkok Don Mueang", ID: 2},
	{Value: "HKT", Label: "Phuket", ID: 3},
}

func TestFindOptionMatch_CaseAndWhitespaceInsensitive(t *testing.T) {
	t.Parallel()

	opt := FindOptionMatch(" bkk ", stationOptions, MatchByValue)
	if opt == nil || opt.ID != 1 {
		t.Fatalf("' bkk ' want ID=1 got %+v", opt)
	}
	opt = FindOptionMatch("phuket", stationOptions, MatchByLabel)
	if opt == nil || opt.ID != 3 {
		t.Fatalf("'phuket' by label want ID=3 got %+v", opt)
	}
}

func TestFindOptionMatch_ExactOnly(t *testing.T) {
	t.Parallel()

	if opt := FindOptionMatch("BK", stationOptions, MatchByValue); opt != nil {
		t.Fatalf("prefix 'BK' must not match, got %+v", opt)
	}
	if opt := FindOptionMatch("Bangkok", stationOptions, MatchByLabel); opt != nil {
		t.Fatalf("partial label must not match, got %+v", opt)
	}
	if opt := FindOptionMatch("", stationOptions, MatchByValue); opt != nil {
		t.Fatalf("empty value must not match, got %+v", opt)
	}
}

func TestMatchStaffList(t *testing.T) {
	t.Parallel()

	staff := []model.Option{
		{Value: "CS001", Label: "Somchai P.", ID: 11},
		{Value: "CS002", Label: "Arthit K.", ID: 12},
		{Value: "ME010", Label: "Niran T.", ID: 21},
	}

	match := MatchStaffList("cs001, Niran T.\nGhost", staff)
	if len(match.Found) != 2 {
		t.Fatalf("want 2 found got %d: %+v", len(match.Found), match.Found)
	}
	if match.Found[0].ID != 11 || match.Found[1].ID != 21 {
		t.Fatalf("unexpected matches: %+v", match.Found)
	}
	if len(match.NotFound) != 1 || match.NotFound[0] != "Ghost" {
		t.Fatalf("want NotFound=[Ghost] got %v", match.NotFound)
	}

	// Duplicates collapse to one match.
	match = MatchStaffList("CS001;cs001", staff)
	if len(match.Found) != 1 {
		t.Fatalf("duplicates want 1 found got %d", len(match.Found))
	}
}
