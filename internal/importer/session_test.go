package importer

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/triple-tgg/sams-sub001/internal/model"
)

func TestSnapshot_DetachedFromLiveSession(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeFlightClient{}, &fakeCache{})
	session := openSession(t, svc, []testSheet{
		{name: "05-02-2026", rows: [][]any{scheduleHeaders, scheduleRow("Thai Airways", "HS-TKA")}},
	})
	if _, err := svc.Validate(context.Background(), session.ID); err != nil {
		t.Fatalf("validate: %v", err)
	}

	snap := session.Snapshot()
	if snap.Phase != PhaseValidated || len(snap.Sheets) != 1 {
		t.Fatalf("snapshot state: %+v", snap)
	}

	cells := map[string]model.Cell{
		"AIRLINE":    model.TextCell("Thai AirAsia"),
		"A/C REG":    model.TextCell("HS-ABZ"),
		"ROUTE FROM": model.TextCell("BKK"),
		"ROUTE TO":   model.TextCell("HKT"),
		"STA":        model.TextCell("14:30"),
	}
	if _, err := svc.EditRow(session.ID, 0, 0, cells); err != nil {
		t.Fatalf("edit: %v", err)
	}

	got := snap.Sheets[0].Rows[0].Cells["A/C REG"].Text
	if got != "HS-TKA" {
		t.Fatalf("snapshot must not see later edits, got %q", got)
	}
	if snap.Validation[0][0].Mapped.AcReg != "HS-TKA" {
		t.Fatalf("snapshot verdict mutated: %+v", snap.Validation[0][0])
	}
}

func TestSnapshot_MarshalsWhileSessionMutates(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeFlightClient{}, &fakeCache{})
	session := openSession(t, svc, []testSheet{
		{name: "05-02-2026", rows: [][]any{scheduleHeaders, scheduleRow("Thai Airways", "HS-TKA")}},
	})
	if _, err := svc.Validate(context.Background(), session.ID); err != nil {
		t.Fatalf("validate: %v", err)
	}

	cells := map[string]model.Cell{
		"AIRLINE": model.TextCell("Thai AirAsia"),
		"A/C REG": model.TextCell("HS-ABZ"),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			if _, err := svc.EditRow(session.ID, 0, 0, cells); err != nil {
				t.Errorf("edit: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 100; i++ {
		if _, err := json.Marshal(session.Snapshot()); err != nil {
			t.Fatalf("marshal: %v", err)
		}
	}
	wg.Wait()
}
