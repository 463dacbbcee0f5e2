package importer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/triple-tgg/sams-sub001/internal/logger"
	"github.com/triple-tgg/sams-sub001/internal/model"
)

// Phase is the lifecycle state of an import session. Transitions happen
// only inside the named session operations.
type Phase string

const (
	PhaseParsed     Phase = "PARSED"
	PhaseValidating Phase = "VALIDATING"
	PhaseValidated  Phase = "VALIDATED"
	PhaseUploading  Phase = "UPLOADING"
	PhaseDone       Phase = "DONE"
)

// Session holds all state of one import: the parsed sheets, the option
// lists pinned at open time, and the per-sheet validation outcomes.
// Nothing is shared across sessions.
type Session struct {
	ID        string
	FileName  string
	FileBytes []byte
	Sheets    []model.ParsedSheet
	Options   model.OptionSet
	// Validation is keyed by sheet index; each slice is aligned with the
	// sheet's Rows slice.
	Validation map[int][]model.ValidatedRow
	Phase      Phase
	CreatedAt  time.Time

	mu sync.Mutex
}

func (s *Session) lock()   { s.mu.Lock() }
func (s *Session) unlock() { s.mu.Unlock() }

// clearValidation drops every per-sheet verdict and returns the session to
// the parsed state. Used on sheet rename and file re-pick.
func (s *Session) clearValidation() {
	s.Validation = make(map[int][]model.ValidatedRow)
	s.Phase = PhaseParsed
}

// SessionSnapshot is a detached copy of the session state a response needs.
// It can be marshalled without any lock while other requests keep mutating
// the live session.
type SessionSnapshot struct {
	ID         string                       `json:"id"`
	FileName   string                       `json:"fileName"`
	Phase      Phase                        `json:"phase"`
	Sheets     []model.ParsedSheet          `json:"sheets"`
	Validation map[int][]model.ValidatedRow `json:"validation,omitempty"`
}

// Snapshot deep-copies the session under its lock. Edits landing after the
// call never show through the returned value.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := SessionSnapshot{
		ID:       s.ID,
		FileName: s.FileName,
		Phase:    s.Phase,
		Sheets:   copySheets(s.Sheets),
	}
	if len(s.Validation) > 0 {
		snap.Validation = make(map[int][]model.ValidatedRow, len(s.Validation))
		for si, rows := range s.Validation {
			snap.Validation[si] = copyValidatedRows(rows)
		}
	}
	return snap
}

func copySheets(sheets []model.ParsedSheet) []model.ParsedSheet {
	out := make([]model.ParsedSheet, len(sheets))
	for i := range sheets {
		out[i] = sheets[i]
		out[i].Headers = append([]string(nil), sheets[i].Headers...)
		out[i].Rows = make([]model.Row, len(sheets[i].Rows))
		for ri, row := range sheets[i].Rows {
			cells := make(map[string]model.Cell, len(row.Cells))
			for k, v := range row.Cells {
				cells[k] = v
			}
			out[i].Rows[ri] = model.Row{Index: row.Index, Cells: cells}
		}
	}
	return out
}

func copyValidatedRows(rows []model.ValidatedRow) []model.ValidatedRow {
	out := make([]model.ValidatedRow, len(rows))
	for i, row := range rows {
		out[i] = row
		out[i].Errors = append([]model.RowIssue(nil), row.Errors...)
		out[i].Warnings = append([]model.RowIssue(nil), row.Warnings...)
		out[i].Mapped.CsIDList = append([]int(nil), row.Mapped.CsIDList...)
		out[i].Mapped.MechIDList = append([]int(nil), row.Mapped.MechIDList...)
	}
	return out
}

// Registry is the in-memory session store. Sessions are short-lived and
// discarded on close or expiry.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (r *Registry) Add(fileName string, fileBytes []byte, sheets []model.ParsedSheet, options model.OptionSet) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		FileName:   fileName,
		FileBytes:  fileBytes,
		Sheets:     sheets,
		Options:    options,
		Validation: make(map[int][]model.ValidatedRow),
		Phase:      PhaseParsed,
		CreatedAt:  time.Now(),
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// StartJanitor expires sessions older than the registry TTL until the
// context is cancelled.
func (r *Registry) StartJanitor(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 {
		return
	}
	log := logger.With("importer")
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-r.ttl)
				r.mu.Lock()
				for id, s := range r.sessions {
					if s.CreatedAt.Before(cutoff) {
						delete(r.sessions, id)
						log.Debug().Str("session_id", id).Msg("Expired import session")
					}
				}
				r.mu.Unlock()
			}
		}
	}()
}
