package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/triple-tgg/sams-sub001/internal/excel"
	"github.com/triple-tgg/sams-sub001/internal/logger"
	"github.com/triple-tgg/sams-sub001/internal/model"
	"github.com/triple-tgg/sams-sub001/pkg/errors"
)

// FlightClient is the core-system endpoint pair the pipeline depends on.
type FlightClient interface {
	ValidateFlights(ctx context.Context, items []model.ValidateItem) (*model.ValidateResponse, error)
	InsertFlights(ctx context.Context, items []model.InsertItem) error
}

// OptionSource supplies the master-data option lists pinned at session open.
type OptionSource interface {
	Options(ctx context.Context) (model.OptionSet, error)
}

// FlightCache invalidates cached flight-list reads after an upload.
type FlightCache interface {
	InvalidateFlightList(ctx context.Context) error
}

// Archiver stores the original workbook bytes after a successful upload.
type Archiver interface {
	Upload(ctx context.Context, key string, data io.Reader) error
}

type Service struct {
	registry *Registry
	flights  FlightClient
	options  OptionSource
	cache    FlightCache
	archiver Archiver
	archive  bool
	log      zerolog.Logger
}

func NewService(registry *Registry, flights FlightClient, options OptionSource, cache FlightCache, archiver Archiver, archive bool) *Service {
	return &Service{
		registry: registry,
		flights:  flights,
		options:  options,
		cache:    cache,
		archiver: archiver,
		archive:  archive,
		log:      logger.With("importer"),
	}
}

// Open rejects non-spreadsheet uploads, parses the workbook and creates a
// session with the option lists pinned for its lifetime.
func (s *Service) Open(ctx context.Context, fileName string, data []byte) (*Session, error) {
	if !excel.AllowedExtension(fileName) {
		return nil, fmt.Errorf("%w: unsupported extension on %q", errors.ErrInvalidFileFormat, fileName)
	}

	sheets, err := excel.ParseWorkbook(data)
	if err != nil {
		return nil, err
	}

	options, err := s.options.Options(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load master data: %w", err)
	}

	session := s.registry.Add(fileName, data, sheets, options)
	s.log.Info().
		Str("session_id", session.ID).
		Str("file", fileName).
		Int("sheets", len(sheets)).
		Msg("Import session opened")
	return session, nil
}

func (s *Service) Get(id string) (*Session, error) {
	session, ok := s.registry.Get(id)
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	return session, nil
}

// RenameSheet updates a tab name, re-infers its date and drops every
// validation verdict: only a fresh server call can restore them.
func (s *Service) RenameSheet(id string, sheetIdx int, name string) (*Session, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	session.lock()
	defer session.unlock()

	if err := s.checkMutable(session); err != nil {
		return nil, err
	}
	if sheetIdx < 0 || sheetIdx >= len(session.Sheets) {
		return nil, fmt.Errorf("sheet index %d out of range", sheetIdx)
	}

	sheet := &session.Sheets[sheetIdx]
	sheet.Name = name
	sheet.SheetDate = ""
	if d, ok := excel.ParseSheetNameDate(name); ok {
		sheet.SheetDate = d
	}
	session.clearValidation()
	return session, nil
}

// EditRow replaces a row's cells. When the sheet already has a verdict the
// row's mapping and warnings are recomputed in place; server errors stay
// until the next validate call.
func (s *Service) EditRow(id string, sheetIdx, rowPos int, cells map[string]model.Cell) (*Session, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	session.lock()
	defer session.unlock()

	if err := s.checkMutable(session); err != nil {
		return nil, err
	}
	sheet, err := sheetAt(session, sheetIdx)
	if err != nil {
		return nil, err
	}
	if rowPos < 0 || rowPos >= len(sheet.Rows) {
		return nil, fmt.Errorf("row %d out of range on sheet %q", rowPos, sheet.Name)
	}

	sheet.Rows[rowPos].Cells = cells

	if validated, ok := session.Validation[sheetIdx]; ok && rowPos < len(validated) {
		mapped, warnings := BuildImportData(sheet.Rows[rowPos], sheet, session.Options)
		validated[rowPos].Mapped = mapped
		validated[rowPos].Warnings = warnings
	}
	return session, nil
}

// DeleteRow removes a row and its validation verdict.
func (s *Service) DeleteRow(id string, sheetIdx, rowPos int) (*Session, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	session.lock()
	defer session.unlock()

	if err := s.checkMutable(session); err != nil {
		return nil, err
	}
	sheet, err := sheetAt(session, sheetIdx)
	if err != nil {
		return nil, err
	}
	if rowPos < 0 || rowPos >= len(sheet.Rows) {
		return nil, fmt.Errorf("row %d out of range on sheet %q", rowPos, sheet.Name)
	}

	sheet.Rows = append(sheet.Rows[:rowPos], sheet.Rows[rowPos+1:]...)
	if validated, ok := session.Validation[sheetIdx]; ok && rowPos < len(validated) {
		session.Validation[sheetIdx] = append(validated[:rowPos], validated[rowPos+1:]...)
	}
	return session, nil
}

type rowRef struct {
	sheetIdx int
	rowPos   int
}

// stageValidation serializes all rows under the session lock and flips the
// phase to VALIDATING so concurrent edits and re-entrant calls bounce with
// ErrSessionBusy while the server call runs unlocked.
func stageValidation(session *Session) ([]model.ValidateItem, map[int]rowRef, map[int][]model.ValidatedRow, error) {
	session.lock()
	defer session.unlock()

	switch session.Phase {
	case PhaseParsed, PhaseValidated:
	default:
		return nil, nil, nil, errors.ErrSessionBusy
	}

	var undated []string
	for i := range session.Sheets {
		if session.Sheets[i].SheetDate == "" {
			undated = append(undated, session.Sheets[i].Name)
		}
	}
	if len(undated) > 0 {
		return nil, nil, nil, errors.SheetDateError{Sheets: undated}
	}

	var items []model.ValidateItem
	refs := make(map[int]rowRef)
	validation := make(map[int][]model.ValidatedRow)

	rowID := 0
	for si := range session.Sheets {
		sheet := &session.Sheets[si]
		rows := make([]model.ValidatedRow, len(sheet.Rows))
		for ri := range sheet.Rows {
			rowID++
			mapped, warnings := BuildImportData(sheet.Rows[ri], sheet, session.Options)
			rows[ri] = model.ValidatedRow{
				OriginalIndex: sheet.Rows[ri].Index,
				SheetIndex:    si,
				Mapped:        mapped,
				IsValid:       true,
				Warnings:      warnings,
			}
			items = append(items, model.ValidateItem{RowID: rowID, FlightImportData: mapped})
			refs[rowID] = rowRef{sheetIdx: si, rowPos: ri}
		}
		validation[si] = rows
	}

	session.Phase = PhaseValidating
	return items, refs, validation, nil
}

// Validate submits every row of every sheet as one batch and merges the
// server verdicts with locally computed reference warnings. Rows are
// correlated with server results strictly by rowId. The session lock is
// not held across the server call; the VALIDATING phase gates re-entry.
func (s *Service) Validate(ctx context.Context, id string) (*model.ValidationSummary, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	items, refs, validation, err := stageValidation(session)
	if err != nil {
		return nil, err
	}

	resp, err := s.flights.ValidateFlights(ctx, items)

	session.lock()
	defer session.unlock()
	if err != nil {
		session.Phase = PhaseParsed
		return nil, err
	}

	for _, result := range resp.ResponseData.ValidateFilghtList {
		if result.StatusText == "" {
			continue
		}
		ref, ok := refs[result.RowID]
		if !ok {
			continue
		}
		row := &validation[ref.sheetIdx][ref.rowPos]
		row.IsValid = false
		row.Errors = append(row.Errors, model.RowIssue{
			Row:     row.OriginalIndex,
			Message: result.StatusText,
		})
	}

	session.Validation = validation
	session.Phase = PhaseValidated

	summary := summarize(session)
	s.log.Info().
		Str("session_id", session.ID).
		Int("valid", summary.Valid).
		Int("invalid", summary.Invalid).
		Int("warnings", summary.Warnings).
		Msg("Validation completed")
	return summary, nil
}

// stageUpload builds the insert batch under the session lock and flips the
// phase to UPLOADING before the server call.
func stageUpload(session *Session, userName string) ([]model.InsertItem, error) {
	session.lock()
	defer session.unlock()

	switch session.Phase {
	case PhaseValidated:
	case PhaseValidating, PhaseUploading:
		return nil, errors.ErrSessionBusy
	default:
		return nil, errors.ErrNotValidated
	}

	// One warning anywhere blocks the whole upload: the user resolves
	// references first, rows with server errors are merely excluded.
	for si := range session.Sheets {
		for _, row := range session.Validation[si] {
			if len(row.Warnings) > 0 {
				return nil, errors.ErrUnresolvedRefs
			}
		}
	}

	var items []model.InsertItem
	for si := range session.Sheets {
		for _, row := range session.Validation[si] {
			if !row.Uploadable() {
				continue
			}
			items = append(items, model.InsertItem{
				RowID:            len(items) + 1,
				UserName:         userName,
				FlightImportData: row.Mapped,
			})
		}
	}
	if len(items) == 0 {
		return nil, errors.ErrNoUploadableRows
	}

	session.Phase = PhaseUploading
	return items, nil
}

// Upload re-serializes only rows with no errors and no warnings, with a
// fresh 1-based rowId over the uploaded subset, and submits them as one
// all-or-nothing insert. On success the flight-list cache is invalidated
// and the session is discarded. As with Validate, the lock is released
// for the server call and the UPLOADING phase gates re-entry.
func (s *Service) Upload(ctx context.Context, id, userName string) (int, error) {
	session, err := s.Get(id)
	if err != nil {
		return 0, err
	}

	items, err := stageUpload(session, userName)
	if err != nil {
		return 0, err
	}

	insertErr := s.flights.InsertFlights(ctx, items)

	session.lock()
	if insertErr != nil {
		session.Phase = PhaseValidated
		session.unlock()
		return 0, insertErr
	}
	session.Phase = PhaseDone
	session.unlock()

	if err := s.cache.InvalidateFlightList(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Failed to invalidate flight list cache")
	}
	if s.archive && s.archiver != nil {
		key := fmt.Sprintf("imports/%s/%s", session.ID, session.FileName)
		if err := s.archiver.Upload(ctx, key, bytes.NewReader(session.FileBytes)); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Failed to archive workbook")
		}
	}

	s.registry.Remove(session.ID)
	s.log.Info().
		Str("session_id", session.ID).
		Int("rows", len(items)).
		Msg("Flight import uploaded")
	return len(items), nil
}

func (s *Service) Close(id string) {
	s.registry.Remove(id)
}

// checkMutable rejects edits while a validate or upload call is in flight.
func (s *Service) checkMutable(session *Session) error {
	switch session.Phase {
	case PhaseValidating, PhaseUploading:
		return errors.ErrSessionBusy
	}
	return nil
}

func sheetAt(session *Session, idx int) (*model.ParsedSheet, error) {
	if idx < 0 || idx >= len(session.Sheets) {
		return nil, fmt.Errorf("sheet index %d out of range", idx)
	}
	return &session.Sheets[idx], nil
}

func summarize(session *Session) *model.ValidationSummary {
	summary := &model.ValidationSummary{FlagPass: true}
	for si := range session.Sheets {
		ss := model.SheetSummary{Sheet: session.Sheets[si].Name}
		for _, row := range session.Validation[si] {
			if row.IsValid {
				ss.Valid++
			} else {
				ss.Invalid++
				summary.FlagPass = false
			}
			if len(row.Warnings) > 0 {
				ss.Warnings++
			}
		}
		summary.Valid += ss.Valid
		summary.Invalid += ss.Invalid
		summary.Warnings += ss.Warnings
		summary.Sheets = append(summary.Sheets, ss)
	}
	return summary
}
