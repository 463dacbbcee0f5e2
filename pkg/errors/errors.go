package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFileFormat = errors.New("invalid file format")
	ErrEmptyWorkbook     = errors.New("workbook is empty or contains no data rows")
	ErrSessionNotFound   = errors.New("import session not found")
	ErrSessionBusy       = errors.New("import session has a request in flight")
	ErrNoUploadableRows  = errors.New("no valid rows to upload")
	ErrUnresolvedRefs    = errors.New("rows with unresolved references remain")
	ErrNotValidated      = errors.New("session has not been validated")
	ErrFlightAPIError    = errors.New("flight API error")
	ErrAuthFailed        = errors.New("authentication failed")
)

// SheetDateError reports sheets whose names do not resolve to a calendar
// date. Validation is blocked for the whole session until they are renamed.
type SheetDateError struct {
	Sheets []string
}

func (e SheetDateError) Error() string {
	return fmt.Sprintf("sheet name(s) not recognized as a date: %v", e.Sheets)
}
