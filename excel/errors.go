package excel

import (
	"errors"
	"fmt"
)

// ErrSheetNotFound indicates a reference names a sheet the document does not have.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrUnboundedRange indicates a whole-row or whole-column range where a
// bounded rectangle is required.
var ErrUnboundedRange = errors.New("range must be bounded on both axes")

// ErrSheetMismatch indicates a sheet-qualified reference used on a different sheet.
var ErrSheetMismatch = errors.New("reference belongs to another sheet")

// ErrIndexOutOfRange indicates a table record index outside the table.
var ErrIndexOutOfRange = errors.New("index out of range")

// UpdateError reports the request that failed while committing a Session.
// The rest of the batch is dropped.
type UpdateError struct {
	SessionID string
	Index     int    // position of the failing request in the batch
	Request   string // description of the failing request
	Err       error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("session %s: request %d (%s): %v", e.SessionID, e.Index, e.Request, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}
