package hospreport

import (
	"errors"
	"fmt"
)

// Sentinel errors for caller contract violations. They are reported before
// anything is drawn.
var (
	ErrColumnMismatch  = errors.New("hospreport: column count mismatch")
	ErrTableTooWide    = errors.New("hospreport: table wider than printable area")
	ErrInvalidColumn   = errors.New("hospreport: invalid column width")
	ErrInvalidGeometry = errors.New("hospreport: invalid page geometry")
	ErrUnknownContent  = errors.New("hospreport: unknown content type")
)

// RenderError names the document part that failed.
type RenderError struct {
	Op  string // e.g. "contents[4].rows[2]"
	Err error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hospreport.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("hospreport.%s: unknown error", e.Op)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func newRenderError(op string, err error) *RenderError {
	return &RenderError{Op: op, Err: err}
}
