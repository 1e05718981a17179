package invoice

import (
	"errors"
	"fmt"
)

// Common invoice batch errors.
var (
	// ErrNoFiles is returned when an upload is requested with no files
	// selected; no request is issued.
	ErrNoFiles = errors.New("no files selected")

	// ErrEmptyBatch is returned when a batch operation is requested while
	// no records are loaded.
	ErrEmptyBatch = errors.New("no invoices in the current batch")

	// ErrIncompleteLineItems is the batch-wide booking precondition: every
	// line item of every record needs a description and a category or
	// account code before anything is submitted.
	ErrIncompleteLineItems = errors.New("all descriptions and categories must be set")
)

// ValidationError pinpoints the first line item that violates the booking
// precondition. Indices are zero-based batch positions.
type ValidationError struct {
	Record int
	Item   int
	Field  string
	Err    error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invoice %d line item %d: missing %s: %v", e.Record+1, e.Item+1, e.Field, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *ValidationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
