// Package ledger holds the boundary logic around the record store: record
// validation and normalization on write, reclassification between
// collections, and parsing of spreadsheet rows written the Italian way.
package ledger

import (
	"errors"
	"fmt"

	"forfettario/pkg/models"
)

var (
	// ErrNotFound is returned when a record does not exist for the owner.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord is returned when a record fails validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrCompensationFailed is returned when a reclassification could not be
	// completed nor rolled back, leaving the record in both collections.
	ErrCompensationFailed = errors.New("reclassification left a duplicate record")
)

// ValidationError describes the field that made a record invalid.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidRecord.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRecord
}

// ReclassifyError reports a failed move of a record between collections.
type ReclassifyError struct {
	// Op is the step that failed: "get", "create", "delete" or "compensate".
	Op string

	// From and To are the source and destination kinds.
	From models.Kind
	To   models.Kind

	// ID is the id of the source record.
	ID string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ReclassifyError) Error() string {
	return fmt.Sprintf("ledger: reclassify %s %s -> %s failed at %s: %v", e.From, e.ID, e.To, e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ReclassifyError) Unwrap() error {
	return e.Err
}
