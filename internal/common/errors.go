// Package common holds the error taxonomy shared by the pipeline and the
// metrics engine.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput reports that the statement violates the fixed layout.
	ErrMalformedInput = errors.New("malformed input")
	// ErrDivisionUndefined reports a rate metric over a zero-day period.
	ErrDivisionUndefined = errors.New("division undefined")
	// ErrEmptyLedger reports an aggregate query with no qualifying rows.
	ErrEmptyLedger = errors.New("empty ledger")
)

// MalformedInputError describes a structural problem with a statement.
// It matches ErrMalformedInput with errors.Is.
type MalformedInputError struct {
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed input: %s: %v", e.Reason, e.Err)
	}
	return "malformed input: " + e.Reason
}

func (e *MalformedInputError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedInput, e.Err}
	}
	return []error{ErrMalformedInput}
}

// Malformed returns a MalformedInputError with a formatted reason.
func Malformed(format string, args ...any) error {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...)}
}

// WrapMalformed returns a MalformedInputError caused by err.
func WrapMalformed(reason string, err error) error {
	return &MalformedInputError{Reason: reason, Err: err}
}
