package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("hotel not found")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
	// ErrCorrupt is reported for stored bytes that do not decode into a Hotel.
	ErrCorrupt = fmt.Errorf("%w: corrupt document", ErrStorage)
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
