package ident

import (
	"errors"
	"fmt"
)

// Validation failure kinds. Match them with errors.Is.
var (
	ErrMissingValue        = errors.New("missing value")
	ErrEmptyIdentifier     = errors.New("empty identifier")
	ErrIdentifierTooLong   = errors.New("identifier too long")
	ErrInvalidCharacters   = errors.New("invalid characters")
	ErrReservesKeyword     = errors.New("reserves keyword")
	ErrForbiddenCharacters = errors.New("forbidden characters")
)

// Verdicts used in diagnostic messages.
const (
	verdictNone      = "is None"
	verdictEmpty     = "is empty"
	verdictTooLong   = "is longer than 64 characters"
	verdictMismatch  = "does not match acceptable characters"
	verdictIsKeyword = "matches a known keyword"
)

// MissingError is returned when no identifier was supplied at all.
// It is distinct from ValidationError so callers can tell absent input from bad input.
type MissingError struct {
	Label string
}

func (e *MissingError) Error() string {
	return message(e.Label, verdictNone, "None")
}

// Unwrap returns ErrMissingValue.
func (e *MissingError) Unwrap() error { return ErrMissingValue }

// ValidationError describes an identifier that was supplied but rejected.
type ValidationError struct {
	Kind    error  // one of the Err* sentinels
	Label   string // "identifier", "table name", ...
	Value   string
	Verdict string
}

func (e *ValidationError) Error() string {
	return message(e.Label, e.Verdict, e.Value)
}

// Unwrap returns the failure kind sentinel.
func (e *ValidationError) Unwrap() error { return e.Kind }

func newValidationError(kind error, label, value, verdict string) *ValidationError {
	return &ValidationError{Kind: kind, Label: label, Value: value, Verdict: verdict}
}

// message formats "<Subject> <verdict>. <Label> is: <value>".
func message(label, verdict, value string) string {
	return fmt.Sprintf("%s %s. %s is: %s", subject(label), verdict, subject(label), value)
}

func subject(label string) string {
	if label == "" {
		return "Identifier"
	}
	b := []byte(label)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
