package query

import (
	"errors"
	"fmt"
	"strings"
)

// Statement construction errors.
var (
	ErrUnboundedDelete     = errors.New("refusing to DELETE without a WHERE clause")
	ErrNoValues            = errors.New("no values to write")
	ErrNoColumns           = errors.New("no columns to update")
	ErrColumnValueMismatch = errors.New("column and value counts differ")
)

// UnknownColumnError is returned when a selected column does not exist in the table.
type UnknownColumnError struct {
	Table     string
	Column    string
	Available []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("column %q does not exist in table %s (available: %s)", e.Column, e.Table, strings.Join(e.Available, ", "))
}

func mismatch(columns, values int) error {
	return fmt.Errorf("%w: %d columns, %d values", ErrColumnValueMismatch, columns, values)
}
