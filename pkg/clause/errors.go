package clause

import (
	"errors"
	"fmt"
)

// Clause failure kinds. Match them with errors.Is; identifier failures additionally
// match the pkg/ident sentinels.
var (
	ErrMismatchedQuotes  = errors.New("mismatched quotes")
	ErrWildcardMisuse    = errors.New("wildcard misuse")
	ErrInvalidCastSuffix = errors.New("invalid cast suffix")
	ErrUnknownClauseType = errors.New("unknown clause type")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrForbiddenLiteral  = errors.New("forbidden characters in literal")
	ErrUnsupportedInput  = errors.New("unsupported clause input")
	ErrInvalidLimit      = errors.New("invalid limit")
	ErrEmptyPredicate    = errors.New("empty predicate")
)

// Error reports why a clause could not be built.
type Error struct {
	Kind   error  // one of the Err* sentinels above
	Clause Kind   // clause being built
	Item   string // offending item, if any
	Msg    string
	Err    error // underlying cause, e.g. an *ident.ValidationError
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Item != "" {
		return fmt.Sprintf("%s clause: item %q: %s", e.Clause, e.Item, msg)
	}
	return fmt.Sprintf("%s clause: %s", e.Clause, msg)
}

// Unwrap exposes both the failure kind and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func newError(kind error, clause Kind, item, format string, args ...any) *Error {
	return &Error{Kind: kind, Clause: clause, Item: item, Msg: fmt.Sprintf(format, args...)}
}
