// Package ident validates database, table and column identifiers before they are
// embedded in generated SQL.
//
// Unquoted identifiers are limited to 64 characters from [0-9A-Za-z$_] and may not
// be a reserved keyword of the active dialect. Quoted identifiers (wrapped in a
// matching pair of backticks, double quotes or single quotes) may hold up to 64
// ASCII characters and may use reserved words. A semicolon or backslash is never
// accepted.
package ident

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxLength is the longest identifier accepted, excluding quotes.
	MaxLength = 64
	// MaxQuotedLength is the longest quoted identifier accepted, including both quotes.
	MaxQuotedLength = MaxLength + 2
)

// Labels substituted into diagnostic messages.
const (
	LabelIdentifier = "identifier"
	LabelDatabase   = "database name"
	LabelTable      = "table name"
	LabelColumn     = "table column"
)

var unquotedPattern = regexp.MustCompile(`^[0-9A-Za-z$_]+$`)

// KeywordSet reports whether a word is reserved. *dialect.Dialect satisfies it.
type KeywordSet interface {
	IsReservedWord(word string) bool
}

// Validator validates identifiers against one dialect's keyword set.
// It holds no mutable state and may be shared across goroutines.
type Validator struct {
	keywords KeywordSet
}

// New creates a validator. A nil keyword set disables the reserved keyword check.
func New(keywords KeywordSet) *Validator {
	return &Validator{keywords: keywords}
}

// Validate checks a single identifier and returns it unmodified. Surrounding
// whitespace is ignored by the checks but kept in the result.
func (v *Validator) Validate(identifier string) (string, error) {
	return v.check(identifier, LabelIdentifier)
}

// IsValid reports whether identifier is acceptable, with a diagnostic when it is not.
func (v *Validator) IsValid(identifier string) (bool, string) {
	if _, err := v.Validate(identifier); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// DatabaseName validates a database name. value may be a string, *string or fmt.Stringer;
// nil yields a *MissingError.
func (v *Validator) DatabaseName(value any) (string, error) {
	return v.named(value, LabelDatabase)
}

// TableName validates a table name.
func (v *Validator) TableName(value any) (string, error) {
	return v.named(value, LabelTable)
}

// TableColumn validates a column name.
func (v *Validator) TableColumn(value any) (string, error) {
	return v.named(value, LabelColumn)
}

func (v *Validator) named(value any, label string) (string, error) {
	switch val := value.(type) {
	case nil:
		return "", &MissingError{Label: label}
	case string:
		return v.check(val, label)
	case *string:
		if val == nil {
			return "", &MissingError{Label: label}
		}
		return v.check(*val, label)
	case fmt.Stringer:
		return v.check(val.String(), label)
	default:
		return "", newValidationError(ErrInvalidCharacters, label, fmt.Sprint(value), verdictMismatch)
	}
}

func (v *Validator) check(raw, label string) (string, error) {
	s := strings.TrimSpace(raw)

	inner, quoted := Unquote(s)
	if inner == "" {
		return "", newValidationError(ErrEmptyIdentifier, label, s, verdictEmpty)
	}
	if strings.ContainsAny(s, ";\\") {
		return "", newValidationError(ErrForbiddenCharacters, label, s, verdictMismatch)
	}

	maxLen := MaxLength
	if quoted {
		maxLen = MaxQuotedLength
	}
	if utf8.RuneCountInString(s) > maxLen {
		return "", newValidationError(ErrIdentifierTooLong, label, s, verdictTooLong)
	}

	if quoted {
		for _, r := range inner {
			if r < 1 || r > 0x7F {
				return "", newValidationError(ErrInvalidCharacters, label, s, verdictMismatch)
			}
		}
		return raw, nil
	}

	if !unquotedPattern.MatchString(inner) {
		return "", newValidationError(ErrInvalidCharacters, label, s, verdictMismatch)
	}
	if v.keywords != nil && v.keywords.IsReservedWord(inner) {
		return "", newValidationError(ErrReservesKeyword, label, s, verdictIsKeyword)
	}
	return raw, nil
}

// IsQuoteChar reports whether c is one of the recognized identifier quote characters.
func IsQuoteChar(c byte) bool {
	return c == '`' || c == '"' || c == '\''
}

// IsQuoted reports whether s is wrapped in a matching pair of quote characters.
// Mismatched pairs such as "id` are not quoted.
func IsQuoted(s string) bool {
	return len(s) >= 2 && s[0] == s[len(s)-1] && IsQuoteChar(s[0])
}

// Unquote strips a matching quote pair from s. ok is false when s is not quoted.
func Unquote(s string) (inner string, ok bool) {
	if !IsQuoted(s) {
		return s, false
	}
	return s[1 : len(s)-1], true
}
