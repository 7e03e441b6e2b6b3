package ident_test

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	"github.com/leapstack-labs/sqlclause/pkg/ident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() *ident.Validator {
	d := dialect.NewDialect("identtest").
		WithReservedWords("select", "order", "table").
		MustBuild()
	return ident.New(d)
}

func TestValidate(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "simple", input: "users", want: "users"},
		{name: "dollar and underscore", input: "col_$1", want: "col_$1"},
		{name: "surrounding whitespace kept", input: "  users  ", want: "  users  "},
		{name: "quoted with whitespace kept", input: " `order` ", want: " `order` "},
		{name: "backtick quoted", input: "`my col`", want: "`my col`"},
		{name: "double quoted keyword", input: `"order"`, want: `"order"`},
		{name: "single quoted", input: "'a-b'", want: "'a-b'"},
		{name: "empty", input: "", wantErr: ident.ErrEmptyIdentifier},
		{name: "whitespace only", input: "   ", wantErr: ident.ErrEmptyIdentifier},
		{name: "empty quoted", input: `""`, wantErr: ident.ErrEmptyIdentifier},
		{name: "dash unquoted", input: "my-col", wantErr: ident.ErrInvalidCharacters},
		{name: "space unquoted", input: "my col", wantErr: ident.ErrInvalidCharacters},
		{name: "mismatched quotes", input: "\"id`", wantErr: ident.ErrInvalidCharacters},
		{name: "non ascii quoted", input: "`naïve`", wantErr: ident.ErrInvalidCharacters},
		{name: "NUL quoted", input: "`a\x00b`", wantErr: ident.ErrInvalidCharacters},
		{name: "reserved", input: "SELECT", wantErr: ident.ErrReservesKeyword},
		{name: "reserved lower", input: "order", wantErr: ident.ErrReservesKeyword},
		{name: "semicolon", input: "users;drop", wantErr: ident.ErrForbiddenCharacters},
		{name: "semicolon quoted", input: "`users;`", wantErr: ident.ErrForbiddenCharacters},
		{name: "backslash quoted", input: `"a\b"`, wantErr: ident.ErrForbiddenCharacters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var verr *ident.ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_LengthBoundaries(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"64 unquoted", strings.Repeat("a", 64), true},
		{"65 unquoted", strings.Repeat("a", 65), false},
		{"66 quoted", "`" + strings.Repeat("a", 64) + "`", true},
		{"67 quoted", "`" + strings.Repeat("a", 65) + "`", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ident.ErrIdentifierTooLong)
				assert.Contains(t, err.Error(), tt.input)
			}
		})
	}
}

func TestValidate_UnquotedCharsetProperty(t *testing.T) {
	v := ident.New(nil)
	alphabet := "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz$_"

	for n := 1; n <= ident.MaxLength; n++ {
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteByte(alphabet[(i*7+n)%len(alphabet)])
		}
		s := b.String()
		got, err := v.Validate(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, got)
	}
}

func TestIsValid(t *testing.T) {
	v := newValidator()

	ok, reason := v.IsValid("users")
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason = v.IsValid("table")
	assert.False(t, ok)
	assert.Equal(t, "Identifier matches a known keyword. Identifier is: table", reason)
}

type stringer string

func (s stringer) String() string { return string(s) }

func TestNamedValidators(t *testing.T) {
	v := newValidator()

	t.Run("missing value is type distinguished", func(t *testing.T) {
		_, err := v.TableName(nil)
		var missing *ident.MissingError
		require.ErrorAs(t, err, &missing)
		assert.ErrorIs(t, err, ident.ErrMissingValue)
		assert.Equal(t, "Table name is None. Table name is: None", err.Error())

		var nilPtr *string
		_, err = v.DatabaseName(nilPtr)
		assert.ErrorAs(t, err, &missing)
	})

	t.Run("labels", func(t *testing.T) {
		_, err := v.DatabaseName("")
		assert.Equal(t, "Database name is empty. Database name is: ", err.Error())

		_, err = v.TableColumn("a-b")
		assert.Equal(t, "Table column does not match acceptable characters. Table column is: a-b", err.Error())

		long := strings.Repeat("x", 70)
		_, err = v.TableName(long)
		assert.Equal(t, "Table name is longer than 64 characters. Table name is: "+long, err.Error())
	})

	t.Run("accepted inputs", func(t *testing.T) {
		s := "orders"
		got, err := v.TableName(&s)
		require.NoError(t, err)
		assert.Equal(t, "orders", got)

		got, err = v.TableColumn(stringer("amount"))
		require.NoError(t, err)
		assert.Equal(t, "amount", got)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := v.TableColumn(42)
		assert.ErrorIs(t, err, ident.ErrInvalidCharacters)
	})
}

func TestIsQuoted(t *testing.T) {
	assert.True(t, ident.IsQuoted("`a`"))
	assert.True(t, ident.IsQuoted(`""`))
	assert.False(t, ident.IsQuoted(`"`))
	assert.False(t, ident.IsQuoted("\"a`"))
	assert.False(t, ident.IsQuoted("[a]"))

	inner, ok := ident.Unquote("'abc'")
	assert.True(t, ok)
	assert.Equal(t, "abc", inner)
}
