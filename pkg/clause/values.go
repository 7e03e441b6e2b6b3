package clause

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/sqlclause/pkg/ident"
)

// timestampLayout is accepted as a literal by MySQL, PostgreSQL and SQLite.
const timestampLayout = "2006-01-02 15:04:05.999999"

// typedValue renders one VALUES element from a Go value.
func (n *Normalizer) typedValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return n.value(x)
	case []byte:
		return n.value(string(x))
	case bool:
		if x {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.FormatInt(int64(x), 10), nil
	case int8:
		return strconv.FormatInt(int64(x), 10), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return n.float(float64(x), 32)
	case float64:
		return n.float(x, 64)
	case time.Time:
		return n.literal(x.Format(timestampLayout), x.String())
	}
	if s, ok := asString(v); ok {
		return n.value(s)
	}
	return "", newError(ErrUnsupportedInput, n.def.kind, "", "unsupported value type %T", v)
}

func (n *Normalizer) float(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", newError(ErrUnsupportedInput, n.def.kind, strconv.FormatFloat(f, 'g', -1, bits), "non-finite number")
	}
	return strconv.FormatFloat(f, 'g', -1, bits), nil
}

// value normalizes one textual VALUES element. Numbers and NULL/TRUE/FALSE/DEFAULT
// stay bare, function calls are preserved, everything else becomes a string literal.
func (n *Normalizer) value(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}

	base, cast, err := n.splitCast(s)
	if err != nil {
		return "", err
	}

	var out string
	if name, args, ok := n.parseCall(base); ok {
		out, err = n.call(name, args, n.value)
	} else {
		out, err = n.scalar(base)
	}
	if err != nil {
		return "", err
	}
	return out + cast, nil
}

func (n *Normalizer) scalar(s string) (string, error) {
	switch {
	case s == "":
		return "", newError(ErrUnsupportedInput, n.def.kind, s, "missing value")
	case s == "*":
		return "", newError(ErrWildcardMisuse, n.def.kind, s, "* is not allowed in a %s clause", n.def.kind)
	case ident.IsQuoted(s):
		return n.literal(unescape(s[1:len(s)-1], s[0]), s)
	case ident.IsQuoteChar(s[0]) || ident.IsQuoteChar(s[len(s)-1]):
		return "", newError(ErrMismatchedQuotes, n.def.kind, s, "opening and closing quotes do not match")
	case numberPattern.MatchString(s):
		return s, nil
	case isValueKeyword(s):
		return strings.ToUpper(s), nil
	}
	return n.literal(s, s)
}

// literal wraps content in the dialect's literal quote. Backslashes and NUL bytes are
// refused because some drivers treat them as escapes.
func (n *Normalizer) literal(content, item string) (string, error) {
	if strings.ContainsAny(content, "\\\x00") {
		return "", &Error{Kind: ErrForbiddenLiteral, Clause: n.def.kind, Item: item, Err: ident.ErrForbiddenCharacters}
	}
	return n.dialect.QuoteLiteral(content), nil
}
