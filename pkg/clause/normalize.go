package clause

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	"github.com/leapstack-labs/sqlclause/pkg/ident"
)

var (
	castPattern   = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
)

// Bare words emitted unquoted in value position.
var valueKeywords = map[string]struct{}{
	"NULL":    {},
	"TRUE":    {},
	"FALSE":   {},
	"DEFAULT": {},
}

func isValueKeyword(s string) bool {
	_, ok := valueKeywords[strings.ToUpper(s)]
	return ok
}

// Normalizer turns raw clause input into canonical, dialect-quoted items for one clause kind.
//
// The pipeline for a single item is:
//
//	ORDER BY direction -> "::" cast suffix -> function call -> wildcard -> quoting
//
// and the pieces are re-attached in reverse. A Normalizer is immutable and safe for
// concurrent use.
type Normalizer struct {
	dialect   *dialect.Dialect
	validator *ident.Validator
	def       clauseDef
	logger    *slog.Logger
}

// NewNormalizer returns a normalizer for kind under dialect d.
func NewNormalizer(d *dialect.Dialect, kind Kind, opts ...Option) (*Normalizer, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	def, ok := clauseDefs[kind]
	if !ok {
		return nil, &Error{Kind: ErrUnknownClauseType, Clause: kind, Msg: fmt.Sprintf("unknown clause type %d", int(kind))}
	}
	o := applyOptions(opts)
	return &Normalizer{
		dialect:   d,
		validator: ident.New(d),
		def:       def,
		logger:    o.logger,
	}, nil
}

// Kind returns the clause kind this normalizer is configured for.
func (n *Normalizer) Kind() Kind {
	return n.def.kind
}

// Normalize splits raw into canonical items.
//
// raw may be nil, a string, a []string or a []any. nil yields ["*"] for SELECT and
// no items otherwise. For WHERE the items are the normalized predicates; use
// Where to also obtain the connectors.
func (n *Normalizer) Normalize(raw any) ([]string, error) {
	switch n.def.kind {
	case KindWhere:
		p, err := n.where(raw)
		if err != nil {
			return nil, err
		}
		return p.Texts(), nil
	case KindLimit:
		limit, err := n.limit(raw)
		if err != nil || limit == 0 {
			return nil, err
		}
		return []string{fmt.Sprint(limit)}, nil
	default:
		return n.list(raw)
	}
}

func (n *Normalizer) list(raw any) ([]string, error) {
	if raw == nil {
		if n.def.allowWildcard {
			return []string{"*"}, nil
		}
		return nil, nil
	}

	elems, err := n.elements(raw)
	if err != nil {
		return nil, err
	}

	items := make([]string, 0, len(elems))
	for _, elem := range elems {
		var item string
		if n.def.kind == KindValues {
			item, err = n.typedValue(elem)
		} else {
			s, ok := asString(elem)
			if !ok {
				return nil, newError(ErrUnsupportedInput, n.def.kind, "", "unsupported item type %T", elem)
			}
			item, err = n.item(s, n.def.orderBy)
		}
		if err != nil {
			return nil, err
		}
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if n.def.allowWildcard && len(items) > 1 && slices.ContainsFunc(items, isWildcard) {
		return nil, newError(ErrWildcardMisuse, n.def.kind, "*", "* must be the only item in a %s clause", n.def.kind)
	}

	n.logger.Debug("normalized clause",
		slog.String("kind", n.def.kind.String()),
		slog.Any("raw", raw),
		slog.Any("items", items))
	return items, nil
}

// isWildcard reports whether a normalized item is a bare *, with or without a cast.
func isWildcard(item string) bool {
	base, _, _ := strings.Cut(item, "::")
	return base == "*"
}

// elements flattens raw input into the per-item values to normalize.
func (n *Normalizer) elements(raw any) ([]any, error) {
	switch v := raw.(type) {
	case string:
		parts := splitList(v, n.def.keyword)
		if len(parts) == 0 && n.def.bareKeyword && n.def.keyword.MatchString(strings.TrimSpace(v)) {
			parts = splitList(v, nil)
		}
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = p
		}
		return out, nil
	case *string:
		if v == nil {
			return nil, nil
		}
		return n.elements(*v)
	case []string:
		out := make([]any, len(v))
		for i, p := range v {
			out[i] = p
		}
		return out, nil
	case []any:
		return v, nil
	case fmt.Stringer:
		return n.elements(v.String())
	default:
		return nil, newError(ErrUnsupportedInput, n.def.kind, "", "unsupported input type %T", raw)
	}
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case fmt.Stringer:
		return s.String(), true
	}
	return "", false
}

// item normalizes one identifier-position item. orderBy accepts a trailing ASC or DESC.
func (n *Normalizer) item(raw string, orderBy bool) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}

	var direction string
	if orderBy {
		s, direction = splitDirection(s)
	}

	base, cast, err := n.splitCast(s)
	if err != nil {
		return "", err
	}

	var out string
	if name, args, ok := n.parseCall(base); ok {
		out, err = n.call(name, args, n.argument)
	} else {
		out, err = n.reference(base, false)
	}
	if err != nil {
		return "", err
	}
	return out + cast + direction, nil
}

// splitDirection detaches a trailing ASC or DESC token, keeping its spelling.
func splitDirection(s string) (string, string) {
	pos := lastTopLevelSpace(s)
	if pos < 0 {
		return s, ""
	}
	tok := s[pos+1:]
	if strings.EqualFold(tok, "ASC") || strings.EqualFold(tok, "DESC") {
		return strings.TrimSpace(s[:pos]), " " + tok
	}
	return s, ""
}

// splitCast detaches a "::type" suffix on dialects with a cast operator.
func (n *Normalizer) splitCast(s string) (string, string, error) {
	if !n.dialect.SupportsCast() {
		return s, "", nil
	}
	idx := topLevelIndexes(s, "::")
	switch len(idx) {
	case 0:
		return s, "", nil
	case 1:
	default:
		return "", "", newError(ErrInvalidCastSuffix, n.def.kind, s, "only one :: cast is allowed")
	}
	typ := strings.TrimSpace(s[idx[0]+2:])
	if !castPattern.MatchString(typ) {
		return "", "", newError(ErrInvalidCastSuffix, n.def.kind, s, "cast type %q must match [A-Za-z0-9]+", typ)
	}
	return strings.TrimSpace(s[:idx[0]]), "::" + typ, nil
}

// parseCall recognizes NAME(args) where NAME is a dialect function and the
// opening parenthesis is closed by the final character.
func (n *Normalizer) parseCall(s string) (name, args string, ok bool) {
	if s == "" || !isIdentStart(s[0]) {
		return "", "", false
	}
	i := 0
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	j := i
	for j < len(s) && isSpace(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != '(' || matchingClose(s, j) != len(s)-1 {
		return "", "", false
	}
	if !n.dialect.IsFunction(s[:i]) {
		return "", "", false
	}
	return strings.ToUpper(s[:i]), s[j+1 : len(s)-1], true
}

// call normalizes every top-level argument of a function call with norm and
// re-wraps them in the upper-cased function name.
func (n *Normalizer) call(name, args string, norm func(string) (string, error)) (string, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return name + "()", nil
	}

	var distinct string
	if fields := strings.Fields(args); len(fields) > 1 && strings.EqualFold(fields[0], "DISTINCT") {
		distinct = "DISTINCT "
		args = strings.TrimSpace(args[len(fields[0]):])
	}

	parts := splitTop(args, ',')
	out := make([]string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return "", newError(ErrUnsupportedInput, n.def.kind, name+"("+args+")", "empty function argument")
		}
		a, err := norm(p)
		if err != nil {
			return "", err
		}
		out[i] = a
	}
	return name + "(" + distinct + strings.Join(out, ", ") + ")", nil
}

// argument normalizes a function argument. Besides identifiers it accepts *,
// numbers, NULL/TRUE/FALSE and single-quoted string literals.
func (n *Normalizer) argument(s string) (string, error) {
	base, cast, err := n.splitCast(s)
	if err != nil {
		return "", err
	}
	if name, args, ok := n.parseCall(base); ok {
		out, err := n.call(name, args, n.argument)
		return out + cast, err
	}

	var out string
	switch {
	case base == "*":
		out = "*"
	case numberPattern.MatchString(base):
		out = base
	case isValueKeyword(base):
		out = strings.ToUpper(base)
	case ident.IsQuoted(base) && base[0] == '\'':
		out, err = n.literal(unescape(base[1:len(base)-1], base[0]), base)
	default:
		out, err = n.reference(base, true)
	}
	if err != nil {
		return "", err
	}
	return out + cast, nil
}

// reference quotes a possibly schema-qualified identifier such as users.id.
func (n *Normalizer) reference(s string, allowStar bool) (string, error) {
	starOK := n.def.allowWildcard || allowStar
	if s == "*" {
		if starOK {
			return "*", nil
		}
		return "", newError(ErrWildcardMisuse, n.def.kind, s, "* is not allowed in a %s clause", n.def.kind)
	}

	parts := splitTop(s, '.')
	out := make([]string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "*" && i > 0 && i == len(parts)-1 && starOK {
			out[i] = "*"
			continue
		}
		q, err := n.quoteIdentifier(p)
		if err != nil {
			return "", err
		}
		out[i] = q
	}
	return strings.Join(out, "."), nil
}

// quoteIdentifier validates a single identifier and re-wraps it in the canonical quote.
func (n *Normalizer) quoteIdentifier(p string) (string, error) {
	inner, quoted := ident.Unquote(p)
	if !quoted && p != "" && (ident.IsQuoteChar(p[0]) || ident.IsQuoteChar(p[len(p)-1])) {
		return "", newError(ErrMismatchedQuotes, n.def.kind, p, "opening and closing quotes do not match")
	}
	if _, err := n.validator.Validate(p); err != nil {
		return "", &Error{Kind: ErrInvalidIdentifier, Clause: n.def.kind, Item: p, Err: err}
	}
	if quoted {
		inner = unescape(inner, p[0])
	}
	return dialect.Quote(inner, n.identifierQuote()), nil
}

func (n *Normalizer) identifierQuote() string {
	if n.def.quote == quoteColumn {
		return n.dialect.Quotes.Column
	}
	return n.dialect.Quotes.Identifier
}

// unescape collapses doubled quote characters inside a quoted run.
func unescape(inner string, q byte) string {
	qs := string(q)
	return strings.ReplaceAll(inner, qs+qs, qs)
}
