// Package clause canonicalizes loosely formatted SQL clause fragments.
//
// Callers hand in column lists, VALUES tuples, ORDER BY lists and WHERE predicates
// as strings or slices, quoted in any style. Each builder validates every
// identifier, re-quotes it in the dialect's canonical quote character, keeps
// recognized function calls and "::" casts intact, and renders a fragment that the
// query layer splices into a statement:
//
//	SELECT {Select} FROM {table}{Where}{OrderBy}{Limit};
//
// All work happens at construction. A built Clause is immutable and safe for
// concurrent reads; construction either succeeds completely or returns an *Error.
//
// WHERE parsing is shallow: predicates are split on top-level AND/OR,
// the leading operand of each predicate is treated as a column, and the remainder
// is passed through with whitespace collapsed. It is not a SQL expression parser.
package clause

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlclause/pkg/dialect"
)

// Clause is a normalized clause fragment bound to one dialect.
type Clause struct {
	kind    Kind
	dialect *dialect.Dialect
	items   []string
	where   *Predicate
	limit   int
}

// New builds a clause of the given kind from raw input.
func New(d *dialect.Dialect, kind Kind, raw any, opts ...Option) (*Clause, error) {
	n, err := NewNormalizer(d, kind, opts...)
	if err != nil {
		return nil, err
	}

	c := &Clause{kind: kind, dialect: d}
	switch kind {
	case KindWhere:
		c.where, err = n.where(raw)
		if err == nil {
			c.items = c.where.Texts()
		}
	case KindLimit:
		c.limit, err = n.limit(raw)
		if err == nil && c.limit > 0 {
			c.items = []string{strconv.Itoa(c.limit)}
		}
	default:
		c.items, err = n.list(raw)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Select builds a SELECT column list. nil selects every column.
func Select(d *dialect.Dialect, raw any, opts ...Option) (*Clause, error) {
	return New(d, KindSelect, raw, opts...)
}

// Columns builds a parenthesized column list for INSERT.
func Columns(d *dialect.Dialect, raw any, opts ...Option) (*Clause, error) {
	return New(d, KindColumns, raw, opts...)
}

// Values builds a VALUES tuple.
func Values(d *dialect.Dialect, raw any, opts ...Option) (*Clause, error) {
	return New(d, KindValues, raw, opts...)
}

// OrderBy builds an ORDER BY list.
func OrderBy(d *dialect.Dialect, raw any, opts ...Option) (*Clause, error) {
	return New(d, KindOrderBy, raw, opts...)
}

// Where builds a WHERE predicate list.
func Where(d *dialect.Dialect, raw any, opts ...Option) (*Clause, error) {
	return New(d, KindWhere, raw, opts...)
}

// Limit builds a LIMIT clause.
func Limit(d *dialect.Dialect, raw any, opts ...Option) (*Clause, error) {
	return New(d, KindLimit, raw, opts...)
}

// Kind returns the clause kind.
func (c *Clause) Kind() Kind {
	return c.kind
}

// Dialect returns the dialect the clause was built for.
func (c *Clause) Dialect() *dialect.Dialect {
	return c.dialect
}

// Items returns a copy of the canonical items.
func (c *Clause) Items() []string {
	return append([]string(nil), c.items...)
}

// Connectors returns the WHERE connectors; len(Connectors()) == len(Items())-1.
// Other kinds have none.
func (c *Clause) Connectors() []BoolOp {
	if c.where == nil {
		return nil
	}
	return append([]BoolOp(nil), c.where.Connectors...)
}

// Predicate returns the WHERE predicate group, or nil for other kinds.
func (c *Clause) Predicate() *Predicate {
	return c.where
}

// Limit returns the row limit, 0 when unset.
func (c *Clause) Limit() int {
	return c.limit
}

// IsEmpty reports whether the clause holds no items.
func (c *Clause) IsEmpty() bool {
	return c == nil || len(c.items) == 0
}

// Render returns the clause fragment ready to splice into a statement.
//
//	Select   a, b            (empty: *)
//	Columns  (a, b)
//	Values   VALUES (a, b)
//	OrderBy  \nORDER BY a, b
//	Where    \nWHERE (a) AND (b)
//	Limit    \nLIMIT n
//
// Empty clauses other than Select render as "".
func (c *Clause) Render() string {
	if c == nil {
		return ""
	}
	if c.kind == KindSelect && len(c.items) == 0 {
		return "*"
	}
	if len(c.items) == 0 {
		return ""
	}

	list := strings.Join(c.items, ", ")
	switch c.kind {
	case KindSelect:
		return list
	case KindColumns:
		return "(" + list + ")"
	case KindValues:
		return "VALUES (" + list + ")"
	case KindOrderBy:
		return "\nORDER BY " + list
	case KindWhere:
		return "\nWHERE " + c.where.String()
	case KindLimit:
		return "\nLIMIT " + list
	}
	return list
}

// String implements fmt.Stringer.
func (c *Clause) String() string {
	return c.Render()
}
