// Package query assembles complete statements from normalized clauses and runs
// them through an adapter.
//
// The clause package produces fragments; this package owns the statement shapes:
//
//	SELECT {select} FROM {table}{where}{order_by}{limit};
//	INSERT INTO {table} {columns} {values};
//	UPDATE {table} SET {column} = {value}, ...{where};
//	DELETE FROM {table}{where};
package query

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlclause/pkg/clause"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	"github.com/leapstack-labs/sqlclause/pkg/ident"
)

// SelectOptions holds the raw clause inputs of a SELECT. Each field accepts
// whatever the corresponding clause builder accepts; nil leaves the clause out.
type SelectOptions struct {
	Columns any
	Where   any
	OrderBy any
	Limit   any
}

// Builder renders statements for one dialect.
type Builder struct {
	dialect   *dialect.Dialect
	validator *ident.Validator
	opts      []clause.Option
}

// NewBuilder creates a statement builder. Options are forwarded to every clause.
func NewBuilder(d *dialect.Dialect, opts ...clause.Option) (*Builder, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	return &Builder{dialect: d, validator: ident.New(d), opts: opts}, nil
}

// Dialect returns the builder's dialect.
func (b *Builder) Dialect() *dialect.Dialect {
	return b.dialect
}

// Table validates a possibly schema-qualified table name and quotes every part.
func (b *Builder) Table(name string) (string, error) {
	parts := strings.Split(strings.TrimSpace(name), ".")
	if ident.IsQuoted(strings.TrimSpace(name)) {
		parts = []string{strings.TrimSpace(name)}
	}
	if len(parts) > 2 {
		return "", fmt.Errorf("table reference %q has more than one qualifier", name)
	}

	quoted := make([]string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		v, err := b.validator.TableName(p)
		if err != nil {
			return "", err
		}
		inner, ok := ident.Unquote(v)
		if ok {
			q := v[:1]
			inner = strings.ReplaceAll(inner, q+q, q)
		}
		quoted[i] = b.dialect.QuoteIdentifier(inner)
	}
	return strings.Join(quoted, "."), nil
}

// SelectClauses builds the clauses of a SELECT without rendering the statement.
func (b *Builder) SelectClauses(opts SelectOptions) (sel, where, orderBy, limit *clause.Clause, err error) {
	if sel, err = clause.Select(b.dialect, opts.Columns, b.opts...); err != nil {
		return
	}
	if where, err = clause.Where(b.dialect, opts.Where, b.opts...); err != nil {
		return
	}
	if orderBy, err = clause.OrderBy(b.dialect, opts.OrderBy, b.opts...); err != nil {
		return
	}
	limit, err = clause.Limit(b.dialect, opts.Limit, b.opts...)
	return
}

// Select renders a SELECT statement.
func (b *Builder) Select(table string, opts SelectOptions) (string, error) {
	t, err := b.Table(table)
	if err != nil {
		return "", err
	}
	sel, where, orderBy, limit, err := b.SelectClauses(opts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT %s FROM %s%s%s%s;", sel.Render(), t, where.Render(), orderBy.Render(), limit.Render()), nil
}

// Insert renders an INSERT statement. columns may be nil to rely on table column order.
func (b *Builder) Insert(table string, columns, values any) (string, error) {
	t, err := b.Table(table)
	if err != nil {
		return "", err
	}
	cols, err := clause.Columns(b.dialect, columns, b.opts...)
	if err != nil {
		return "", err
	}
	vals, err := clause.Values(b.dialect, values, b.opts...)
	if err != nil {
		return "", err
	}
	if vals.IsEmpty() {
		return "", ErrNoValues
	}
	if !cols.IsEmpty() && len(cols.Items()) != len(vals.Items()) {
		return "", mismatch(len(cols.Items()), len(vals.Items()))
	}

	if cols.IsEmpty() {
		return fmt.Sprintf("INSERT INTO %s %s;", t, vals.Render()), nil
	}
	return fmt.Sprintf("INSERT INTO %s %s %s;", t, cols.Render(), vals.Render()), nil
}

// Update renders an UPDATE statement assigning values to columns pairwise.
func (b *Builder) Update(table string, columns, values, where any) (string, error) {
	t, err := b.Table(table)
	if err != nil {
		return "", err
	}
	cols, err := clause.Columns(b.dialect, columns, b.opts...)
	if err != nil {
		return "", err
	}
	if cols.IsEmpty() {
		return "", ErrNoColumns
	}
	vals, err := clause.Values(b.dialect, values, b.opts...)
	if err != nil {
		return "", err
	}
	if len(cols.Items()) != len(vals.Items()) {
		return "", mismatch(len(cols.Items()), len(vals.Items()))
	}
	w, err := clause.Where(b.dialect, where, b.opts...)
	if err != nil {
		return "", err
	}

	colItems, valItems := cols.Items(), vals.Items()
	set := make([]string, len(colItems))
	for i := range colItems {
		set[i] = colItems[i] + " = " + valItems[i]
	}
	return fmt.Sprintf("UPDATE %s SET %s%s;", t, strings.Join(set, ", "), w.Render()), nil
}

// Delete renders a DELETE statement. A WHERE clause is mandatory.
func (b *Builder) Delete(table string, where any) (string, error) {
	t, err := b.Table(table)
	if err != nil {
		return "", err
	}
	w, err := clause.Where(b.dialect, where, b.opts...)
	if err != nil {
		return "", err
	}
	if w.IsEmpty() {
		return "", ErrUnboundedDelete
	}
	return fmt.Sprintf("DELETE FROM %s%s;", t, w.Render()), nil
}
