package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlclause/pkg/adapter"
	"github.com/leapstack-labs/sqlclause/pkg/clause"
	"github.com/leapstack-labs/sqlclause/pkg/core"
	"github.com/leapstack-labs/sqlclause/pkg/ident"
)

// Executor builds statements with the adapter's dialect and runs them.
type Executor struct {
	adapter adapter.Adapter
	builder *Builder
	logger  *slog.Logger
}

// NewExecutor creates an executor for a connected adapter.
// If logger is nil, a discard logger is used.
func NewExecutor(a adapter.Adapter, logger *slog.Logger) (*Executor, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b, err := NewBuilder(a.Dialect(), clause.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Executor{adapter: a, builder: b, logger: logger}, nil
}

// Builder returns the statement builder bound to the adapter's dialect.
func (e *Executor) Builder() *Builder {
	return e.builder
}

// Select runs a SELECT and returns the open result set. Callers must close it.
func (e *Executor) Select(ctx context.Context, table string, opts SelectOptions) (*core.Rows, error) {
	stmt, err := e.builder.Select(table, opts)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("running select", slog.String("sql", stmt))
	return e.adapter.Query(ctx, stmt)
}

// SelectChecked is like Select but first verifies that every plainly selected
// column exists in the table. Wildcards and function calls are not checked.
func (e *Executor) SelectChecked(ctx context.Context, table string, opts SelectOptions) (*core.Rows, error) {
	sel, _, _, _, err := e.builder.SelectClauses(opts)
	if err != nil {
		return nil, err
	}
	meta, err := e.Describe(ctx, table)
	if err != nil {
		return nil, err
	}
	for _, item := range sel.Items() {
		name, ok := columnName(item)
		if !ok {
			continue
		}
		if !meta.HasColumn(name) {
			return nil, &UnknownColumnError{Table: table, Column: name, Available: meta.ColumnNames()}
		}
	}
	return e.Select(ctx, table, opts)
}

// columnName extracts the bare column of a canonical item such as `t`.`id`.
// ok is false for wildcards, function calls and casts.
func columnName(item string) (string, bool) {
	if item == "*" || strings.HasSuffix(item, ".*") || strings.Contains(item, "(") || strings.Contains(item, "::") {
		return "", false
	}
	last := item
	if i := strings.LastIndex(item, "."); i > 0 && ident.IsQuoteChar(item[i-1]) {
		last = item[i+1:]
	}
	inner, ok := ident.Unquote(last)
	if !ok {
		return "", false
	}
	q := last[:1]
	return strings.ReplaceAll(inner, q+q, q), true
}

// Insert runs an INSERT and returns the number of rows written.
func (e *Executor) Insert(ctx context.Context, table string, columns, values any) (int64, error) {
	stmt, err := e.builder.Insert(table, columns, values)
	if err != nil {
		return 0, err
	}
	return e.exec(ctx, stmt)
}

// Update runs an UPDATE and returns the number of rows changed.
func (e *Executor) Update(ctx context.Context, table string, columns, values, where any) (int64, error) {
	stmt, err := e.builder.Update(table, columns, values, where)
	if err != nil {
		return 0, err
	}
	return e.exec(ctx, stmt)
}

// Delete runs a DELETE and returns the number of rows removed.
func (e *Executor) Delete(ctx context.Context, table string, where any) (int64, error) {
	stmt, err := e.builder.Delete(table, where)
	if err != nil {
		return 0, err
	}
	return e.exec(ctx, stmt)
}

// Describe returns column metadata for a validated table name.
func (e *Executor) Describe(ctx context.Context, table string) (*core.TableMetadata, error) {
	if _, err := e.builder.Table(table); err != nil {
		return nil, err
	}
	meta, err := e.adapter.GetTableMetadata(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	return meta, nil
}

func (e *Executor) exec(ctx context.Context, stmt string) (int64, error) {
	e.logger.Debug("running statement", slog.String("sql", stmt))
	return e.adapter.Exec(ctx, stmt)
}
