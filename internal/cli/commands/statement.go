package commands

import (
	"github.com/leapstack-labs/sqlclause/internal/cli/output"
	"github.com/leapstack-labs/sqlclause/pkg/clause"
	"github.com/leapstack-labs/sqlclause/pkg/query"
	"github.com/spf13/cobra"
)

// StatementOptions holds the clause flags shared by statement and exec.
type StatementOptions struct {
	Columns string
	Values  string
	Where   string
	OrderBy string
	Limit   string
	Check   bool
}

// SelectOptions converts the flags into query select options.
func (o *StatementOptions) SelectOptions() query.SelectOptions {
	return query.SelectOptions{
		Columns: optional(o.Columns),
		Where:   optional(o.Where),
		OrderBy: optional(o.OrderBy),
		Limit:   optional(o.Limit),
	}
}

// Statement verbs.
const (
	verbSelect = "select"
	verbInsert = "insert"
	verbUpdate = "update"
	verbDelete = "delete"
)

type verbRunner func(cmd *cobra.Command, verb, table string, opts *StatementOptions) error

// verbCommands builds the select/insert/update/delete subcommands for parent.
func verbCommands(action string, run verbRunner) []*cobra.Command {
	defs := []struct {
		verb  string
		short string
		flags func(*cobra.Command, *StatementOptions)
	}{
		{verbSelect, "SELECT rows from a table", func(c *cobra.Command, o *StatementOptions) {
			c.Flags().StringVarP(&o.Columns, "columns", "c", "", "Select list (default *)")
			c.Flags().StringVarP(&o.Where, "where", "w", "", "WHERE predicates")
			c.Flags().StringVar(&o.OrderBy, "order-by", "", "ORDER BY items")
			c.Flags().StringVar(&o.Limit, "limit", "", "Row limit")
		}},
		{verbInsert, "INSERT a row into a table", func(c *cobra.Command, o *StatementOptions) {
			c.Flags().StringVarP(&o.Columns, "columns", "c", "", "Column list (default: table order)")
			c.Flags().StringVar(&o.Values, "values", "", "Comma-separated values")
			_ = c.MarkFlagRequired("values")
		}},
		{verbUpdate, "UPDATE rows of a table", func(c *cobra.Command, o *StatementOptions) {
			c.Flags().StringVarP(&o.Columns, "columns", "c", "", "Columns to assign")
			c.Flags().StringVar(&o.Values, "values", "", "Values assigned pairwise to --columns")
			c.Flags().StringVarP(&o.Where, "where", "w", "", "WHERE predicates")
			_ = c.MarkFlagRequired("columns")
			_ = c.MarkFlagRequired("values")
		}},
		{verbDelete, "DELETE rows from a table (a WHERE clause is required)", func(c *cobra.Command, o *StatementOptions) {
			c.Flags().StringVarP(&o.Where, "where", "w", "", "WHERE predicates")
		}},
	}

	cmds := make([]*cobra.Command, 0, len(defs))
	for _, def := range defs {
		opts := &StatementOptions{}
		verb := def.verb
		c := &cobra.Command{
			Use:   verb + " <table>",
			Short: action + " " + def.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, verb, args[0], opts)
			},
		}
		def.flags(c, opts)
		cmds = append(cmds, c)
	}
	return cmds
}

// NewStatementCommand creates the statement command.
func NewStatementCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Print a complete statement built from clause fragments",
		Long: `Build a SELECT, INSERT, UPDATE or DELETE statement from clause fragments
without executing it. Every fragment is normalized for the selected dialect.`,
		Example: `  sqlclause statement select users -c "id, name" -w "age > 18" --order-by "name DESC" --limit 10 -d mysql
  sqlclause statement insert users -c "id, name" --values "1, 'ada'"
  sqlclause statement delete users -w "id = 1"`,
	}
	cmd.AddCommand(verbCommands("Print", runStatement)...)
	return cmd
}

// buildStatement renders the statement for verb with b.
func buildStatement(b *query.Builder, verb, table string, opts *StatementOptions) (string, error) {
	switch verb {
	case verbInsert:
		return b.Insert(table, optional(opts.Columns), optional(opts.Values))
	case verbUpdate:
		return b.Update(table, optional(opts.Columns), optional(opts.Values), optional(opts.Where))
	case verbDelete:
		return b.Delete(table, optional(opts.Where))
	default:
		return b.Select(table, opts.SelectOptions())
	}
}

func runStatement(cmd *cobra.Command, verb, table string, opts *StatementOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	d, err := cmdCtx.Dialect()
	if err != nil {
		return err
	}
	b, err := query.NewBuilder(d, clause.WithLogger(cmdCtx.Logger))
	if err != nil {
		return err
	}
	stmt, err := buildStatement(b, verb, table, opts)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return r.RenderValue(map[string]string{"dialect": d.Name, "sql": stmt})
	case output.ModeMarkdown:
		r.Println(output.FormatCodeBlock("sql", stmt))
	default:
		r.Println(stmt)
	}
	return nil
}
