package commands

import (
	"strings"

	"github.com/leapstack-labs/sqlclause/internal/cli/output"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	"github.com/spf13/cobra"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects and their quoting rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

func runDialects(cmd *cobra.Command) error {
	r := NewCommandContext(cmd).Renderer

	res := &output.Result{Columns: []string{"name", "aliases", "identifier", "column", "literal", "cast", "schema"}}
	for _, name := range dialect.List() {
		d := dialect.MustGet(name)
		res.Rows = append(res.Rows, []any{
			d.Name,
			strings.Join(d.Aliases, ", "),
			d.Quotes.Identifier,
			d.Quotes.Column,
			d.Quotes.Literal,
			d.SupportsCast(),
			d.DefaultSchema,
		})
	}
	return r.RenderResult(res)
}
