package commands

import (
	"strings"

	"github.com/leapstack-labs/sqlclause/internal/cli/output"
	"github.com/leapstack-labs/sqlclause/pkg/clause"
	"github.com/spf13/cobra"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Items bool
}

// RenderOutput is the structured form of a rendered clause.
type RenderOutput struct {
	Kind       string   `json:"kind" yaml:"kind"`
	Dialect    string   `json:"dialect" yaml:"dialect"`
	SQL        string   `json:"sql" yaml:"sql"`
	Items      []string `json:"items" yaml:"items"`
	Connectors []string `json:"connectors,omitempty" yaml:"connectors,omitempty"`
	Limit      int      `json:"limit,omitempty" yaml:"limit,omitempty"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <kind> [fragment...]",
		Short: "Normalize a clause fragment and print its canonical SQL",
		Long: `Normalize a clause fragment for the selected dialect and print the result.

Kinds: select, columns, values, order-by, where, limit.

A single fragment is parsed as a comma-separated list (or an AND/OR predicate
for where). Several fragments are treated as a list of items. Without a
fragment the input is read from stdin when it is piped.`,
		Example: `  # Quote a select list for MySQL
  sqlclause render select "id, COUNT(*), name" -d mysql

  # Show the predicates and connectors of a where clause
  sqlclause render where "age > 18 AND status = 'active' OR vip = 1" --items

  # Read the fragment from a pipe
  echo "created_at DESC" | sqlclause render order-by -d postgres`,
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Items, "items", false, "Print canonical items (and connectors for where) instead of SQL")

	return cmd
}

func kindNames() []string {
	kinds := clause.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = strings.ReplaceAll(k.String(), "_", "-")
	}
	return names
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	kind, err := clause.ParseKind(args[0])
	if err != nil {
		return err
	}
	d, err := cmdCtx.Dialect()
	if err != nil {
		return err
	}

	var raw any
	switch fragments := args[1:]; len(fragments) {
	case 0:
		in, err := readInput(cmd.InOrStdin())
		if err != nil {
			return err
		}
		if in != "" {
			raw = in
		}
	case 1:
		raw = fragments[0]
	default:
		raw = fragments
	}

	c, err := clause.New(d, kind, raw, clause.WithLogger(cmdCtx.Logger))
	if err != nil {
		return err
	}
	out := renderOutput(c)

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return r.RenderValue(out)
	case output.ModeMarkdown:
		if opts.Items {
			for _, line := range itemLines(out) {
				r.Println("- " + line)
			}
			return nil
		}
		r.Println(output.FormatCodeBlock("sql", out.SQL))
	default:
		if opts.Items {
			for _, line := range itemLines(out) {
				r.Println(line)
			}
			return nil
		}
		r.Println(out.SQL)
	}
	return nil
}

func renderOutput(c *clause.Clause) RenderOutput {
	out := RenderOutput{
		Kind:    c.Kind().String(),
		Dialect: c.Dialect().Name,
		SQL:     strings.TrimLeft(c.Render(), "\n"),
		Items:   c.Items(),
		Limit:   c.Limit(),
	}
	if out.Items == nil {
		out.Items = []string{}
	}
	for _, op := range c.Connectors() {
		out.Connectors = append(out.Connectors, op.String())
	}
	return out
}

// itemLines interleaves where connectors with their predicates.
func itemLines(out RenderOutput) []string {
	lines := make([]string, 0, len(out.Items)+len(out.Connectors))
	for i, item := range out.Items {
		if i > 0 && i-1 < len(out.Connectors) {
			lines = append(lines, out.Connectors[i-1])
		}
		lines = append(lines, item)
	}
	return lines
}
