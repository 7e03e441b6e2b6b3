package commands

import (
	"github.com/leapstack-labs/sqlclause/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>",
		Short: "Show the columns of a table on the target",
		Example: `  sqlclause describe users
  sqlclause describe public.orders --target prod -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd, args[0])
		},
	}
}

func runDescribe(cmd *cobra.Command, table string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	exec, cleanup, err := cmdCtx.Executor(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	meta, err := exec.Describe(cmd.Context(), table)
	if err != nil {
		return err
	}

	res := &output.Result{Columns: []string{"position", "name", "type", "nullable", "primary_key"}}
	for _, c := range meta.Columns {
		res.Rows = append(res.Rows, []any{c.Position, c.Name, c.Type, c.Nullable, c.PrimaryKey})
	}

	if r.EffectiveMode() == output.ModeText {
		r.Println(r.Styles().Bold.Render(meta.Schema + "." + meta.Name))
	}
	return r.RenderResult(res)
}
