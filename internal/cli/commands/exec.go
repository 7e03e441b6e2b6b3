package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlclause/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Build a statement from clause fragments and run it against the target",
		Long: `Build a SELECT, INSERT, UPDATE or DELETE statement from clause fragments
and run it against the configured target. The dialect always follows the
target type; --dialect is ignored.

SELECT results are rendered as a table, markdown, CSV, JSON or YAML
depending on --output.`,
		Example: `  sqlclause exec select users -c "id, name" -w "active = 1" --target prod
  sqlclause exec select users -c "id, email" --check
  sqlclause exec update users -c status --values "'inactive'" -w "last_login < '2024-01-01'"`,
	}

	for _, sub := range verbCommands("Run", runExec) {
		if sub.Name() == verbSelect {
			sub.Flags().Bool("check", false, "Verify selected columns exist before running")
		}
		cmd.AddCommand(sub)
	}
	return cmd
}

func runExec(cmd *cobra.Command, verb, table string, opts *StatementOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	ctx := cmd.Context()

	exec, cleanup, err := cmdCtx.Executor(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if verb == verbSelect {
		check, _ := cmd.Flags().GetBool("check")
		run := exec.Select
		if check {
			run = exec.SelectChecked
		}
		rows, err := run(ctx, table, opts.SelectOptions())
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		res, err := output.CollectRows(rows.Rows)
		if err != nil {
			return fmt.Errorf("failed to read rows: %w", err)
		}
		return r.RenderResult(res)
	}

	var n int64
	switch verb {
	case verbInsert:
		n, err = exec.Insert(ctx, table, optional(opts.Columns), optional(opts.Values))
	case verbUpdate:
		n, err = exec.Update(ctx, table, optional(opts.Columns), optional(opts.Values), optional(opts.Where))
	case verbDelete:
		n, err = exec.Delete(ctx, table, optional(opts.Where))
	}
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("statement executed", slog.String("verb", verb), slog.Int64("rows", n))

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return r.RenderValue(map[string]int64{"rows_affected": n})
	default:
		r.Printf("%d rows affected\n", n)
	}
	return nil
}
