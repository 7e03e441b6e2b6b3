package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlclause/internal/cli/config"
	"github.com/leapstack-labs/sqlclause/internal/cli/output"
	"github.com/leapstack-labs/sqlclause/pkg/adapter"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	"github.com/leapstack-labs/sqlclause/pkg/query"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.OutputMode()),
	}
}

// Dialect resolves the dialect from --dialect or the target type.
func (c *CommandContext) Dialect() (*dialect.Dialect, error) {
	return c.Cfg.ResolveDialect()
}

// Connect opens the configured target.
// Returns the adapter and a cleanup function that must be called (typically via defer).
func (c *CommandContext) Connect(ctx context.Context) (adapter.Adapter, func(), error) {
	target := c.Cfg.Target
	a, err := adapter.NewAdapter(target.AdapterConfig(), c.Logger)
	if err != nil {
		return nil, nil, err
	}
	if err := a.Connect(ctx, target.AdapterConfig()); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s target: %w", target.Type, err)
	}
	c.Logger.Debug("connected", slog.String("type", target.Type), slog.String("dialect", a.Dialect().Name))
	return a, func() { _ = a.Close() }, nil
}

// Executor connects to the target and wraps the adapter in a query executor.
func (c *CommandContext) Executor(ctx context.Context) (*query.Executor, func(), error) {
	a, cleanup, err := c.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	exec, err := query.NewExecutor(a, c.Logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return exec, cleanup, nil
}

// optional maps an unset string flag to nil so the clause default applies.
func optional(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// readInput returns piped input, or "" when in is a terminal.
func readInput(in io.Reader) (string, error) {
	if output.IsTerminal(in) {
		return "", nil
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
