package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlclause/internal/cli/output"
	"github.com/leapstack-labs/sqlclause/pkg/ident"
	"github.com/spf13/cobra"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Label string
}

// Verdict is the outcome of validating one identifier.
type Verdict struct {
	Input string `json:"input" yaml:"input"`
	Valid bool   `json:"valid" yaml:"valid"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

var validateLabels = []string{"identifier", "database", "table", "column"}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <identifier>...",
		Short: "Check identifiers against the dialect's naming rules",
		Long: `Check identifiers against the dialect's naming rules.

Unquoted identifiers may contain letters, digits, $ and _ and must not be a
reserved keyword. Quoted identifiers may contain any ASCII character except
the forbidden ; and \. Exits non-zero if any identifier is rejected.`,
		Example: `  sqlclause validate users "order" '"order"' -d mysql
  sqlclause validate --label table "users; DROP"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Label, "label", "l", "identifier", "What is being validated: "+strings.Join(validateLabels, ", "))
	_ = cmd.RegisterFlagCompletionFunc("label", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validateLabels, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *ValidateOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	d, err := cmdCtx.Dialect()
	if err != nil {
		return err
	}
	check, err := labelValidator(ident.New(d), opts.Label)
	if err != nil {
		return err
	}

	verdicts := make([]Verdict, len(args))
	failed := 0
	for i, arg := range args {
		v := Verdict{Input: arg}
		if value, err := check(arg); err != nil {
			v.Error = err.Error()
			failed++
		} else {
			v.Valid = true
			v.Value = value
		}
		verdicts[i] = v
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		if err := r.RenderValue(verdicts); err != nil {
			return err
		}
	default:
		styles := r.Styles()
		for _, v := range verdicts {
			if v.Valid {
				r.Printf("%s %s\n", styles.Mark(true), v.Value)
			} else {
				r.Printf("%s %s\n", styles.Mark(false), styles.Error.Render(v.Error))
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d identifiers rejected", failed, len(args))
	}
	return nil
}

func labelValidator(v *ident.Validator, label string) (func(string) (string, error), error) {
	switch strings.ToLower(label) {
	case "", "identifier":
		return v.Validate, nil
	case "database":
		return func(s string) (string, error) { return v.DatabaseName(s) }, nil
	case "table":
		return func(s string) (string, error) { return v.TableName(s) }, nil
	case "column":
		return func(s string) (string, error) { return v.TableColumn(s) }, nil
	}
	return nil, fmt.Errorf("unknown label %q (valid: %s)", label, strings.Join(validateLabels, ", "))
}
