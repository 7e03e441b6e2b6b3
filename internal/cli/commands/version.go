package commands

import (
	"strings"

	"github.com/leapstack-labs/sqlclause/internal/cli/output"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	"github.com/spf13/cobra"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	// Dialects is filled from the dialect registry when the command runs.
	Dialects []string `json:"dialects" yaml:"dialects"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display sqlclause version and build information, and the dialects
compiled into this binary.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), versionMode(cmd))
			if short {
				r.Println(info.Version)
				return
			}

			info.Dialects = dialect.List()
			switch r.EffectiveMode() {
			case output.ModeJSON, output.ModeYAML:
				_ = r.RenderValue(info)
			default:
				r.Printf("sqlclause v%s\n", info.Version)
				if info.Commit != "" || info.BuildDate != "" {
					r.Printf("commit %s, built %s\n", orUnknown(info.Commit), orUnknown(info.BuildDate))
				}
				if len(info.Dialects) > 0 {
					r.Printf("dialects: %s\n", strings.Join(info.Dialects, ", "))
				}
			}
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

// versionMode reads --output when the root defines it; version also runs standalone.
func versionMode(cmd *cobra.Command) output.Mode {
	f := cmd.Flags().Lookup("output")
	if f == nil {
		return output.ModeText
	}
	m, err := output.ParseMode(f.Value.String())
	if err != nil || m == output.ModeAuto {
		return output.ModeText
	}
	return m
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
