package commands

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/sqlclause/internal/cli/output"
	"github.com/leapstack-labs/sqlclause/pkg/clause"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// BatchOptions holds options for the batch command.
type BatchOptions struct {
	Jobs int
}

// Manifest lists clause fragments to render in one run.
type Manifest struct {
	// Dialect applies to entries that do not name their own.
	Dialect string       `yaml:"dialect"`
	Entries []BatchEntry `yaml:"entries"`
}

// BatchEntry is one fragment of a manifest. Value may be a scalar or a list.
type BatchEntry struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Dialect string `yaml:"dialect"`
	Value   any    `yaml:"value"`
}

// BatchResult is the outcome of rendering one entry.
type BatchResult struct {
	Name string `json:"name" yaml:"name"`
	RenderOutput `yaml:",inline"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Render every fragment of a YAML manifest",
		Long: `Render every fragment listed in a YAML manifest concurrently and print the
results in manifest order. Exits non-zero if any entry fails.

Manifest format:

  dialect: mysql
  entries:
    - name: listing
      kind: select
      value: id, name, COUNT(*)
    - name: filter
      kind: where
      dialect: postgres
      value:
        - age > 18
        - status = 'active'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 4, "Maximum number of entries rendered at once")

	return cmd
}

// LoadManifest reads and decodes a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	for i := range m.Entries {
		if m.Entries[i].Name == "" {
			m.Entries[i].Name = fmt.Sprintf("entry-%d", i+1)
		}
	}
	return &m, nil
}

func runBatch(cmd *cobra.Command, path string, opts *BatchOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	m, err := LoadManifest(path)
	if err != nil {
		return err
	}
	fallback := m.Dialect
	if fallback == "" {
		if d, err := cmdCtx.Dialect(); err == nil {
			fallback = d.Name
		}
	}

	results := RenderManifest(cmd, m.Entries, fallback, opts.Jobs, cmdCtx.Logger)

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		if err := r.RenderValue(results); err != nil {
			return err
		}
	default:
		styles := r.Styles()
		for _, res := range results {
			if res.Error != "" {
				r.Printf("%s %s: %s\n", styles.Mark(false), res.Name, styles.Error.Render(res.Error))
				continue
			}
			r.Printf("%s %s: %s\n", styles.Mark(true), res.Name, res.SQL)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d entries failed", failed, len(results))
	}
	return nil
}

// RenderManifest renders entries with at most jobs in flight. Results keep entry order.
func RenderManifest(cmd *cobra.Command, entries []BatchEntry, fallbackDialect string, jobs int, logger *slog.Logger) []BatchResult {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]BatchResult, len(entries))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = BatchResult{Name: entry.Name, RenderOutput: RenderOutput{Error: err.Error()}}
				return nil
			}
			results[i] = renderEntry(entry, fallbackDialect, logger)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func renderEntry(entry BatchEntry, fallbackDialect string, logger *slog.Logger) BatchResult {
	res := BatchResult{Name: entry.Name, RenderOutput: RenderOutput{Kind: entry.Kind}}

	name := entry.Dialect
	if name == "" {
		name = fallbackDialect
	}
	d, err := dialect.Lookup(name)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Dialect = d.Name

	kind, err := clause.ParseKind(entry.Kind)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	c, err := clause.New(d, kind, entry.Value, clause.WithLogger(logger.With(slog.String("entry", entry.Name))))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.RenderOutput = renderOutput(c)
	return res
}
