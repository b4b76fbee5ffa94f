package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diaflow/pkg/cache"
	"github.com/matzehuels/diaflow/pkg/graph"
	"github.com/matzehuels/diaflow/pkg/pipeline"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	sweeps  int    // crossing minimization sweep count
	refresh bool   // bypass the layout cache
	output  string // output file path (stdout if empty)
}

// layoutOutput is the JSON document emitted by the layout command.
type layoutOutput struct {
	Kind   string       `json:"kind"`
	Valid  bool         `json:"valid"`
	Errors []string     `json:"errors,omitempty"`
	Nodes  []graph.Node `json:"nodes"`
	Edges  []graph.Edge `json:"edges"`
}

// newLayoutCmd creates the layout command. It reads a diagram JSON file,
// validates it, and emits the laid-out node-link graph without touching
// any stored project.
func newLayoutCmd() *cobra.Command {
	opts := layoutOpts{sweeps: pipeline.DefaultSweeps}

	cmd := &cobra.Command{
		Use:   "layout <diagram.json>",
		Short: "Validate a diagram file and compute its layout",
		Long: `Validate a diagram file and compute node positions.

The input may be any JSON document. Invalid documents still produce a
best-effort graph; validation errors are reported alongside it.

Examples:
  diaflow layout diagram.json
  diaflow layout diagram.json -o graph.json --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runLayout(c, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.sweeps, "sweeps", opts.sweeps, "crossing minimization sweeps")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the layout cache")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runLayout(c *cobra.Command, path string, opts layoutOpts) error {
	ctx := c.Context()
	logger := loggerFromContext(ctx)

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var candidate any
	if err := json.Unmarshal(raw, &candidate); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(newCache(ctx, cfg.Cache, logger), cache.NewDefaultKeyer(), logger)
	defer func() { _ = runner.Close() }()

	p := newProgress(logger)
	result, err := runner.Execute(ctx, candidate, pipeline.Options{
		Sweeps:  opts.sweeps,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Laid out %d nodes", result.Stats.NodeCount))

	if !result.Validation.Valid {
		printWarning("%d validation issue(s)", len(result.Validation.Errors))
		for _, e := range result.Validation.Errors {
			printDetail("%s", e)
		}
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)

	out := layoutOutput{
		Kind:   string(result.Diagram.Type),
		Valid:  result.Validation.Valid,
		Errors: result.Validation.Errors,
		Nodes:  result.Nodes,
		Edges:  result.Edges,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if opts.output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printFile(opts.output)
	return nil
}
