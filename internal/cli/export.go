package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diaflow/pkg/render"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	format string // "svg" or "dot"
	output string // output file path
}

// newExportCmd creates the export command. It loads a stored project,
// recomputes its layout, and writes a DOT or SVG rendering.
func newExportCmd() *cobra.Command {
	opts := exportOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Export a project as SVG or DOT",
		Long: `Export a stored project as a rendered visualization.

Examples:
  diaflow export 4f1c... -o diagram.svg
  diaflow export 4f1c... --format dot -o diagram.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runExport(c, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg or dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (required)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runExport(c *cobra.Command, id string, opts exportOpts) error {
	ctx := c.Context()

	manager, err := openManager(c)
	if err != nil {
		return err
	}
	if err := manager.Load(ctx, id); err != nil {
		return err
	}

	dot := render.ToDOT(manager.Kind(), manager.Nodes(), manager.Edges())

	var data []byte
	switch strings.ToLower(opts.format) {
	case "dot":
		data = []byte(dot)
	case "svg":
		sp := newSpinner(ctx, "Rendering SVG...")
		sp.start()
		data, err = render.ToSVG(ctx, dot)
		if err != nil {
			sp.stopError("Rendering failed")
			return err
		}
		sp.stop()
	default:
		return fmt.Errorf("unknown format %q, expected svg or dot", opts.format)
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Exported %s", opts.format)
	printFile(opts.output)
	return nil
}
