package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diaflow/pkg/diagram"
	"github.com/matzehuels/diaflow/pkg/generate"
	"github.com/matzehuels/diaflow/pkg/graph"
	"github.com/matzehuels/diaflow/pkg/project"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	offline bool   // skip the model, use canned templates
	save    bool   // persist the result as a new project
	name    string // project name when saving
	output  string // write the diagram JSON here (stdout if empty)
}

// newGenerateCmd creates the generate command.
// Example: diaflow generate class "library with books and members"
func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <kind> <prompt>",
		Short: "Generate a diagram from a natural language prompt",
		Long: `Generate a UML diagram from a natural language prompt.

The kind must be one of: ` + kindList() + `.

Examples:
  diaflow generate class "library with books, members and loans"
  diaflow generate sequence "user logs in via oauth" --save -n "Login Flow"
  diaflow generate activity "order fulfilment" --offline`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runGenerate(c, args[0], strings.Join(args[1:], " "), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.offline, "offline", false, "use built-in templates instead of the model")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the result as a new project")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "project name (implies --save)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runGenerate(c *cobra.Command, kindArg, prompt string, opts generateOpts) error {
	ctx := c.Context()
	logger := loggerFromContext(ctx)

	kind, ok := diagram.ParseKind(kindArg)
	if !ok {
		return fmt.Errorf("unknown diagram kind %q, expected one of: %s", kindArg, kindList())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	manager, err := newManager(ctx, cfg, logger)
	if err != nil {
		return err
	}
	generator := newGenerator(ctx, cfg, opts.offline, logger)

	manager.CreateProject(kind)

	sp := newSpinner(ctx, fmt.Sprintf("Generating %s diagram...", kind))
	sp.start()

	payload, err := generator.Generate(ctx, generate.Request{Kind: kind, Prompt: prompt})
	if err != nil {
		sp.stopError("Generation failed")
		return err
	}
	sp.setMessage("Computing layout...")

	validation, err := manager.UpdateFromPayload(ctx, payload)
	if err != nil {
		sp.stopError("Layout failed")
		return err
	}
	sp.stopSuccess(fmt.Sprintf("Generated %s diagram", kind))
	manager.AddMessage(project.RoleUser, prompt)
	manager.AddMessage(project.RoleAssistant, "Generated the diagram.")

	if !validation.Valid {
		printWarning("%d validation issue(s), diagram may be incomplete", len(validation.Errors))
		for _, e := range validation.Errors {
			printDetail("%s", e)
		}
	}
	printStats(len(manager.Nodes()), len(manager.Edges()), false)

	if opts.save || opts.name != "" {
		if opts.name != "" {
			if err := manager.RenameActive(opts.name); err != nil {
				return err
			}
		}
		if err := manager.Save(ctx); err != nil {
			return err
		}
		if p, ok := manager.Active(); ok {
			printSuccess("Saved project %s", StyleValue.Render(p.Name))
			printNextStep("Inspect it with", "diaflow project show "+p.ID)
		}
	}

	return writeDiagramOutput(manager, opts.output)
}

// writeDiagramOutput serializes the live diagram to a file or stdout.
func writeDiagramOutput(manager *project.Manager, output string) error {
	d := managerDiagram(manager)
	raw, err := diagram.Marshal(d)
	if err != nil {
		return err
	}
	if output == "" {
		fmt.Println(string(raw))
		return nil
	}
	if err := os.WriteFile(output, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printFile(output)
	return nil
}

// managerDiagram reconstructs the interchange diagram from the manager's
// live graph.
func managerDiagram(manager *project.Manager) diagram.Diagram {
	return graph.ToDiagram(manager.Kind(), manager.Nodes(), manager.Edges())
}

func kindList() string {
	parts := make([]string, len(diagram.Kinds))
	for i, k := range diagram.Kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
