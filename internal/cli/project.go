package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diaflow/pkg/diagram"
	"github.com/matzehuels/diaflow/pkg/project"
)

// newProjectCmd creates the project command group.
func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage stored diagram projects",
	}

	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectShowCmd())
	cmd.AddCommand(newProjectRenameCmd())
	cmd.AddCommand(newProjectDeleteCmd())
	cmd.AddCommand(newProjectPickCmd())

	return cmd
}

func newProjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored projects",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			manager, err := openManager(c)
			if err != nil {
				return err
			}
			projects := manager.Projects()
			if len(projects) == 0 {
				printInfo("No projects yet")
				printNextStep("Create one with", `diaflow generate class "..." --save`)
				return nil
			}
			for _, p := range projects {
				fmt.Printf("%s  %s  %s  %s\n",
					StyleDim.Render(p.ID),
					StyleValue.Render(fmt.Sprintf("%-24s", p.Name)),
					StyleDim.Render(fmt.Sprintf("%-13s", string(p.DiagramType))),
					StyleDim.Render(p.UpdatedAt.Format("2006-01-02 15:04")),
				)
			}
			return nil
		},
	}
}

func newProjectShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored project and its diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			manager, err := openManager(c)
			if err != nil {
				return err
			}
			if err := manager.Load(c.Context(), args[0]); err != nil {
				return err
			}
			p, _ := manager.Active()

			printKeyValue("Name", p.Name)
			printKeyValue("Kind", string(p.DiagramType))
			printKeyValue("Created", p.CreatedAt.Format("2006-01-02 15:04"))
			printKeyValue("Updated", p.UpdatedAt.Format("2006-01-02 15:04"))
			printKeyValue("Messages", fmt.Sprintf("%d", len(p.Messages)))
			printStats(len(manager.Nodes()), len(manager.Edges()), false)
			printNewline()

			raw, err := diagram.Marshal(p.Diagram)
			if err != nil {
				return err
			}
			fmt.Println(string(raw))
			return nil
		},
	}
}

func newProjectRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a stored project",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			manager, err := openManager(c)
			if err != nil {
				return err
			}
			if err := manager.Load(c.Context(), args[0]); err != nil {
				return err
			}
			if err := manager.RenameActive(args[1]); err != nil {
				return err
			}
			if err := manager.Save(c.Context()); err != nil {
				return err
			}
			printSuccess("Renamed project to %s", StyleValue.Render(args[1]))
			return nil
		},
	}
}

func newProjectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored project",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			manager, err := openManager(c)
			if err != nil {
				return err
			}
			if err := manager.Delete(c.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted project %s", args[0])
			return nil
		},
	}
}

// openManager builds a manager and loads the project index from storage.
func openManager(c *cobra.Command) (*project.Manager, error) {
	ctx := c.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	manager, err := newManager(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := manager.RefreshIndex(ctx); err != nil {
		return nil, err
	}
	return manager, nil
}
