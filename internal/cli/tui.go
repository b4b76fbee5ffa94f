package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/diaflow/pkg/project"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// projectListModel - Interactive project selection
// =============================================================================

// projectListModel is the bubbletea model for interactive project selection.
type projectListModel struct {
	projects []project.Project
	cursor   int
	selected *project.Project
	height   int
	offset   int
}

func newProjectListModel(projects []project.Project) projectListModel {
	return projectListModel{
		projects: projects,
		height:   15,
	}
}

func (m projectListModel) Init() tea.Cmd {
	return nil
}

func (m projectListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.projects)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			p := m.projects[m.cursor]
			m.selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m projectListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Project"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.projects) {
		end = len(m.projects)
	}

	for i := m.offset; i < end; i++ {
		p := m.projects[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := fmt.Sprintf("%s%s  %s  %s",
			cursor,
			style.Render(fmt.Sprintf("%-24s", p.Name)),
			listDimStyle.Render(fmt.Sprintf("%-13s", string(p.DiagramType))),
			listDimStyle.Render(p.UpdatedAt.Format("2006-01-02 15:04")),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// newProjectPickCmd creates the interactive picker. It lists stored projects,
// lets the user select one with the keyboard, and prints its diagram.
func newProjectPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Interactively pick a project and show it",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			manager, err := openManager(c)
			if err != nil {
				return err
			}
			projects := manager.Projects()
			if len(projects) == 0 {
				printInfo("No projects yet")
				return nil
			}

			final, err := tea.NewProgram(newProjectListModel(projects)).Run()
			if err != nil {
				return fmt.Errorf("run picker: %w", err)
			}
			m, ok := final.(projectListModel)
			if !ok || m.selected == nil {
				return nil
			}
			return newProjectShowCmd().RunE(c, []string{m.selected.ID})
		},
	}
}
