package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/idraft/internal/app"
	"github.com/runoshun/idraft/internal/domain"
	"github.com/runoshun/idraft/internal/tui"
	"github.com/runoshun/idraft/internal/usecase"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// This is the same screen as running `idraft` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long: `Launch the interactive drafting screen.

Keys:
  a  queue a draft        d  delete the selected draft
  l  sign in              o  sign out
  s  submit every draft   q  quit

The target repository is resolved the same way as 'idraft submit'.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
	return cmd
}

// launchTUI runs the drafting screen until the user quits.
func launchTUI(c *app.Container) error {
	// A missing target only disables submitting; drafting still works.
	var repo domain.RepoRef
	if out, err := c.ResolveRepoUseCase().Execute(context.Background(), usecase.ResolveRepoInput{}); err == nil {
		repo = out.Repo
	}

	p := tea.NewProgram(tui.New(c, repo), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
