// Package cli provides the command-line interface for idraft.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/idraft/internal/app"
)

// Command group IDs.
const (
	groupDrafts = "drafts"
	groupGitHub = "github"
	groupSetup  = "setup"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for idraft.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "idraft",
		Short: "Queue GitHub issue drafts and submit them in one batch",
		Long: `idraft keeps a local queue of issue titles and creates them as GitHub
issues in a single batch.

Drafts are stored on this machine, most recent first. Submitting signs in
through the browser (OAuth authorization code flow), creates one issue per
draft and then clears the queue. The access token is held in memory only.

Run without arguments to open the interactive drafting screen.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupDrafts, Title: "Draft Queue:"},
		&cobra.Group{ID: groupGitHub, Title: "GitHub:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Draft queue commands
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupDrafts

	listCmd := newListCommand(c)
	listCmd.GroupID = groupDrafts

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupDrafts

	clearCmd := newClearCommand(c)
	clearCmd.GroupID = groupDrafts

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupDrafts

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupDrafts

	// GitHub commands
	loginCmd := newLoginCommand(c)
	loginCmd.GroupID = groupGitHub

	submitCmd := newSubmitCommand(c)
	submitCmd.GroupID = groupGitHub

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	// Add subcommands
	root.AddCommand(
		addCmd,
		listCmd,
		rmCmd,
		clearCmd,
		importCmd,
		tuiCmd,
		loginCmd,
		submitCmd,
		configCmd,
	)

	return root
}
