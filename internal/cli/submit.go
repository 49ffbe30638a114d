package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runoshun/idraft/internal/app"
	"github.com/runoshun/idraft/internal/domain"
	"github.com/runoshun/idraft/internal/usecase"
)

// newLoginCommand creates the login command.
func newLoginCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to GitHub through the browser",
		Long: `Sign in to GitHub through the browser and print the signed-in user.

The OAuth client secret is read from the IDRAFT_CLIENT_SECRET environment
variable. The access token lives only in memory and is discarded when the
command exits; 'idraft submit' and the TUI sign in for their own session.
Use this command to check that the OAuth setup works.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := runLogin(cmd, c, true)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", out.User)
			return nil
		},
	}

	return cmd
}

// runLogin signs the session in, printing the authorize URL to stderr.
func runLogin(cmd *cobra.Command, c *app.Container, whoAmI bool) (*usecase.LoginOutput, error) {
	c.OnAuthURL = func(url string) {
		printAuthURL(cmd.ErrOrStderr(), url)
	}
	defer func() { c.OnAuthURL = nil }()

	uc := c.LoginUseCase()
	return uc.Execute(cmd.Context(), usecase.LoginInput{
		Timeout: c.AppConfig.OAuth.LoginTimeout.Duration,
		WhoAmI:  whoAmI,
	})
}

func printAuthURL(w io.Writer, url string) {
	_, _ = fmt.Fprintf(w, "Opening the browser to authorize idraft. If it does not open, visit:\n  %s\n", url)
}

// newSubmitCommand creates the submit command.
func newSubmitCommand(c *app.Container) *cobra.Command {
	var repoFlag string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Create one GitHub issue per queued draft",
		Long: `Create one GitHub issue per queued draft, most recent first, then clear
the queue.

Requests are sent one at a time. A failed draft does not stop the batch.
After the batch the queue is cleared, including failed drafts, unless
[submit] keep_failed is set, in which case failed drafts stay queued.

The target repository is, in order:
  1. --repo owner/name
  2. [github] owner and repo in the configuration
  3. the origin remote of the current git repository

Signs in through the browser first (see 'idraft login').

Examples:
  idraft submit
  idraft submit --repo octocat/hello-world`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := c.ResolveRepoUseCase().Execute(cmd.Context(), usecase.ResolveRepoInput{
				Flag: repoFlag,
			})
			if err != nil {
				return err
			}

			// Nothing to do; skip the browser round trip.
			if c.Queue.Len() == 0 {
				return domain.ErrNothingToSubmit
			}

			if _, ok := c.Session.CurrentToken(); !ok {
				if _, err := runLogin(cmd, c, false); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Submitting %d %s to %s (from %s)\n",
				c.Queue.Len(), plural(c.Queue.Len(), "draft", "drafts"), resolved.Repo, resolved.Source)

			uc := c.SubmitAllUseCase()
			result, err := uc.Execute(cmd.Context(), usecase.SubmitAllInput{Repo: resolved.Repo})
			if result == nil {
				return err
			}

			printBatchResult(w, result)
			if err != nil {
				return err
			}
			if result.Failed() > 0 {
				return fmt.Errorf("%d of %d drafts failed", result.Failed(), result.Attempted)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&repoFlag, "repo", "R", "", "Target repository (owner/name)")

	return cmd
}

// printBatchResult writes one line per item and a summary.
func printBatchResult(w io.Writer, result *domain.BatchResult) {
	for _, item := range result.Items {
		if item.OK() {
			_, _ = fmt.Fprintf(w, "  created #%d %s\n", item.Issue.Number, item.Issue.URL)
			continue
		}
		_, _ = fmt.Fprintf(w, "  failed  %q: %v\n", item.Title, item.Err)
	}

	_, _ = fmt.Fprintf(w, "%d created, %d failed\n", result.Succeeded, result.Failed())
	switch {
	case result.Cleared:
		_, _ = fmt.Fprintln(w, "Queue cleared.")
	case result.Failed() > 0:
		_, _ = fmt.Fprintf(w, "%d failed %s kept in the queue.\n",
			result.Failed(), plural(result.Failed(), "draft", "drafts"))
	}
}
