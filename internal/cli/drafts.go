package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/idraft/internal/app"
	"github.com/runoshun/idraft/internal/domain"
	"github.com/runoshun/idraft/internal/usecase"
)

// Output formats for list.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// newAddCommand creates the add command for queueing a draft.
func newAddCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>...",
		Short: "Queue a new issue draft",
		Long: `Queue a new issue draft.

Arguments are joined with single spaces to form the title. The title is
stored exactly as given and the new draft goes to the top of the queue.
A title made only of whitespace is rejected.

Examples:
  # Queue a draft
  idraft add "Login button does nothing on Safari"

  # Quotes are optional
  idraft add Crash when saving an empty profile`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.AddDraftUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.AddDraftInput{
				Title: strings.Join(args, " "),
			})
			if out == nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Queued draft (%d in queue)\n", len(out.Drafts))
			return err
		},
	}

	return cmd
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List queued drafts",
		Long: `List queued drafts, most recent first.

The number in the first column is the position used by 'idraft rm'.

Examples:
  idraft list
  idraft list -o json
  idraft list -o yaml > drafts.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ListDraftsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListDraftsInput{})
			if err != nil {
				return err
			}
			return printDrafts(cmd.OutOrStdout(), out.Drafts, format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "Output format: text, json or yaml")

	return cmd
}

// printDrafts writes drafts in the requested format.
func printDrafts(w io.Writer, drafts []domain.Draft, format string) error {
	titles := domain.DraftStrings(drafts)

	switch format {
	case formatText, "":
		if len(titles) == 0 {
			_, _ = fmt.Fprintln(w, "No drafts.")
			return nil
		}
		for i, title := range titles {
			_, _ = fmt.Fprintf(w, "%d\t%s\n", i+1, title)
		}
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(titles)
	case formatYAML:
		// Matches the file format read by 'idraft import'.
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string][]string{"drafts": titles}); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (use text, json or yaml)", format)
	}
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <n>",
		Short: "Delete a queued draft",
		Long: `Delete the draft at position n, as shown by 'idraft list'.

Positions start at 1 for the most recent draft.

Examples:
  # Delete the most recent draft
  idraft rm 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidIndex, args[0])
			}

			uc := c.RemoveDraftUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.RemoveDraftInput{
				Index: n - 1,
			})
			if out == nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed draft %d: %s\n", n, out.Removed)
			return err
		},
	}

	return cmd
}

// newClearCommand creates the clear command.
func newClearCommand(c *app.Container) *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every queued draft",
		Long: `Delete every queued draft.

By default an empty list is written to the store. With --purge the stored
entry is removed entirely.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ClearDraftsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ClearDraftsInput{Purge: purge})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d %s\n", out.Removed, plural(out.Removed, "draft", "drafts"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Remove the stored entry instead of saving an empty list")

	return cmd
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Queue drafts from a YAML file",
		Long: `Queue drafts from a YAML file. Use "-" to read standard input.

The file is either a list of titles or a mapping with a "drafts" list.
Entries are queued in file order, so the last entry ends up on top.
Entries that are not plain strings or are blank are skipped and reported.

File format:
  drafts:
    - Login button does nothing on Safari
    - Crash when saving an empty profile

Examples:
  idraft import drafts.yaml
  idraft list -o yaml | idraft import -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			uc := c.ImportDraftsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ImportDraftsInput{Content: content})
			if out == nil {
				return err
			}

			for _, s := range out.Skipped {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Skipped line %d (%q): %v\n", s.Line, s.Value, s.Err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s (%d in queue)\n",
				len(out.Added), plural(len(out.Added), "draft", "drafts"), len(out.Drafts))
			return err
		},
	}

	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
