package cli

import (
	"errors"
	"fmt"

	"github.com/runoshun/idraft/internal/domain"
)

// Hint returns a suggestion for resolving err, or "" when there is none.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrMissingSecret):
		return fmt.Sprintf("Set the OAuth app's client secret: export %s=<secret>", domain.ClientSecretEnv)
	case errors.Is(err, domain.ErrNothingToSubmit):
		return "Queue a draft first: idraft add <title>"
	case errors.Is(err, domain.ErrInvalidRepository), errors.Is(err, domain.ErrNoRemote):
		return "Pass --repo owner/name, or set [github] owner and repo (idraft config init)"
	case errors.Is(err, domain.ErrInvalidIndex):
		return "Run 'idraft list' to see draft positions"
	case errors.Is(err, domain.ErrInvalidImport):
		return "Expected a YAML list of titles, or a mapping with a \"drafts\" list"
	case errors.Is(err, domain.ErrAuthCancelled):
		return "Run the command again and approve access in the browser"
	case errors.Is(err, domain.ErrAuth):
		return "Check [oauth] client_id and the client secret, then try again"
	case errors.Is(err, domain.ErrPersistence):
		return "Drafts could not be saved; check the store path in 'idraft config show'"
	case errors.Is(err, domain.ErrUnknownBackend):
		return "Set [store] backend to \"json\" or \"sqlite\""
	case errors.Is(err, domain.ErrConfigExists):
		return "Edit the existing file or remove it first"
	}
	return ""
}
