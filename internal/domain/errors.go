package domain

import (
	"errors"
	"fmt"
)

// Error classes. Every error produced by idraft wraps one of these so callers
// can classify failures with errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrAuth        = errors.New("authentication error")
	ErrTransport   = errors.New("transport error")
	ErrPersistence = errors.New("persistence error")
)

// Domain errors.
var (
	ErrEmptyTitle         = fmt.Errorf("%w: title must contain at least one non-whitespace character", ErrValidation)
	ErrInvalidRepository  = fmt.Errorf("%w: repository must be in owner/name form", ErrValidation)
	ErrInvalidIndex       = fmt.Errorf("%w: invalid draft index", ErrValidation)
	ErrInvalidImport      = fmt.Errorf("%w: expected a YAML list of titles or a drafts: list", ErrValidation)
	ErrAuthRequired       = fmt.Errorf("%w: authentication required", ErrAuth)
	ErrAuthFailed         = fmt.Errorf("%w: authentication failed", ErrAuth)
	ErrAuthCancelled      = fmt.Errorf("%w: login cancelled", ErrAuth)
	ErrMissingAccessToken = fmt.Errorf("%w: token response has no access_token", ErrAuth)
	ErrMissingSecret      = fmt.Errorf("%w: client secret not set (export %s)", ErrAuth, ClientSecretEnv)
	ErrNothingToSubmit    = errors.New("nothing to submit")
	ErrSubmitInProgress   = errors.New("submission already in progress")
	ErrNoRemote           = errors.New("no GitHub origin remote found")
	ErrConfigExists       = errors.New("config file already exists")
	ErrUnknownBackend     = errors.New("unknown store backend")
)
