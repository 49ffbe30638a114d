package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runoshun/idraft/internal/domain"
)

func TestHint(t *testing.T) {
	tests := []struct {
		err  error
		want string
		name string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "missing secret", err: domain.ErrMissingSecret, want: domain.ClientSecretEnv},
		{name: "nothing to submit", err: domain.ErrNothingToSubmit, want: "idraft add"},
		{name: "no remote", err: fmt.Errorf("%w: %w", domain.ErrInvalidRepository, domain.ErrNoRemote), want: "--repo"},
		{name: "invalid index", err: domain.ErrInvalidIndex, want: "idraft list"},
		{name: "cancelled", err: domain.ErrAuthCancelled, want: "approve access"},
		{name: "auth failure", err: fmt.Errorf("%w: bad code", domain.ErrAuthFailed), want: "client_id"},
		{name: "persistence", err: fmt.Errorf("%w: save", domain.ErrPersistence), want: "config show"},
		{name: "unknown", err: errors.New("boom"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.want)
		})
	}
}
