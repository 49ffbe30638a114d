package usecase_test

import (
	"context"
	"testing"

	"github.com/runoshun/idraft/internal/domain"
	"github.com/runoshun/idraft/internal/testutil"
	"github.com/runoshun/idraft/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRepo_Execute(t *testing.T) {
	configured := domain.NewDefaultConfig()
	configured.GitHub.Owner = "config-owner"
	configured.GitHub.Repo = "config-repo"

	origin := &testutil.MockRemoteResolver{Repo: domain.RepoRef{Owner: "origin-owner", Name: "origin-repo"}}

	tests := []struct {
		config     *domain.Config
		remote     domain.RemoteResolver
		name       string
		flag       string
		wantRepo   string
		wantSource usecase.RepoSource
	}{
		{
			name:       "flag wins",
			flag:       "flag-owner/flag-repo",
			config:     configured,
			remote:     origin,
			wantRepo:   "flag-owner/flag-repo",
			wantSource: usecase.RepoSourceFlag,
		},
		{
			name:       "config before origin",
			config:     configured,
			remote:     origin,
			wantRepo:   "config-owner/config-repo",
			wantSource: usecase.RepoSourceConfig,
		},
		{
			name:       "origin remote",
			config:     domain.NewDefaultConfig(),
			remote:     origin,
			wantRepo:   "origin-owner/origin-repo",
			wantSource: usecase.RepoSourceOrigin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := usecase.NewResolveRepo(tt.config, tt.remote).Execute(context.Background(), usecase.ResolveRepoInput{Flag: tt.flag})

			require.NoError(t, err)
			assert.Equal(t, tt.wantRepo, out.Repo.String())
			assert.Equal(t, tt.wantSource, out.Source)
		})
	}
}

func TestResolveRepo_Errors(t *testing.T) {
	t.Run("malformed flag", func(t *testing.T) {
		_, err := usecase.NewResolveRepo(nil, nil).Execute(context.Background(), usecase.ResolveRepoInput{Flag: "nope"})

		assert.ErrorIs(t, err, domain.ErrInvalidRepository)
	})

	t.Run("no source", func(t *testing.T) {
		_, err := usecase.NewResolveRepo(domain.NewDefaultConfig(), &testutil.MockRemoteResolver{}).Execute(context.Background(), usecase.ResolveRepoInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidRepository)
		assert.ErrorIs(t, err, domain.ErrNoRemote)
	})

	t.Run("no resolver", func(t *testing.T) {
		_, err := usecase.NewResolveRepo(domain.NewDefaultConfig(), nil).Execute(context.Background(), usecase.ResolveRepoInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidRepository)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := domain.NewDefaultConfig()
		cfg.GitHub.Owner = "bad owner"
		cfg.GitHub.Repo = "repo"

		_, err := usecase.NewResolveRepo(cfg, nil).Execute(context.Background(), usecase.ResolveRepoInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidRepository)
	})
}
