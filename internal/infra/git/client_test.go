package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/runoshun/idraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupGitRepo creates a temporary repository with the given remotes.
func setupGitRepo(t *testing.T, remotes map[string][]string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	for name, urls := range remotes {
		_, err := repo.CreateRemote(&gitconfig.RemoteConfig{Name: name, URLs: urls})
		require.NoError(t, err)
	}
	return dir
}

func TestClient_OriginRepo(t *testing.T) {
	tests := []struct {
		name string
		urls []string
	}{
		{"https", []string{"https://github.com/octocat/hello-world.git"}},
		{"ssh", []string{"git@github.com:octocat/hello-world.git"}},
		{"first github url wins", []string{"https://example.com/mirror.git", "https://github.com/octocat/hello-world"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupGitRepo(t, map[string][]string{"origin": tt.urls})

			got, err := NewClient(dir).OriginRepo()

			require.NoError(t, err)
			assert.Equal(t, domain.RepoRef{Owner: "octocat", Name: "hello-world"}, got)
		})
	}
}

func TestClient_OriginRepo_FromSubdirectory(t *testing.T) {
	dir := setupGitRepo(t, map[string][]string{"origin": {"https://github.com/octocat/hello-world.git"}})
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	got, err := NewClient(sub).OriginRepo()

	require.NoError(t, err)
	assert.Equal(t, "octocat/hello-world", got.String())
}

func TestClient_OriginRepo_Errors(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		_, err := NewClient(t.TempDir()).OriginRepo()

		assert.ErrorIs(t, err, domain.ErrNoRemote)
	})

	t.Run("no origin", func(t *testing.T) {
		dir := setupGitRepo(t, map[string][]string{"upstream": {"https://github.com/octocat/hello-world.git"}})

		_, err := NewClient(dir).OriginRepo()

		assert.ErrorIs(t, err, domain.ErrNoRemote)
		assert.Contains(t, err.Error(), `"origin"`)
	})

	t.Run("origin not on github", func(t *testing.T) {
		dir := setupGitRepo(t, map[string][]string{"origin": {"https://gitlab.com/octocat/hello-world.git"}})

		_, err := NewClient(dir).OriginRepo()

		assert.ErrorIs(t, err, domain.ErrNoRemote)
	})
}
