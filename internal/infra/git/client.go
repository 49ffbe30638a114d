// Package git reads repository metadata with go-git.
package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/runoshun/idraft/internal/domain"
)

// Ensure Client implements domain.RemoteResolver.
var _ domain.RemoteResolver = (*Client)(nil)

// DefaultRemote is the remote used to detect the target repository.
const DefaultRemote = "origin"

// Client resolves the GitHub repository of a working directory.
// The repository is opened on each call so a Client can be built for a
// directory that is not (yet) a git repository.
type Client struct {
	dir    string
	remote string
}

// NewClient creates a Client for dir. Parent directories are searched for .git.
func NewClient(dir string) *Client {
	return &Client{dir: dir, remote: DefaultRemote}
}

// OriginRepo returns the GitHub repository the origin remote points at.
// The first URL of the remote that parses as a GitHub URL wins.
func (c *Client) OriginRepo() (domain.RepoRef, error) {
	repo, err := git.PlainOpenWithOptions(c.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return domain.RepoRef{}, fmt.Errorf("%w: %s is not inside a git repository", domain.ErrNoRemote, c.dir)
		}
		return domain.RepoRef{}, fmt.Errorf("open repository: %w", err)
	}

	remote, err := repo.Remote(c.remote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return domain.RepoRef{}, fmt.Errorf("%w: remote %q not configured", domain.ErrNoRemote, c.remote)
		}
		return domain.RepoRef{}, fmt.Errorf("read remote %q: %w", c.remote, err)
	}

	for _, url := range remote.Config().URLs {
		ref, err := domain.ParseRemoteURL(url)
		if err == nil {
			return ref, nil
		}
	}
	return domain.RepoRef{}, fmt.Errorf("%w: remote %q does not point at github.com", domain.ErrNoRemote, c.remote)
}
