package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/idraft/internal/domain"
)

// RepoSource tells where a target repository came from.
type RepoSource string

// Repository sources, in precedence order.
const (
	RepoSourceFlag   RepoSource = "flag"
	RepoSourceConfig RepoSource = "config"
	RepoSourceOrigin RepoSource = "origin remote"
)

// ResolveRepoInput contains the parameters for resolving the target repository.
type ResolveRepoInput struct {
	Flag string // Value of --repo, if given
}

// ResolveRepoOutput contains the resolved repository.
type ResolveRepoOutput struct {
	Repo   domain.RepoRef
	Source RepoSource
}

// ResolveRepo picks the submission target: --repo, then [github] owner/repo,
// then the origin remote of the working directory.
type ResolveRepo struct {
	config *domain.Config
	remote domain.RemoteResolver
}

// NewResolveRepo creates a new ResolveRepo use case. remote may be nil.
func NewResolveRepo(config *domain.Config, remote domain.RemoteResolver) *ResolveRepo {
	return &ResolveRepo{
		config: config,
		remote: remote,
	}
}

// Execute resolves the repository.
func (uc *ResolveRepo) Execute(_ context.Context, in ResolveRepoInput) (*ResolveRepoOutput, error) {
	if in.Flag != "" {
		repo, err := domain.ParseRepoRef(in.Flag)
		if err != nil {
			return nil, fmt.Errorf("--repo %q: %w", in.Flag, err)
		}
		return &ResolveRepoOutput{Repo: repo, Source: RepoSourceFlag}, nil
	}

	if uc.config != nil {
		if repo := uc.config.DefaultRepo(); !repo.IsZero() {
			if err := repo.Validate(); err != nil {
				return nil, fmt.Errorf("[github] owner/repo: %w", err)
			}
			return &ResolveRepoOutput{Repo: repo, Source: RepoSourceConfig}, nil
		}
	}

	if uc.remote == nil {
		return nil, fmt.Errorf("%w: pass --repo or set [github] owner and repo", domain.ErrInvalidRepository)
	}
	repo, err := uc.remote.OriginRepo()
	if err != nil {
		return nil, fmt.Errorf("%w: pass --repo or set [github] owner and repo: %w", domain.ErrInvalidRepository, err)
	}
	return &ResolveRepoOutput{Repo: repo, Source: RepoSourceOrigin}, nil
}
