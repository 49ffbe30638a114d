package domain

import (
	"regexp"
	"strings"
)

// RepoRef identifies the repository issues are created in.
// It is submission-time configuration and is never stored with drafts.
type RepoRef struct {
	Owner string
	Name  string
}

// String returns the "owner/name" form.
func (r RepoRef) String() string {
	if r.Owner == "" && r.Name == "" {
		return ""
	}
	return r.Owner + "/" + r.Name
}

// IsZero reports whether neither owner nor name is set.
func (r RepoRef) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}

// repoPartPattern matches GitHub owner and repository names.
var repoPartPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Validate checks both parts are non-empty GitHub-style names.
func (r RepoRef) Validate() error {
	if !repoPartPattern.MatchString(r.Owner) || !repoPartPattern.MatchString(r.Name) {
		return ErrInvalidRepository
	}
	if r.Name == "." || r.Name == ".." {
		return ErrInvalidRepository
	}
	return nil
}

// ParseRepoRef parses "owner/name".
func ParseRepoRef(s string) (RepoRef, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return RepoRef{}, ErrInvalidRepository
	}
	ref := RepoRef{Owner: owner, Name: strings.TrimSuffix(name, ".git")}
	if err := ref.Validate(); err != nil {
		return RepoRef{}, err
	}
	return ref, nil
}

// remotePatterns match GitHub remote URLs in HTTPS, SSH and scp-like forms.
var remotePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(?:[^@/]+@)?github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`),
	regexp.MustCompile(`^ssh://git@github\.com(?::\d+)?/([^/]+)/([^/]+?)(?:\.git)?/?$`),
	regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`),
}

// ParseRemoteURL extracts the repository from a GitHub remote URL.
// Returns ErrNoRemote for URLs that do not point at github.com.
func ParseRemoteURL(url string) (RepoRef, error) {
	url = strings.TrimSpace(url)
	for _, p := range remotePatterns {
		m := p.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		ref := RepoRef{Owner: m[1], Name: m[2]}
		if err := ref.Validate(); err != nil {
			return RepoRef{}, err
		}
		return ref, nil
	}
	return RepoRef{}, ErrNoRemote
}
