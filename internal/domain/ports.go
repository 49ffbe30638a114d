package domain

import "context"

// KeyValueStore is the device's persistent key-value capability.
type KeyValueStore interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// DraftStore persists the ordered draft list under a fixed key.
type DraftStore interface {
	// Load returns the persisted drafts. Returns nil, nil when nothing is stored.
	Load(ctx context.Context) ([]Draft, error)

	// Save replaces the persisted list with drafts.
	Save(ctx context.Context, drafts []Draft) error

	// Clear removes the persisted list entirely.
	Clear(ctx context.Context) error
}

// Authorizer is the browser-redirect half of the authorization-code flow.
// Authorize returns immediately; results are delivered on the channel, which
// is closed when the authorizer stops listening.
type Authorizer interface {
	Authorize(ctx context.Context, req AuthorizationRequest) (<-chan AuthorizationResult, error)
}

// TokenExchanger exchanges an authorization code for an access token.
type TokenExchanger interface {
	// Exchange issues exactly one request and returns the access token.
	Exchange(ctx context.Context, req TokenRequest) (string, error)
}

// IssueTracker provides the remote issue tracker operations.
type IssueTracker interface {
	// CreateIssue creates one issue in repo.
	CreateIssue(ctx context.Context, token string, repo RepoRef, req IssueRequest) (*Issue, error)

	// CurrentUser returns the login of the token's owner.
	CurrentUser(ctx context.Context, token string) (string, error)
}

// TokenSource provides the current access token.
type TokenSource interface {
	CurrentToken() (string, bool)
}

// RemoteResolver detects the repository of the working directory.
type RemoteResolver interface {
	// OriginRepo returns the GitHub repository of the origin remote.
	OriginRepo() (RepoRef, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults + global + project).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigInfo describes a configuration file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	GetGlobalConfigInfo() ConfigInfo
	GetProjectConfigInfo() ConfigInfo
	InitGlobalConfig() error
	InitProjectConfig() error
}

// Logger writes operational logs.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}
