package domain

import (
	_ "embed"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// ConfigTemplate returns the commented template written by "config init".
func ConfigTemplate() string {
	return configTemplateContent
}

// Configuration defaults.
const (
	DefaultClientID      = "Ov23li7qATNiA4Kef3nv"
	DefaultAuthorizeURL  = "https://github.com/login/oauth/authorize"
	DefaultTokenURL      = "https://github.com/login/oauth/access_token"
	DefaultAPIURL        = "https://api.github.com/"
	DefaultRedirectHost  = "127.0.0.1"
	DefaultLoginTimeout  = 5 * time.Minute
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultMaxRetries    = 3
	DefaultLogLevel      = "info"
	StoreBackendJSON     = "json"
	StoreBackendSQLite   = "sqlite"
	DefaultStoreBackend  = StoreBackendJSON
	ClientSecretEnv      = "IDRAFT_CLIENT_SECRET"
	DefaultRedirectPort  = 0
	DefaultCallbackRoute = "/callback"
)

// DefaultScopes are the scopes requested at login.
var DefaultScopes = []string{"repo", "user"}

// Duration is a time.Duration that reads and writes as a string ("30s").
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	OAuth    OAuthConfig  `toml:"oauth"`
	GitHub   GitHubConfig `toml:"github"`
	Store    StoreConfig  `toml:"store"`
	Log      LogConfig    `toml:"log"`
	Submit   SubmitConfig `toml:"submit"`
}

// OAuthConfig holds the [oauth] section.
type OAuthConfig struct {
	ClientID     string   `toml:"client_id"`
	AuthorizeURL string   `toml:"authorize_url"`
	TokenURL     string   `toml:"token_url"`
	RedirectHost string   `toml:"redirect_host"`
	Scopes       []string `toml:"scopes"`
	LoginTimeout Duration `toml:"login_timeout"`
	RedirectPort int      `toml:"redirect_port"` // 0 picks a free port
}

// GitHubConfig holds the [github] section.
type GitHubConfig struct {
	APIURL     string   `toml:"api_url"`
	Owner      string   `toml:"owner,omitempty"` // Default target owner
	Repo       string   `toml:"repo,omitempty"`  // Default target repository name
	Timeout    Duration `toml:"timeout"`
	MaxRetries int      `toml:"max_retries"` // Retries for rate-limited issue requests
}

// SubmitConfig holds the [submit] section.
type SubmitConfig struct {
	KeepFailed bool `toml:"keep_failed"` // Keep failed drafts queued instead of clearing them
}

// StoreConfig holds the [store] section.
type StoreConfig struct {
	Backend string `toml:"backend"`        // "json" (default) or "sqlite"
	Path    string `toml:"path,omitempty"` // Override for the store file
}

// LogConfig holds the [log] section.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// NewDefaultConfig returns a config with every default applied.
func NewDefaultConfig() *Config {
	return &Config{
		OAuth: OAuthConfig{
			ClientID:     DefaultClientID,
			AuthorizeURL: DefaultAuthorizeURL,
			TokenURL:     DefaultTokenURL,
			RedirectHost: DefaultRedirectHost,
			RedirectPort: DefaultRedirectPort,
			Scopes:       append([]string(nil), DefaultScopes...),
			LoginTimeout: Duration{DefaultLoginTimeout},
		},
		GitHub: GitHubConfig{
			APIURL:     DefaultAPIURL,
			Timeout:    Duration{DefaultHTTPTimeout},
			MaxRetries: DefaultMaxRetries,
		},
		Store: StoreConfig{Backend: DefaultStoreBackend},
		Log:   LogConfig{Level: DefaultLogLevel},
	}
}

// DefaultRepo returns the [github] owner/repo pair, or the zero value.
func (c *Config) DefaultRepo() RepoRef {
	if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
		return RepoRef{}
	}
	return RepoRef{Owner: c.GitHub.Owner, Name: c.GitHub.Repo}
}

// OAuthClient builds the client credentials with the given secret.
func (c *Config) OAuthClient(secret string) OAuthClient {
	return OAuthClient{
		ClientID:     c.OAuth.ClientID,
		ClientSecret: secret,
		Scopes:       append([]string(nil), c.OAuth.Scopes...),
	}
}
