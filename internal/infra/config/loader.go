// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/idraft/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	projectDir    string // Directory holding .idraft.toml (usually the working directory)
	globalConfDir string // Path to global config directory (e.g., ~/.config/idraft)
}

// NewLoader creates a new Loader.
func NewLoader(projectDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(projectDir, globalConfDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Keys are applied in order default <- global <- project, so a key set in the
// project file wins even when it sets a zero value.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if l.globalConfDir != "" {
		if err := l.applyFile(cfg, filepath.Join(l.globalConfDir, domain.ConfigFileName)); err != nil {
			return nil, err
		}
	}
	if l.projectDir != "" {
		if err := l.applyFile(cfg, domain.ProjectConfigPath(l.projectDir)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// LoadGlobal returns the defaults with only the global file applied.
// Returns os.ErrNotExist when there is no global file.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	path := filepath.Join(l.globalConfDir, domain.ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	cfg := domain.NewDefaultConfig()
	if err := l.applyFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile applies the keys of one file to cfg. A missing file is skipped.
func (l *Loader) applyFile(cfg *domain.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	warnings := applyRaw(cfg, raw)
	for _, w := range warnings {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s: %s", path, w))
	}
	return nil
}

// applyRaw copies the known keys of raw onto cfg and returns warnings for
// unknown keys and mistyped values.
func applyRaw(cfg *domain.Config, raw map[string]any) []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warn("unknown section: %s", section)
			continue
		}

		switch section {
		case "oauth":
			for k, v := range m {
				var err error
				switch k {
				case "client_id":
					err = setString(&cfg.OAuth.ClientID, v)
				case "authorize_url":
					err = setString(&cfg.OAuth.AuthorizeURL, v)
				case "token_url":
					err = setString(&cfg.OAuth.TokenURL, v)
				case "scopes":
					err = setStrings(&cfg.OAuth.Scopes, v)
				case "redirect_host":
					err = setString(&cfg.OAuth.RedirectHost, v)
				case "redirect_port":
					err = setInt(&cfg.OAuth.RedirectPort, v)
				case "login_timeout":
					err = setDuration(&cfg.OAuth.LoginTimeout, v)
				case "client_secret":
					err = fmt.Errorf("not read from files; export %s", domain.ClientSecretEnv)
				default:
					warn("unknown key in [oauth]: %s", k)
				}
				if err != nil {
					warn("invalid value for [oauth] %s: %v", k, err)
				}
			}
		case "github":
			for k, v := range m {
				var err error
				switch k {
				case "api_url":
					err = setString(&cfg.GitHub.APIURL, v)
				case "owner":
					err = setString(&cfg.GitHub.Owner, v)
				case "repo":
					err = setString(&cfg.GitHub.Repo, v)
				case "timeout":
					err = setDuration(&cfg.GitHub.Timeout, v)
				case "max_retries":
					err = setInt(&cfg.GitHub.MaxRetries, v)
				default:
					warn("unknown key in [github]: %s", k)
				}
				if err != nil {
					warn("invalid value for [github] %s: %v", k, err)
				}
			}
		case "submit":
			for k, v := range m {
				switch k {
				case "keep_failed":
					if b, ok := v.(bool); ok {
						cfg.Submit.KeepFailed = b
					} else {
						warn("invalid value for [submit] %s: expected boolean", k)
					}
				default:
					warn("unknown key in [submit]: %s", k)
				}
			}
		case "store":
			for k, v := range m {
				var err error
				switch k {
				case "backend":
					err = setString(&cfg.Store.Backend, v)
				case "path":
					err = setString(&cfg.Store.Path, v)
				default:
					warn("unknown key in [store]: %s", k)
				}
				if err != nil {
					warn("invalid value for [store] %s: %v", k, err)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if err := setString(&cfg.Log.Level, v); err != nil {
						warn("invalid value for [log] %s: %v", k, err)
					}
				default:
					warn("unknown key in [log]: %s", k)
				}
			}
		default:
			warn("unknown section: %s", section)
		}
	}

	sort.Strings(warnings)
	return warnings
}

var errType = errors.New("wrong type")

func setString(dst *string, v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: expected string", errType)
	}
	*dst = s
	return nil
}

func setStrings(dst *[]string, v any) error {
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("%w: expected array of strings", errType)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return fmt.Errorf("%w: expected array of strings", errType)
		}
		out = append(out, s)
	}
	*dst = out
	return nil
}

func setInt(dst *int, v any) error {
	n, ok := v.(int64)
	if !ok {
		return fmt.Errorf("%w: expected integer", errType)
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	*dst = int(n)
	return nil
}

func setDuration(dst *domain.Duration, v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: expected duration string like \"30s\"", errType)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	if d < 0 {
		return errors.New("must not be negative")
	}
	dst.Duration = d
	return nil
}
