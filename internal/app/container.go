// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/runoshun/idraft/internal/domain"
	"github.com/runoshun/idraft/internal/infra/config"
	"github.com/runoshun/idraft/internal/infra/draftstore"
	"github.com/runoshun/idraft/internal/infra/git"
	"github.com/runoshun/idraft/internal/infra/github"
	"github.com/runoshun/idraft/internal/infra/jsonstore"
	"github.com/runoshun/idraft/internal/infra/logging"
	"github.com/runoshun/idraft/internal/infra/oauth"
	"github.com/runoshun/idraft/internal/infra/sqlitestore"
	"github.com/runoshun/idraft/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	WorkDir   string // Directory the command runs in
	DataDir   string // Path to $XDG_DATA_HOME/idraft
	StorePath string // Path to the draft store file
	LogPath   string // Path to the log file
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Drafts        domain.DraftStore
	Authorizer    domain.Authorizer
	Exchanger     domain.TokenExchanger
	Issues        domain.IssueTracker
	Remote        domain.RemoteResolver
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// OnAuthURL receives the authorize URL when a login starts.
	OnAuthURL func(url string)

	// State shared by the use cases
	Queue   *usecase.DraftQueue
	Session *usecase.AuthSession
	submit  *usecase.SubmitAll

	// Pointer fields
	AppConfig *domain.Config
	closers   []io.Closer

	// Configuration
	Config Config
}

// New creates a new Container for the working directory dir.
// The draft queue is loaded before New returns.
func New(dir string) (*Container, error) {
	configLoader := config.NewLoader(dir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dataDir := defaultDataDir()
	backend := appConfig.Store.Backend
	storePath := appConfig.Store.Path
	if storePath == "" {
		storePath = domain.StorePath(dataDir, backend)
	}
	cfg := Config{
		WorkDir:   dir,
		DataDir:   dataDir,
		StorePath: storePath,
	}

	logger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))
	cfg.LogPath = logger.Path()
	closers := []io.Closer{logger}

	var kv domain.KeyValueStore
	switch backend {
	case domain.StoreBackendJSON, "":
		kv = jsonstore.New(storePath)
	case domain.StoreBackendSQLite:
		store, err := sqlitestore.Open(storePath)
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
		kv = store
		closers = append(closers, store)
	default:
		_ = logger.Close()
		return nil, fmt.Errorf("%w: %q (use %q or %q)",
			domain.ErrUnknownBackend, backend, domain.StoreBackendJSON, domain.StoreBackendSQLite)
	}

	issues, err := github.NewIssueClient(github.IssueClientOptions{
		Logger:     logger,
		APIURL:     appConfig.GitHub.APIURL,
		Timeout:    appConfig.GitHub.Timeout.Duration,
		MaxRetries: appConfig.GitHub.MaxRetries,
	})
	if err != nil {
		_ = closeAll(closers)
		return nil, err
	}

	c := &Container{}
	authorizer := oauth.NewLoopback(oauth.LoopbackOptions{
		Logger:       logger,
		AuthorizeURL: appConfig.OAuth.AuthorizeURL,
		Host:         appConfig.OAuth.RedirectHost,
		Port:         appConfig.OAuth.RedirectPort,
		OnAuthURL: func(url string) {
			if c.OnAuthURL != nil {
				c.OnAuthURL(url)
			}
		},
	})

	c.init(Deps{
		Config:        appConfig,
		Drafts:        draftstore.New(kv),
		Authorizer:    authorizer,
		Exchanger:     github.NewTokenExchanger(appConfig.OAuth.TokenURL, appConfig.GitHub.Timeout.Duration),
		Issues:        issues,
		Remote:        git.NewClient(dir),
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dir),
		Logger:        logger,
		ClientSecret:  os.Getenv(domain.ClientSecretEnv),
	})
	c.Config = cfg
	c.closers = closers

	for _, w := range appConfig.Warnings {
		logger.Warn("config", w)
	}
	return c, nil
}

// Deps holds the dependencies for NewWithDeps.
type Deps struct {
	Config        *domain.Config
	Drafts        domain.DraftStore
	Authorizer    domain.Authorizer
	Exchanger     domain.TokenExchanger
	Issues        domain.IssueTracker
	Remote        domain.RemoteResolver
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger
	ClientSecret  string
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, deps Deps) *Container {
	c := &Container{Config: cfg}
	c.init(deps)
	return c
}

func (c *Container) init(deps Deps) {
	appConfig := deps.Config
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}

	c.AppConfig = appConfig
	c.Drafts = deps.Drafts
	c.Authorizer = deps.Authorizer
	c.Exchanger = deps.Exchanger
	c.Issues = deps.Issues
	c.Remote = deps.Remote
	c.ConfigLoader = deps.ConfigLoader
	c.ConfigManager = deps.ConfigManager
	c.Logger = deps.Logger

	c.Queue = usecase.NewDraftQueue(c.Drafts, c.Logger)
	c.Queue.Load(context.Background())
	c.Session = usecase.NewAuthSession(appConfig.OAuthClient(deps.ClientSecret), c.Authorizer, c.Exchanger, c.Logger)
	c.submit = usecase.NewSubmitAll(c.Queue, c.Session, c.Issues, c.Logger, appConfig.Submit.KeepFailed)
}

// defaultDataDir returns $XDG_DATA_HOME/idraft, falling back to ~/.local/share/idraft.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return domain.DataDir(dataHome)
}

// Close releases the store and the log file.
func (c *Container) Close() error {
	err := closeAll(c.closers)
	c.closers = nil
	return err
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// UseCase factory methods

// AddDraftUseCase returns a new AddDraft use case.
func (c *Container) AddDraftUseCase() *usecase.AddDraft {
	return usecase.NewAddDraft(c.Queue)
}

// ListDraftsUseCase returns a new ListDrafts use case.
func (c *Container) ListDraftsUseCase() *usecase.ListDrafts {
	return usecase.NewListDrafts(c.Queue)
}

// RemoveDraftUseCase returns a new RemoveDraft use case.
func (c *Container) RemoveDraftUseCase() *usecase.RemoveDraft {
	return usecase.NewRemoveDraft(c.Queue)
}

// ClearDraftsUseCase returns a new ClearDrafts use case.
func (c *Container) ClearDraftsUseCase() *usecase.ClearDrafts {
	return usecase.NewClearDrafts(c.Queue)
}

// ImportDraftsUseCase returns a new ImportDrafts use case.
func (c *Container) ImportDraftsUseCase() *usecase.ImportDrafts {
	return usecase.NewImportDrafts(c.Queue)
}

// LoginUseCase returns a new Login use case.
func (c *Container) LoginUseCase() *usecase.Login {
	return usecase.NewLogin(c.Session, c.Issues)
}

// SubmitAllUseCase returns the container's single SubmitAll use case.
// Every caller shares its in-progress guard.
func (c *Container) SubmitAllUseCase() *usecase.SubmitAll {
	return c.submit
}

// ResolveRepoUseCase returns a new ResolveRepo use case.
func (c *Container) ResolveRepoUseCase() *usecase.ResolveRepo {
	return usecase.NewResolveRepo(c.AppConfig, c.Remote)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
