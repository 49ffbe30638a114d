// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/runoshun/idraft/internal/domain"
)

// MockKeyValueStore is a test double for domain.KeyValueStore.
// Fields are ordered to minimize memory padding.
type MockKeyValueStore struct {
	Values    map[string]string
	GetErr    error
	SetErr    error
	RemoveErr error
	SetCalls  int
	mu        sync.Mutex
}

// NewMockKeyValueStore creates a new MockKeyValueStore with an empty map.
func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{
		Values: make(map[string]string),
	}
}

// Ensure MockKeyValueStore implements domain.KeyValueStore interface.
var _ domain.KeyValueStore = (*MockKeyValueStore)(nil)

// Get returns the stored value.
func (m *MockKeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.Values[key]
	return v, ok, nil
}

// Set stores a value unless SetErr is configured.
func (m *MockKeyValueStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Values[key] = value
	return nil
}

// Remove deletes a value unless RemoveErr is configured.
func (m *MockKeyValueStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.Values, key)
	return nil
}

// MockDraftStore is a test double for domain.DraftStore.
// Fields are ordered to minimize memory padding.
type MockDraftStore struct {
	Drafts     []domain.Draft
	LoadErr    error
	SaveErr    error
	ClearErr   error
	SaveCalls  int
	Cleared    bool
	HasPersist bool // false until Save is called or Drafts is seeded via Seed
}

// NewMockDraftStore creates an empty MockDraftStore.
func NewMockDraftStore() *MockDraftStore {
	return &MockDraftStore{}
}

// Seed sets the persisted drafts.
func (m *MockDraftStore) Seed(drafts ...domain.Draft) *MockDraftStore {
	m.Drafts = append([]domain.Draft(nil), drafts...)
	m.HasPersist = true
	return m
}

// Ensure MockDraftStore implements domain.DraftStore interface.
var _ domain.DraftStore = (*MockDraftStore)(nil)

// Load returns a copy of the persisted drafts.
func (m *MockDraftStore) Load(_ context.Context) ([]domain.Draft, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if !m.HasPersist {
		return nil, nil
	}
	return append([]domain.Draft{}, m.Drafts...), nil
}

// Save records a copy of drafts.
func (m *MockDraftStore) Save(_ context.Context, drafts []domain.Draft) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Drafts = append([]domain.Draft{}, drafts...)
	m.HasPersist = true
	m.Cleared = false
	return nil
}

// Clear removes the persisted drafts.
func (m *MockDraftStore) Clear(_ context.Context) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Drafts = nil
	m.HasPersist = false
	m.Cleared = true
	return nil
}

// MockAuthorizer is a test double for domain.Authorizer.
// Results is handed to the caller; tests send outcomes into it.
// Fields are ordered to minimize memory padding.
type MockAuthorizer struct {
	Results  chan domain.AuthorizationResult
	Err      error
	Requests []domain.AuthorizationRequest
	mu       sync.Mutex
}

// NewMockAuthorizer creates a MockAuthorizer with a buffered result channel.
func NewMockAuthorizer() *MockAuthorizer {
	return &MockAuthorizer{
		Results: make(chan domain.AuthorizationResult, 4),
	}
}

// Ensure MockAuthorizer implements domain.Authorizer interface.
var _ domain.Authorizer = (*MockAuthorizer)(nil)

// Authorize records the request and returns the Results channel.
func (m *MockAuthorizer) Authorize(_ context.Context, req domain.AuthorizationRequest) (<-chan domain.AuthorizationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

// Succeed delivers a code.
func (m *MockAuthorizer) Succeed(code string) {
	m.Results <- domain.AuthorizationResult{Outcome: domain.AuthorizationSucceeded, Code: code}
}

// Cancel delivers a cancellation.
func (m *MockAuthorizer) Cancel() {
	m.Results <- domain.AuthorizationResult{Outcome: domain.AuthorizationCancelled}
}

// Fail delivers an error outcome.
func (m *MockAuthorizer) Fail(err error) {
	m.Results <- domain.AuthorizationResult{Outcome: domain.AuthorizationErrored, Err: err}
}

// RequestCount returns the number of Authorize calls.
func (m *MockAuthorizer) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// MockTokenExchanger is a test double for domain.TokenExchanger.
// When Gate is non-nil, Exchange blocks until it is closed, after signalling Started.
// Fields are ordered to minimize memory padding.
type MockTokenExchanger struct {
	Err      error
	Gate     chan struct{}
	Started  chan struct{}
	Token    string
	Requests []domain.TokenRequest
	mu       sync.Mutex
}

// NewMockTokenExchanger creates a MockTokenExchanger that returns token.
func NewMockTokenExchanger(token string) *MockTokenExchanger {
	return &MockTokenExchanger{Token: token}
}

// Ensure MockTokenExchanger implements domain.TokenExchanger interface.
var _ domain.TokenExchanger = (*MockTokenExchanger)(nil)

// Exchange records the request and returns the configured token or error.
func (m *MockTokenExchanger) Exchange(_ context.Context, req domain.TokenRequest) (string, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	gate, started := m.Gate, m.Started
	token, err := m.Token, m.Err
	m.mu.Unlock()

	if gate != nil {
		if started != nil {
			started <- struct{}{}
		}
		<-gate
	}
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", domain.ErrMissingAccessToken
	}
	return token, nil
}

// Calls returns the number of Exchange calls.
func (m *MockTokenExchanger) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// CreateCall records one CreateIssue invocation.
type CreateCall struct {
	Token string
	Repo  domain.RepoRef
	Req   domain.IssueRequest
}

// MockIssueTracker is a test double for domain.IssueTracker.
// Fields are ordered to minimize memory padding.
type MockIssueTracker struct {
	FailTitles map[string]error // Titles that fail with the mapped error
	UserErr    error
	OnCreate   func(call CreateCall) // Optional hook run inside CreateIssue
	User       string
	Calls      []CreateCall
	NextNumber int
	mu         sync.Mutex
}

// NewMockIssueTracker creates a MockIssueTracker whose issues start at #1.
func NewMockIssueTracker() *MockIssueTracker {
	return &MockIssueTracker{
		FailTitles: make(map[string]error),
		User:       "octocat",
		NextNumber: 1,
	}
}

// Ensure MockIssueTracker implements domain.IssueTracker interface.
var _ domain.IssueTracker = (*MockIssueTracker)(nil)

// CreateIssue records the call and fails for titles in FailTitles.
func (m *MockIssueTracker) CreateIssue(_ context.Context, token string, repo domain.RepoRef, req domain.IssueRequest) (*domain.Issue, error) {
	m.mu.Lock()
	call := CreateCall{Token: token, Repo: repo, Req: req}
	m.Calls = append(m.Calls, call)
	hook := m.OnCreate
	failErr, fail := m.FailTitles[req.Title]
	number := m.NextNumber
	if !fail {
		m.NextNumber++
	}
	m.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if fail {
		return nil, failErr
	}
	return &domain.Issue{
		Number: number,
		URL:    fmt.Sprintf("https://github.com/%s/issues/%d", repo, number),
	}, nil
}

// CurrentUser returns the configured login.
func (m *MockIssueTracker) CurrentUser(_ context.Context, _ string) (string, error) {
	if m.UserErr != nil {
		return "", m.UserErr
	}
	return m.User, nil
}

// Titles returns the titles of all CreateIssue calls in order.
func (m *MockIssueTracker) Titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	titles := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		titles[i] = c.Req.Title
	}
	return titles
}

// MockTokenSource is a test double for domain.TokenSource.
type MockTokenSource struct {
	Token string
}

// Ensure MockTokenSource implements domain.TokenSource interface.
var _ domain.TokenSource = (*MockTokenSource)(nil)

// CurrentToken returns Token when set.
func (m *MockTokenSource) CurrentToken() (string, bool) {
	return m.Token, m.Token != ""
}

// MockRemoteResolver is a test double for domain.RemoteResolver.
type MockRemoteResolver struct {
	Err  error
	Repo domain.RepoRef
}

// Ensure MockRemoteResolver implements domain.RemoteResolver interface.
var _ domain.RemoteResolver = (*MockRemoteResolver)(nil)

// OriginRepo returns the configured repository.
func (m *MockRemoteResolver) OriginRepo() (domain.RepoRef, error) {
	if m.Err != nil {
		return domain.RepoRef{}, m.Err
	}
	if m.Repo.IsZero() {
		return domain.RepoRef{}, domain.ErrNoRemote
	}
	return m.Repo, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config, or defaults.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config != nil {
		return m.Config, nil
	}
	return domain.NewDefaultConfig(), nil
}

// LoadGlobal behaves like Load.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	return m.Load()
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitProjectErr    error
	InitGlobalErr     error
	ProjectConfigInfo domain.ConfigInfo
	GlobalConfigInfo  domain.ConfigInfo
	InitProjectCalled bool
	InitGlobalCalled  bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		ProjectConfigInfo: domain.ConfigInfo{
			Path:   "/work/project/.idraft.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/idraft/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetProjectConfigInfo returns the configured project config info.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo {
	return m.ProjectConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitProjectConfig records the call and returns configured error.
func (m *MockConfigManager) InitProjectConfig() error {
	m.InitProjectCalled = true
	return m.InitProjectErr
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig() error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}

// LogEntry is one recorded log line.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(category, msg string) { m.record("debug", category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(category, msg string) { m.record("info", category, msg) }

// Warn records a warn entry.
func (m *MockLogger) Warn(category, msg string) { m.record("warn", category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(category, msg string) { m.record("error", category, msg) }

// Count returns the number of entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// ErrMock is a generic error for tests.
var ErrMock = errors.New("mock error")
