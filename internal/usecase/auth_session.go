package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/runoshun/idraft/internal/domain"
)

// AuthSession holds the in-memory access token and drives the
// authorization-code flow. The token is never persisted.
//
// The authorizer reports on its own goroutine, so state is guarded by mu.
// The lock is never held across a network call.
// Fields are ordered to minimize memory padding.
type AuthSession struct {
	authorizer domain.Authorizer
	exchanger  domain.TokenExchanger
	logger     domain.Logger
	client     domain.OAuthClient
	token      string
	generation uint64 // bumped by Logout so in-flight exchanges are discarded
	mu         sync.Mutex
	state      domain.AuthState
	exchanging bool
}

// Ensure AuthSession implements domain.TokenSource.
var _ domain.TokenSource = (*AuthSession)(nil)

// NewAuthSession creates an unauthenticated session for client.
func NewAuthSession(
	client domain.OAuthClient,
	authorizer domain.Authorizer,
	exchanger domain.TokenExchanger,
	logger domain.Logger,
) *AuthSession {
	return &AuthSession{
		client:     client,
		authorizer: authorizer,
		exchanger:  exchanger,
		logger:     loggerOrNop(logger),
		state:      domain.AuthUnauthenticated,
	}
}

// BeginLogin starts the browser redirect and returns immediately.
// The returned channel yields exactly one value: nil once the session is
// authenticated, otherwise an error wrapping domain.ErrAuth.
func (s *AuthSession) BeginLogin(ctx context.Context) (<-chan error, error) {
	if s.client.ClientSecret == "" {
		return nil, domain.ErrMissingSecret
	}

	results, err := s.authorizer.Authorize(ctx, domain.AuthorizationRequest{
		ClientID: s.client.ClientID,
		Scopes:   append([]string(nil), s.client.Scopes...),
	})
	if err != nil {
		s.logger.Error("auth", fmt.Sprintf("start authorization failed: %v", err))
		return nil, fmt.Errorf("%w: start authorization: %w", domain.ErrAuthFailed, err)
	}
	s.logger.Info("auth", "authorization started")

	done := make(chan error, 1)
	go func() {
		done <- s.awaitAuthorization(ctx, results)
	}()
	return done, nil
}

// awaitAuthorization consumes the first result from the authorizer.
func (s *AuthSession) awaitAuthorization(ctx context.Context, results <-chan domain.AuthorizationResult) error {
	res, ok := <-results
	if !ok {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrAuthCancelled, err)
		}
		return domain.ErrAuthCancelled
	}

	switch res.Outcome {
	case domain.AuthorizationSucceeded:
		if err := s.OnAuthorizationCode(ctx, res.Code); err != nil {
			return err
		}
		if _, ok := s.CurrentToken(); !ok {
			return fmt.Errorf("%w: another code exchange is in progress", domain.ErrAuthFailed)
		}
		return nil
	case domain.AuthorizationCancelled:
		s.logger.Info("auth", "authorization cancelled by user")
		return domain.ErrAuthCancelled
	default:
		s.logger.Error("auth", fmt.Sprintf("authorization failed: %v", res.Err))
		if res.Err == nil {
			return domain.ErrAuthFailed
		}
		return fmt.Errorf("%w: %w", domain.ErrAuthFailed, res.Err)
	}
}

// OnAuthorizationCode consumes an authorization code at most once.
// The code is ignored (nil is returned) while a token is held or another
// exchange is in flight.
func (s *AuthSession) OnAuthorizationCode(ctx context.Context, code string) error {
	s.mu.Lock()
	if s.token != "" || s.exchanging {
		s.mu.Unlock()
		s.logger.Debug("auth", "authorization code ignored")
		return nil
	}
	gen := s.begin()
	s.mu.Unlock()

	return s.exchange(ctx, code, gen)
}

// ExchangeCodeForToken performs exactly one token request for code.
// On success the session becomes authenticated. Any failure, including a
// response without an access token, leaves it unauthenticated and returns
// an error wrapping domain.ErrAuthFailed. There is no retry.
func (s *AuthSession) ExchangeCodeForToken(ctx context.Context, code string) error {
	s.mu.Lock()
	gen := s.begin()
	s.mu.Unlock()

	return s.exchange(ctx, code, gen)
}

// begin marks an exchange as started. Callers must hold s.mu.
func (s *AuthSession) begin() uint64 {
	s.exchanging = true
	s.state = domain.AuthCodeReceived
	return s.generation
}

func (s *AuthSession) exchange(ctx context.Context, code string, gen uint64) error {
	token, err := s.exchanger.Exchange(ctx, domain.TokenRequest{
		ClientID:     s.client.ClientID,
		ClientSecret: s.client.ClientSecret,
		Code:         code,
	})
	if err == nil && token == "" {
		err = domain.ErrMissingAccessToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// Logged out while the request was in flight.
		s.logger.Debug("auth", "discarding token exchange result after logout")
		return domain.ErrAuthCancelled
	}
	s.exchanging = false

	if err != nil {
		s.token = ""
		s.state = domain.AuthUnauthenticated
		s.logger.Error("auth", fmt.Sprintf("token exchange failed: %v", err))
		if errors.Is(err, domain.ErrAuthFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
	}

	s.token = token
	s.state = domain.AuthAuthenticated
	s.logger.Info("auth", "authenticated")
	return nil
}

// Logout discards the token. Nothing is revoked remotely and drafts are untouched.
func (s *AuthSession) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.state = domain.AuthUnauthenticated
	s.exchanging = false
	s.generation++
	s.logger.Info("auth", "logged out")
}

// CurrentToken returns the token when authenticated.
func (s *AuthSession) CurrentToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.AuthAuthenticated {
		return "", false
	}
	return s.token, true
}

// State returns the current session state.
func (s *AuthSession) State() domain.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
