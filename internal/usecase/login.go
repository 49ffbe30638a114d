package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/idraft/internal/domain"
)

// LoginInput contains the parameters for logging in.
type LoginInput struct {
	Timeout time.Duration // Upper bound on the browser round trip (0 = none)
	WhoAmI  bool          // Look up the authenticated user afterwards
}

// LoginOutput contains the result of logging in.
type LoginOutput struct {
	User    string // Login of the token owner (when WhoAmI is set)
	Reused  bool   // The session was already authenticated
	Elapsed time.Duration
}

// Login runs the authorization-code flow and waits for its outcome.
type Login struct {
	session *AuthSession
	issues  domain.IssueTracker
	now     func() time.Time
}

// NewLogin creates a new Login use case.
func NewLogin(session *AuthSession, issues domain.IssueTracker) *Login {
	return &Login{
		session: session,
		issues:  issues,
		now:     time.Now,
	}
}

// Execute authenticates the session unless it already holds a token.
func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	start := uc.now()
	out := &LoginOutput{}

	if _, ok := uc.session.CurrentToken(); ok {
		out.Reused = true
	} else {
		if err := uc.login(ctx, in.Timeout); err != nil {
			return nil, err
		}
	}

	if in.WhoAmI {
		token, _ := uc.session.CurrentToken()
		user, err := uc.issues.CurrentUser(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("look up user: %w", err)
		}
		out.User = user
	}

	out.Elapsed = uc.now().Sub(start)
	return out, nil
}

func (uc *Login) login(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done, err := uc.session.BeginLogin(ctx)
	if err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", domain.ErrAuthCancelled, ctx.Err())
	}
}
