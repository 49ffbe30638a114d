package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/runoshun/idraft/internal/domain"
	"github.com/runoshun/idraft/internal/testutil"
	"github.com/runoshun/idraft/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClient = domain.OAuthClient{
	ClientID:     "client-id",
	ClientSecret: "client-secret",
	Scopes:       []string{"repo", "user"},
}

func newTestSession(exchanger *testutil.MockTokenExchanger) (*usecase.AuthSession, *testutil.MockAuthorizer) {
	authorizer := testutil.NewMockAuthorizer()
	return usecase.NewAuthSession(testClient, authorizer, exchanger, &testutil.MockLogger{}), authorizer
}

func waitLogin(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("login did not finish")
		return nil
	}
}

func TestAuthSession_InitialState(t *testing.T) {
	session, _ := newTestSession(testutil.NewMockTokenExchanger("tok"))

	token, ok := session.CurrentToken()

	assert.False(t, ok)
	assert.Empty(t, token)
	assert.Equal(t, domain.AuthUnauthenticated, session.State())
}

func TestAuthSession_ExchangeCodeForToken(t *testing.T) {
	exchanger := testutil.NewMockTokenExchanger("gho_token")
	session, _ := newTestSession(exchanger)

	require.NoError(t, session.ExchangeCodeForToken(context.Background(), "code-1"))

	token, ok := session.CurrentToken()
	assert.True(t, ok)
	assert.Equal(t, "gho_token", token)
	assert.Equal(t, domain.AuthAuthenticated, session.State())
	require.Len(t, exchanger.Requests, 1)
	assert.Equal(t, domain.TokenRequest{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Code:         "code-1",
	}, exchanger.Requests[0])
}

func TestAuthSession_MissingAccessToken(t *testing.T) {
	exchanger := testutil.NewMockTokenExchanger("")
	session, _ := newTestSession(exchanger)

	err := session.OnAuthorizationCode(context.Background(), "code")

	assert.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.ErrorIs(t, err, domain.ErrMissingAccessToken)
	assert.Equal(t, domain.AuthUnauthenticated, session.State())
	_, ok := session.CurrentToken()
	assert.False(t, ok)
	assert.Equal(t, 1, exchanger.Calls(), "no automatic retry")

	// A later batch still sees an unauthenticated session.
	store := testutil.NewMockDraftStore().Seed("A")
	queue := usecase.NewDraftQueue(store, nil)
	queue.Load(context.Background())
	issues := testutil.NewMockIssueTracker()
	submit := usecase.NewSubmitAll(queue, session, issues, nil, false)

	_, err = submit.Execute(context.Background(), usecase.SubmitAllInput{Repo: testRepo})

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Empty(t, issues.Calls)
}

func TestAuthSession_ExchangeTransportError(t *testing.T) {
	exchanger := testutil.NewMockTokenExchanger("tok")
	exchanger.Err = fmt.Errorf("%w: connection refused", domain.ErrTransport)
	session, _ := newTestSession(exchanger)

	err := session.ExchangeCodeForToken(context.Background(), "code")

	assert.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, domain.AuthUnauthenticated, session.State())
}

func TestAuthSession_OnAuthorizationCodeExactlyOnce(t *testing.T) {
	exchanger := testutil.NewMockTokenExchanger("first-token")
	session, _ := newTestSession(exchanger)
	ctx := context.Background()

	require.NoError(t, session.OnAuthorizationCode(ctx, "code-1"))

	exchanger.Token = "second-token"
	require.NoError(t, session.OnAuthorizationCode(ctx, "code-2"))
	require.NoError(t, session.OnAuthorizationCode(ctx, "code-3"))

	token, ok := session.CurrentToken()
	assert.True(t, ok)
	assert.Equal(t, "first-token", token)
	assert.Equal(t, 1, exchanger.Calls())
}

func TestAuthSession_OnAuthorizationCodeIgnoredWhileExchanging(t *testing.T) {
	exchanger := testutil.NewMockTokenExchanger("tok")
	exchanger.Gate = make(chan struct{})
	exchanger.Started = make(chan struct{}, 1)
	session, _ := newTestSession(exchanger)
	ctx := context.Background()

	first := make(chan error, 1)
	go func() { first <- session.OnAuthorizationCode(ctx, "code-1") }()
	<-exchanger.Started
	assert.Equal(t, domain.AuthCodeReceived, session.State())

	// Duplicate delivery while the first exchange is in flight.
	require.NoError(t, session.OnAuthorizationCode(ctx, "code-2"))

	close(exchanger.Gate)
	require.NoError(t, <-first)
	assert.Equal(t, 1, exchanger.Calls())
	assert.Equal(t, domain.AuthAuthenticated, session.State())
}

func TestAuthSession_Logout(t *testing.T) {
	session, _ := newTestSession(testutil.NewMockTokenExchanger("tok"))
	require.NoError(t, session.ExchangeCodeForToken(context.Background(), "code"))

	session.Logout()

	_, ok := session.CurrentToken()
	assert.False(t, ok)
	assert.Equal(t, domain.AuthUnauthenticated, session.State())

	// A new login is possible after logout.
	require.NoError(t, session.OnAuthorizationCode(context.Background(), "code-2"))
	assert.Equal(t, domain.AuthAuthenticated, session.State())
}

func TestAuthSession_LogoutDuringExchange(t *testing.T) {
	exchanger := testutil.NewMockTokenExchanger("tok")
	exchanger.Gate = make(chan struct{})
	exchanger.Started = make(chan struct{}, 1)
	session, _ := newTestSession(exchanger)

	result := make(chan error, 1)
	go func() { result <- session.OnAuthorizationCode(context.Background(), "code") }()
	<-exchanger.Started

	session.Logout()
	close(exchanger.Gate)

	assert.ErrorIs(t, <-result, domain.ErrAuthCancelled)
	_, ok := session.CurrentToken()
	assert.False(t, ok)
}

func TestAuthSession_BeginLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		session, authorizer := newTestSession(testutil.NewMockTokenExchanger("tok"))

		done, err := session.BeginLogin(context.Background())
		require.NoError(t, err)
		authorizer.Succeed("code")

		require.NoError(t, waitLogin(t, done))
		assert.Equal(t, domain.AuthAuthenticated, session.State())
		require.Len(t, authorizer.Requests, 1)
		assert.Equal(t, domain.AuthorizationRequest{
			ClientID: "client-id",
			Scopes:   []string{"repo", "user"},
		}, authorizer.Requests[0])
	})

	t.Run("cancelled", func(t *testing.T) {
		exchanger := testutil.NewMockTokenExchanger("tok")
		session, authorizer := newTestSession(exchanger)

		done, err := session.BeginLogin(context.Background())
		require.NoError(t, err)
		authorizer.Cancel()

		assert.ErrorIs(t, waitLogin(t, done), domain.ErrAuthCancelled)
		assert.Equal(t, domain.AuthUnauthenticated, session.State())
		assert.Zero(t, exchanger.Calls())
	})

	t.Run("redirect error", func(t *testing.T) {
		session, authorizer := newTestSession(testutil.NewMockTokenExchanger("tok"))

		done, err := session.BeginLogin(context.Background())
		require.NoError(t, err)
		authorizer.Fail(errors.New("redirect_uri_mismatch"))

		err = waitLogin(t, done)
		assert.ErrorIs(t, err, domain.ErrAuthFailed)
		assert.Contains(t, err.Error(), "redirect_uri_mismatch")
	})

	t.Run("authorizer closes without result", func(t *testing.T) {
		session, authorizer := newTestSession(testutil.NewMockTokenExchanger("tok"))

		done, err := session.BeginLogin(context.Background())
		require.NoError(t, err)
		close(authorizer.Results)

		assert.ErrorIs(t, waitLogin(t, done), domain.ErrAuthCancelled)
	})

	t.Run("authorizer fails to start", func(t *testing.T) {
		session, authorizer := newTestSession(testutil.NewMockTokenExchanger("tok"))
		authorizer.Err = errors.New("address in use")

		done, err := session.BeginLogin(context.Background())

		assert.Nil(t, done)
		assert.ErrorIs(t, err, domain.ErrAuthFailed)
	})

	t.Run("missing secret", func(t *testing.T) {
		authorizer := testutil.NewMockAuthorizer()
		client := testClient
		client.ClientSecret = ""
		session := usecase.NewAuthSession(client, authorizer, testutil.NewMockTokenExchanger("tok"), nil)

		_, err := session.BeginLogin(context.Background())

		assert.ErrorIs(t, err, domain.ErrMissingSecret)
		assert.Zero(t, authorizer.RequestCount())
	})
}
