package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/runoshun/idraft/internal/domain"
	"github.com/runoshun/idraft/internal/infra/draftstore"
	"github.com/runoshun/idraft/internal/testutil"
	"github.com/runoshun/idraft/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRepo = domain.RepoRef{Owner: "octocat", Name: "hello-world"}

type submitFixture struct {
	kv     *testutil.MockKeyValueStore
	queue  *usecase.DraftQueue
	issues *testutil.MockIssueTracker
	tokens *testutil.MockTokenSource
	logger *testutil.MockLogger
}

// newSubmitFixture queues titles so that the first title is the newest.
func newSubmitFixture(t *testing.T, titles ...string) *submitFixture {
	t.Helper()
	ctx := context.Background()
	f := &submitFixture{
		kv:     testutil.NewMockKeyValueStore(),
		issues: testutil.NewMockIssueTracker(),
		tokens: &testutil.MockTokenSource{Token: "gho_token"},
		logger: &testutil.MockLogger{},
	}
	f.queue = usecase.NewDraftQueue(draftstore.New(f.kv), f.logger)
	for i := len(titles) - 1; i >= 0; i-- {
		_, err := f.queue.Add(ctx, titles[i])
		require.NoError(t, err)
	}
	require.Equal(t, domain.DraftsFromStrings(titles), f.queue.Items())
	return f
}

func (f *submitFixture) useCase(keepFailed bool) *usecase.SubmitAll {
	return usecase.NewSubmitAll(f.queue, f.tokens, f.issues, f.logger, keepFailed)
}

func TestSubmitAll_AllSucceed(t *testing.T) {
	f := newSubmitFixture(t, "Fix bug", "Add feature")

	result, err := f.useCase(false).Execute(context.Background(), usecase.SubmitAllInput{Repo: testRepo})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 2, result.Succeeded)
	assert.True(t, result.Cleared)
	assert.Empty(t, f.queue.Items())
	assert.Equal(t, `[]`, f.kv.Values[domain.DraftsKey])

	assert.Equal(t, []string{"Fix bug", "Add feature"}, f.issues.Titles())
	for _, call := range f.issues.Calls {
		assert.Equal(t, "gho_token", call.Token)
		assert.Equal(t, testRepo, call.Repo)
		assert.Equal(t, domain.DefaultIssueBody, call.Req.Body)
	}
	require.Len(t, result.Items, 2)
	assert.Equal(t, 1, result.Items[0].Issue.Number)
	assert.Equal(t, 2, result.Items[1].Issue.Number)
}

func TestSubmitAll_PartialFailureStillClears(t *testing.T) {
	f := newSubmitFixture(t, "A", "B")
	f.issues.FailTitles["A"] = fmt.Errorf("%w: 500 Internal Server Error", domain.ErrTransport)

	result, err := f.useCase(false).Execute(context.Background(), usecase.SubmitAllInput{Repo: testRepo})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed())
	assert.True(t, result.Cleared)
	assert.Empty(t, f.queue.Items(), "failed drafts are dropped with the rest")
	assert.Equal(t, `[]`, f.kv.Values[domain.DraftsKey])

	assert.Equal(t, []string{"A", "B"}, f.issues.Titles(), "a failure does not stop the batch")
	assert.False(t, result.Items[0].OK())
	assert.ErrorIs(t, result.Items[0].Err, domain.ErrTransport)
	assert.True(t, result.Items[1].OK())
	assert.Equal(t, 1, f.logger.Count("error"))
}

func TestSubmitAll_KeepFailed(t *testing.T) {
	f := newSubmitFixture(t, "A", "B", "C")
	f.issues.FailTitles["A"] = domain.ErrTransport
	f.issues.FailTitles["C"] = domain.ErrTransport

	result, err := f.useCase(true).Execute(context.Background(), usecase.SubmitAllInput{Repo: testRepo})

	require.NoError(t, err)
	assert.False(t, result.Cleared)
	assert.Equal(t, []domain.Draft{"A", "C"}, f.queue.Items())
	assert.Equal(t, `["A","C"]`, f.kv.Values[domain.DraftsKey])
}

func TestSubmitAll_KeepFailedAllSucceeded(t *testing.T) {
	f := newSubmitFixture(t, "A")

	result, err := f.useCase(true).Execute(context.Background(), usecase.SubmitAllInput{Repo: testRepo})

	require.NoError(t, err)
	assert.True(t, result.Cleared)
	assert.Empty(t, f.queue.Items())
}

func TestSubmitAll_NothingToSubmit(t *testing.T) {
	f := newSubmitFixture(t)

	result, err := f.useCase(false).Execute(context.Background(), usecase.SubmitAllInput{Repo: testRepo})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNothingToSubmit)
	assert.EqualError(t, err, "nothing to submit")
	assert.Empty(t, f.issues.Calls)
}

func TestSubmitAll_AuthRequired(t *testing.T) {
	f := newSubmitFixture(t, "A")
	f.tokens.Token = ""

	result, err := f.useCase(false).Execute(context.Background(), usecase.SubmitAllInput{Repo: testRepo})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Contains(t, err.Error(), "authentication required")
	assert.Empty(t, f.issues.Calls)
	assert.Equal(t, []domain.Draft{"A"}, f.queue.Items(), "queue is untouched")
}

func TestSubmitAll_PreconditionOrder(t *testing.T) {
	// Unauthenticated and empty: authentication is reported first.
	f := newSubmitFixture(t)
	f.tokens.Token = ""

	_, err := f.useCase(false).Execute(context.Background(), usecase.SubmitAllInput{})

	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	// Authenticated, empty and no repository: the empty queue is reported first.
	f.tokens.Token = "tok"
	_, err = f.useCase(false).Execute(context.Background(), usecase.SubmitAllInput{})

	assert.ErrorIs(t, err, domain.ErrNothingToSubmit)
}

func TestSubmitAll_InvalidRepository(t *testing.T) {
	f := newSubmitFixture(t, "A")

	_, err := f.useCase(false).Execute(context.Background(), usecase.SubmitAllInput{Repo: domain.RepoRef{Owner: "octocat"}})

	assert.ErrorIs(t, err, domain.ErrInvalidRepository)
	assert.Empty(t, f.issues.Calls)
	assert.Equal(t, 1, f.queue.Len())
}

func TestSubmitAll_IgnoresCancellation(t *testing.T) {
	f := newSubmitFixture(t, "A", "B", "C")
	ctx, cancel := context.WithCancel(context.Background())

	var seen []error
	uc := f.useCase(false)
	f.issues.OnCreate = func(testutil.CreateCall) {
		cancel()
		seen = append(seen, ctx.Err())
	}

	result, err := uc.Execute(ctx, usecase.SubmitAllInput{Repo: testRepo})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, 3, result.Succeeded)
	assert.Len(t, seen, 3)
}

func TestSubmitAll_RejectsReentry(t *testing.T) {
	f := newSubmitFixture(t, "A", "B")
	uc := f.useCase(false)

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.issues.OnCreate = func(testutil.CreateCall) {
		once.Do(func() {
			close(entered)
			<-release
		})
	}

	done := make(chan error, 1)
	go func() {
		_, err := uc.Execute(context.Background(), usecase.SubmitAllInput{Repo: testRepo})
		done <- err
	}()
	<-entered

	assert.True(t, uc.Running())
	_, err := uc.Execute(context.Background(), usecase.SubmitAllInput{Repo: testRepo})
	assert.ErrorIs(t, err, domain.ErrSubmitInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, uc.Running())
	assert.Equal(t, []string{"A", "B"}, f.issues.Titles())
}

func TestSubmitAll_ClearFailureReturnsResult(t *testing.T) {
	f := newSubmitFixture(t, "A")
	f.kv.SetErr = testutil.ErrMock

	result, err := f.useCase(false).Execute(context.Background(), usecase.SubmitAllInput{Repo: testRepo})

	require.NotNil(t, result)
	assert.Equal(t, 1, result.Succeeded)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Empty(t, f.queue.Items(), "in-memory queue is cleared even when the write fails")
}
