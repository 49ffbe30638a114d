package usecase

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/runoshun/idraft/internal/domain"
)

// SubmitAllInput contains the parameters for submitting the queue.
type SubmitAllInput struct {
	Repo domain.RepoRef // Repository the issues are created in
}

// SubmitAll creates one issue per queued draft, then clears the queue.
// Fields are ordered to minimize memory padding.
type SubmitAll struct {
	tokens     domain.TokenSource
	issues     domain.IssueTracker
	logger     domain.Logger
	queue      *DraftQueue
	running    atomic.Bool
	keepFailed bool
}

// NewSubmitAll creates a new SubmitAll use case.
// When keepFailed is set, drafts whose request failed stay queued instead of
// being cleared with the rest.
func NewSubmitAll(
	queue *DraftQueue,
	tokens domain.TokenSource,
	issues domain.IssueTracker,
	logger domain.Logger,
	keepFailed bool,
) *SubmitAll {
	return &SubmitAll{
		queue:      queue,
		tokens:     tokens,
		issues:     issues,
		logger:     loggerOrNop(logger),
		keepFailed: keepFailed,
	}
}

// Running reports whether a batch is in flight.
func (uc *SubmitAll) Running() bool {
	return uc.running.Load()
}

// Execute submits a snapshot of the queue, most recent draft first.
//
// Preconditions are checked before any request: authentication
// (domain.ErrAuthRequired), a non-empty queue (domain.ErrNothingToSubmit) and
// a valid repository (domain.ErrInvalidRepository). A second call while a
// batch runs returns domain.ErrSubmitInProgress.
//
// Requests are sent strictly one at a time and a failed item never stops the
// batch. Once started the batch ignores cancellation of ctx. When clearing the
// queue fails afterwards, both the result and the persistence error are returned.
func (uc *SubmitAll) Execute(ctx context.Context, in SubmitAllInput) (*domain.BatchResult, error) {
	if !uc.running.CompareAndSwap(false, true) {
		return nil, domain.ErrSubmitInProgress
	}
	defer uc.running.Store(false)

	token, ok := uc.tokens.CurrentToken()
	if !ok {
		return nil, domain.ErrAuthRequired
	}

	drafts := uc.queue.Items()
	if len(drafts) == 0 {
		return nil, domain.ErrNothingToSubmit
	}

	if err := in.Repo.Validate(); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	uc.logger.Info("submit", fmt.Sprintf("submitting %d drafts to %s", len(drafts), in.Repo))

	result := &domain.BatchResult{
		Items: make([]domain.ItemResult, 0, len(drafts)),
	}
	for i, draft := range drafts {
		issue, err := uc.issues.CreateIssue(ctx, token, in.Repo, domain.IssueRequest{
			Title: draft.String(),
			Body:  domain.DefaultIssueBody,
		})
		result.Attempted++
		item := domain.ItemResult{Index: i, Title: draft.String(), Issue: issue, Err: err}
		if err != nil {
			uc.logger.Error("submit", fmt.Sprintf("draft %d %q failed: %v", i, draft, err))
		} else {
			result.Succeeded++
			uc.logger.Info("submit", fmt.Sprintf("draft %d %q created #%d", i, draft, issue.Number))
		}
		result.Items = append(result.Items, item)
	}

	uc.logger.Info("submit", fmt.Sprintf("batch done: %d/%d succeeded", result.Succeeded, result.Attempted))

	if uc.keepFailed && result.Failed() > 0 {
		return result, uc.queue.Replace(ctx, result.FailedDrafts())
	}
	result.Cleared = true
	return result, uc.queue.Clear(ctx)
}
