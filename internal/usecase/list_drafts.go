package usecase

import (
	"context"

	"github.com/runoshun/idraft/internal/domain"
)

// ListDraftsInput contains the parameters for listing drafts.
type ListDraftsInput struct{}

// ListDraftsOutput contains the queued drafts, most recent first.
type ListDraftsOutput struct {
	Drafts []domain.Draft
}

// ListDrafts is the use case for listing the queue.
type ListDrafts struct {
	queue *DraftQueue
}

// NewListDrafts creates a new ListDrafts use case.
func NewListDrafts(queue *DraftQueue) *ListDrafts {
	return &ListDrafts{queue: queue}
}

// Execute returns a snapshot of the queue.
func (uc *ListDrafts) Execute(_ context.Context, _ ListDraftsInput) (*ListDraftsOutput, error) {
	return &ListDraftsOutput{Drafts: uc.queue.Items()}, nil
}
