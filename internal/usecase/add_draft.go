package usecase

import (
	"context"

	"github.com/runoshun/idraft/internal/domain"
)

// AddDraftInput contains the parameters for adding a draft.
type AddDraftInput struct {
	Title string // Issue title, stored as given
}

// AddDraftOutput contains the result of adding a draft.
type AddDraftOutput struct {
	Drafts []domain.Draft // Queue after the addition
}

// AddDraft is the use case for queueing a new draft.
type AddDraft struct {
	queue *DraftQueue
}

// NewAddDraft creates a new AddDraft use case.
func NewAddDraft(queue *DraftQueue) *AddDraft {
	return &AddDraft{queue: queue}
}

// Execute prepends the draft. A persistence failure is returned together
// with the output because the in-memory queue was still updated.
func (uc *AddDraft) Execute(ctx context.Context, in AddDraftInput) (*AddDraftOutput, error) {
	drafts, err := uc.queue.Add(ctx, in.Title)
	if drafts == nil {
		return nil, err
	}
	return &AddDraftOutput{Drafts: drafts}, err
}
