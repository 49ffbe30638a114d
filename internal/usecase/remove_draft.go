package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/idraft/internal/domain"
)

// RemoveDraftInput contains the parameters for removing a draft.
type RemoveDraftInput struct {
	Index int // 0-based position in the queue
}

// RemoveDraftOutput contains the result of removing a draft.
type RemoveDraftOutput struct {
	Removed domain.Draft
	Drafts  []domain.Draft // Queue after the removal
}

// RemoveDraft is the use case for deleting one draft by position.
type RemoveDraft struct {
	queue *DraftQueue
}

// NewRemoveDraft creates a new RemoveDraft use case.
func NewRemoveDraft(queue *DraftQueue) *RemoveDraft {
	return &RemoveDraft{queue: queue}
}

// Execute removes the draft at in.Index.
// Unlike DraftQueue.RemoveAt, an out-of-range index is reported as
// domain.ErrInvalidIndex so the command line can tell the user.
func (uc *RemoveDraft) Execute(ctx context.Context, in RemoveDraftInput) (*RemoveDraftOutput, error) {
	items := uc.queue.Items()
	if in.Index < 0 || in.Index >= len(items) {
		return nil, fmt.Errorf("%w: %d (queue has %d drafts)", domain.ErrInvalidIndex, in.Index+1, len(items))
	}

	drafts, err := uc.queue.RemoveAt(ctx, in.Index)
	return &RemoveDraftOutput{Removed: items[in.Index], Drafts: drafts}, err
}
