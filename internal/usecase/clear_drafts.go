package usecase

import "context"

// ClearDraftsInput contains the parameters for clearing the queue.
type ClearDraftsInput struct {
	Purge bool // Remove the stored key instead of writing an empty list
}

// ClearDraftsOutput contains the result of clearing the queue.
type ClearDraftsOutput struct {
	Removed int // Number of drafts discarded
}

// ClearDrafts is the use case for discarding every draft.
type ClearDrafts struct {
	queue *DraftQueue
}

// NewClearDrafts creates a new ClearDrafts use case.
func NewClearDrafts(queue *DraftQueue) *ClearDrafts {
	return &ClearDrafts{queue: queue}
}

// Execute empties the queue.
func (uc *ClearDrafts) Execute(ctx context.Context, in ClearDraftsInput) (*ClearDraftsOutput, error) {
	out := &ClearDraftsOutput{Removed: uc.queue.Len()}

	var err error
	if in.Purge {
		err = uc.queue.Reset(ctx)
	} else {
		err = uc.queue.Clear(ctx)
	}
	return out, err
}
