// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/runoshun/idraft/internal/domain"
)

// DraftQueue is the ordered list of pending drafts, most recent first.
// Every mutation is mirrored to the DraftStore before it returns, so the
// in-memory and persisted sequences are equal after each call.
// A failed write does not roll back the in-memory change; the error is
// logged and returned wrapped in domain.ErrPersistence.
type DraftQueue struct {
	store  domain.DraftStore
	logger domain.Logger
	items  []domain.Draft
	mu     sync.Mutex
}

// NewDraftQueue creates an empty DraftQueue backed by store.
// Call Load to populate it from the store.
func NewDraftQueue(store domain.DraftStore, logger domain.Logger) *DraftQueue {
	return &DraftQueue{
		store:  store,
		logger: loggerOrNop(logger),
	}
}

// Load replaces the in-memory queue with the persisted sequence.
// An absent key yields an empty queue. Unreadable or malformed data also
// yields an empty queue; the failure is logged, never returned.
func (q *DraftQueue) Load(ctx context.Context) []domain.Draft {
	q.mu.Lock()
	defer q.mu.Unlock()

	drafts, err := q.store.Load(ctx)
	if err != nil {
		q.logger.Warn("store", fmt.Sprintf("load drafts failed, starting empty: %v", err))
		drafts = nil
	}
	q.items = drafts
	q.logger.Debug("draft", fmt.Sprintf("loaded %d drafts", len(drafts)))
	return q.snapshot()
}

// Add prepends title and persists the queue.
// Returns domain.ErrEmptyTitle for empty or whitespace-only titles without
// touching the queue or the store.
func (q *DraftQueue) Add(ctx context.Context, title string) ([]domain.Draft, error) {
	if err := domain.ValidateTitle(title); err != nil {
		return nil, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]domain.Draft, 0, len(q.items)+1)
	items = append(items, domain.Draft(title))
	q.items = append(items, q.items...)
	q.logger.Info("draft", fmt.Sprintf("added draft %q", title))

	return q.snapshot(), q.persist(ctx)
}

// RemoveAt removes the draft at index and persists the queue.
// An out-of-range index is a no-op: the unchanged queue is returned and
// nothing is written.
func (q *DraftQueue) RemoveAt(ctx context.Context, index int) ([]domain.Draft, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.items) {
		return q.snapshot(), nil
	}

	removed := q.items[index]
	items := make([]domain.Draft, 0, len(q.items)-1)
	items = append(items, q.items[:index]...)
	q.items = append(items, q.items[index+1:]...)
	q.logger.Info("draft", fmt.Sprintf("removed draft %d %q", index, removed))

	return q.snapshot(), q.persist(ctx)
}

// Clear empties the queue and persists an empty list.
func (q *DraftQueue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = nil
	q.logger.Info("draft", "cleared drafts")
	return q.persist(ctx)
}

// Reset empties the queue and removes the persisted key entirely.
func (q *DraftQueue) Reset(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = nil
	if err := q.store.Clear(ctx); err != nil {
		q.logger.Error("store", fmt.Sprintf("remove drafts failed: %v", err))
		return persistenceError("remove drafts", err)
	}
	q.logger.Info("draft", "purged drafts")
	return nil
}

// Replace sets the queue to drafts and persists it.
func (q *DraftQueue) Replace(ctx context.Context, drafts []domain.Draft) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append([]domain.Draft(nil), drafts...)
	return q.persist(ctx)
}

// Items returns a copy of the queue.
func (q *DraftQueue) Items() []domain.Draft {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshot()
}

// Len returns the number of drafts.
func (q *DraftQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// snapshot copies the queue. Callers must hold q.mu.
func (q *DraftQueue) snapshot() []domain.Draft {
	return append([]domain.Draft{}, q.items...)
}

// persist writes the queue. Callers must hold q.mu.
func (q *DraftQueue) persist(ctx context.Context) error {
	if err := q.store.Save(ctx, q.items); err != nil {
		q.logger.Error("store", fmt.Sprintf("save drafts failed: %v", err))
		return persistenceError("save drafts", err)
	}
	return nil
}

// persistenceError wraps err so that it matches domain.ErrPersistence.
func persistenceError(op string, err error) error {
	if errors.Is(err, domain.ErrPersistence) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}
