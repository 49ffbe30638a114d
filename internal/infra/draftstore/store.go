// Package draftstore persists the draft queue through a KeyValueStore.
package draftstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/runoshun/idraft/internal/domain"
)

// Ensure Store implements domain.DraftStore.
var _ domain.DraftStore = (*Store)(nil)

// Store keeps the whole queue as one JSON array of strings under domain.DraftsKey.
type Store struct {
	kv domain.KeyValueStore
}

// New creates a Store over kv.
func New(kv domain.KeyValueStore) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted drafts, or nil when the key is absent.
// Malformed data is reported as an error; callers decide how to recover.
func (s *Store) Load(ctx context.Context) ([]domain.Draft, error) {
	raw, ok, err := s.kv.Get(ctx, domain.DraftsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var titles []string
	if err := json.Unmarshal([]byte(raw), &titles); err != nil {
		return nil, fmt.Errorf("%w: decode drafts: %w", domain.ErrPersistence, err)
	}
	return domain.DraftsFromStrings(titles), nil
}

// Save replaces the persisted list. An empty list is written as [].
func (s *Store) Save(ctx context.Context, drafts []domain.Draft) error {
	raw, err := json.Marshal(domain.DraftStrings(drafts))
	if err != nil {
		return fmt.Errorf("%w: encode drafts: %w", domain.ErrPersistence, err)
	}
	return s.kv.Set(ctx, domain.DraftsKey, string(raw))
}

// Clear removes the persisted key.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Remove(ctx, domain.DraftsKey)
}
