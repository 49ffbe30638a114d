package usecase_test

import (
	"context"
	"testing"

	"github.com/runoshun/idraft/internal/domain"
	"github.com/runoshun/idraft/internal/testutil"
	"github.com/runoshun/idraft/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedQueue(t *testing.T, drafts ...domain.Draft) (*usecase.DraftQueue, *testutil.MockDraftStore) {
	t.Helper()
	store := testutil.NewMockDraftStore().Seed(drafts...)
	queue := usecase.NewDraftQueue(store, nil)
	queue.Load(context.Background())
	return queue, store
}

func TestAddDraft_Execute(t *testing.T) {
	t.Run("prepends the title", func(t *testing.T) {
		queue, store := loadedQueue(t, "older")

		out, err := usecase.NewAddDraft(queue).Execute(context.Background(), usecase.AddDraftInput{Title: "newer"})

		require.NoError(t, err)
		assert.Equal(t, []domain.Draft{"newer", "older"}, out.Drafts)
		assert.Equal(t, []domain.Draft{"newer", "older"}, store.Drafts)
	})

	t.Run("rejects blank titles", func(t *testing.T) {
		queue, _ := loadedQueue(t)

		out, err := usecase.NewAddDraft(queue).Execute(context.Background(), usecase.AddDraftInput{Title: "  "})

		assert.Nil(t, out)
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	})

	t.Run("returns output with persistence error", func(t *testing.T) {
		queue, store := loadedQueue(t)
		store.SaveErr = testutil.ErrMock

		out, err := usecase.NewAddDraft(queue).Execute(context.Background(), usecase.AddDraftInput{Title: "x"})

		require.NotNil(t, out)
		assert.Equal(t, []domain.Draft{"x"}, out.Drafts)
		assert.ErrorIs(t, err, domain.ErrPersistence)
	})
}

func TestListDrafts_Execute(t *testing.T) {
	queue, _ := loadedQueue(t, "b", "a")

	out, err := usecase.NewListDrafts(queue).Execute(context.Background(), usecase.ListDraftsInput{})

	require.NoError(t, err)
	assert.Equal(t, []domain.Draft{"b", "a"}, out.Drafts)
}

func TestRemoveDraft_Execute(t *testing.T) {
	t.Run("removes by index", func(t *testing.T) {
		queue, store := loadedQueue(t, "c", "b", "a")

		out, err := usecase.NewRemoveDraft(queue).Execute(context.Background(), usecase.RemoveDraftInput{Index: 2})

		require.NoError(t, err)
		assert.Equal(t, domain.Draft("a"), out.Removed)
		assert.Equal(t, []domain.Draft{"c", "b"}, out.Drafts)
		assert.Equal(t, []domain.Draft{"c", "b"}, store.Drafts)
	})

	t.Run("reports out of range", func(t *testing.T) {
		queue, store := loadedQueue(t, "a")

		_, err := usecase.NewRemoveDraft(queue).Execute(context.Background(), usecase.RemoveDraftInput{Index: 1})

		assert.ErrorIs(t, err, domain.ErrInvalidIndex)
		assert.Equal(t, []domain.Draft{"a"}, queue.Items())
		assert.Zero(t, store.SaveCalls)
	})
}

func TestClearDrafts_Execute(t *testing.T) {
	t.Run("writes empty list", func(t *testing.T) {
		queue, store := loadedQueue(t, "b", "a")

		out, err := usecase.NewClearDrafts(queue).Execute(context.Background(), usecase.ClearDraftsInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, out.Removed)
		assert.True(t, store.HasPersist)
		assert.Empty(t, store.Drafts)
		assert.False(t, store.Cleared)
	})

	t.Run("purge removes key", func(t *testing.T) {
		queue, store := loadedQueue(t, "a")

		out, err := usecase.NewClearDrafts(queue).Execute(context.Background(), usecase.ClearDraftsInput{Purge: true})

		require.NoError(t, err)
		assert.Equal(t, 1, out.Removed)
		assert.True(t, store.Cleared)
		assert.Zero(t, queue.Len())
	})
}

func TestImportDrafts_Execute(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantDrafts  []domain.Draft
		wantSkipped int
	}{
		{
			name:       "top-level list",
			content:    "- first\n- second\n",
			wantDrafts: []domain.Draft{"second", "first", "existing"},
		},
		{
			name:       "drafts key",
			content:    "drafts:\n  - one\n  - \"two: quoted\"\n",
			wantDrafts: []domain.Draft{"two: quoted", "one", "existing"},
		},
		{
			name:        "blank and nested entries are skipped",
			content:     "- ok\n- \"   \"\n- [nested]\n- 42\n",
			wantDrafts:  []domain.Draft{"42", "ok", "existing"},
			wantSkipped: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue, store := loadedQueue(t, "existing")

			out, err := usecase.NewImportDrafts(queue).Execute(context.Background(), usecase.ImportDraftsInput{
				Content: []byte(tt.content),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantDrafts, out.Drafts)
			assert.Equal(t, tt.wantDrafts, store.Drafts)
			assert.Len(t, out.Skipped, tt.wantSkipped)
			assert.Len(t, out.Added, len(tt.wantDrafts)-1)
		})
	}
}

func TestImportDrafts_SkippedEntryDetails(t *testing.T) {
	queue, _ := loadedQueue(t)

	out, err := usecase.NewImportDrafts(queue).Execute(context.Background(), usecase.ImportDraftsInput{
		Content: []byte("- ok\n- \"\"\n"),
	})

	require.NoError(t, err)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, 2, out.Skipped[0].Line)
	assert.ErrorIs(t, out.Skipped[0].Err, domain.ErrEmptyTitle)
}

func TestImportDrafts_InvalidDocument(t *testing.T) {
	for _, content := range []string{"", "title: nope", "drafts: just-a-string", "- [unclosed"} {
		t.Run(content, func(t *testing.T) {
			queue, store := loadedQueue(t)

			_, err := usecase.NewImportDrafts(queue).Execute(context.Background(), usecase.ImportDraftsInput{
				Content: []byte(content),
			})

			assert.ErrorIs(t, err, domain.ErrInvalidImport)
			assert.Zero(t, store.SaveCalls)
		})
	}
}

func TestImportDrafts_StopsOnPersistenceError(t *testing.T) {
	queue, store := loadedQueue(t)
	store.SaveErr = testutil.ErrMock

	out, err := usecase.NewImportDrafts(queue).Execute(context.Background(), usecase.ImportDraftsInput{
		Content: []byte("- a\n- b\n"),
	})

	assert.ErrorIs(t, err, domain.ErrPersistence)
	require.NotNil(t, out)
	assert.Equal(t, []domain.Draft{"a"}, out.Added)
	assert.Equal(t, 1, store.SaveCalls)
}
