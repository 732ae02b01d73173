package drafts

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	var count int
	err = store.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&count)
	require.NoError(t, err)
	assert.Greater(t, count, 0, "Expected tables to be created")
}

func TestSaveAssignsIDAndUpserts(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	draft := &Draft{
		Title:   "Unlicensed spectrum use",
		Step:    0,
		Payload: json.RawMessage(`{"name":"Unlicensed spectrum use"}`),
	}

	require.NoError(t, store.Save(ctx, draft))
	assert.NotEmpty(t, draft.ID, "Save should assign an id")
	firstID := draft.ID

	// Saving again with the same id updates instead of duplicating.
	draft.Step = 1
	draft.Payload = json.RawMessage(`{"name":"Unlicensed spectrum use","priority":"URGENT"}`)
	require.NoError(t, store.Save(ctx, draft))
	assert.Equal(t, firstID, draft.ID)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	loaded, err := store.Get(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Step)
	assert.JSONEq(t, string(draft.Payload), string(loaded.Payload))
}

func TestListOrdersByMostRecent(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	older := &Draft{Title: "older", Payload: json.RawMessage(`{}`)}
	newer := &Draft{Title: "newer", Payload: json.RawMessage(`{}`)}
	require.NoError(t, store.Save(ctx, older))
	require.NoError(t, store.Save(ctx, newer))

	// Touch the first draft so it becomes the most recent. Timestamps
	// have second resolution, so force a distinct value directly.
	_, err = store.db.Exec(`UPDATE drafts SET updated_at = ? WHERE id = ?`,
		time.Now().Add(time.Hour).Unix(), older.ID)
	require.NoError(t, err)

	drafts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "older", drafts[0].Title)
	assert.Equal(t, "newer", drafts[1].Title)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	draft := &Draft{Title: "x", Payload: json.RawMessage(`{}`)}
	require.NoError(t, store.Save(ctx, draft))

	require.NoError(t, store.Delete(ctx, draft.ID))
	require.NoError(t, store.Delete(ctx, draft.ID), "deleting a missing draft is fine")

	_, err = store.Get(ctx, draft.ID)
	assert.Error(t, err)
}

func TestDraftsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	draft := &Draft{Title: "persisted", Payload: json.RawMessage(`{"step":"one"}`)}
	require.NoError(t, store.Save(ctx, draft))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", loaded.Title)
	assert.JSONEq(t, `{"step":"one"}`, string(loaded.Payload))
}
