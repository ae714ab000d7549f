package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliproxy-dev/cliproxy/internal/adapters/sqlite"
	"github.com/cliproxy-dev/cliproxy/internal/domain"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListCompletions(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	rec := &domain.CompletionRecord{
		ID:           "chatcmpl-1",
		Model:        "cli-agent",
		UserPrompt:   "hi",
		SystemPrompt: "be brief",
		Content:      "hello",
		Outcome:      domain.OutcomeSuccess,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, store.RecordCompletion(ctx, rec))

	recs, err := store.ListCompletions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "chatcmpl-1", recs[0].ID)
	assert.Equal(t, "hi", recs[0].UserPrompt)
	assert.Equal(t, "be brief", recs[0].SystemPrompt)
	assert.Equal(t, "hello", recs[0].Content)
	assert.Equal(t, domain.OutcomeSuccess, recs[0].Outcome)
	assert.WithinDuration(t, rec.CreatedAt, recs[0].CreatedAt, time.Second)
}

func TestListCompletions_NewestFirst(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Minute)
	for i, id := range []string{"chatcmpl-a", "chatcmpl-b", "chatcmpl-c"} {
		require.NoError(t, store.RecordCompletion(ctx, &domain.CompletionRecord{
			ID:        id,
			Model:     "cli-agent",
			Outcome:   domain.OutcomeSuccess,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	recs, err := store.ListCompletions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "chatcmpl-c", recs[0].ID)
	assert.Equal(t, "chatcmpl-b", recs[1].ID)
}

func TestRecordCompletion_ToolFailureRow(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordCompletion(ctx, &domain.CompletionRecord{
		ID:        "chatcmpl-err",
		Model:     "cli-agent",
		Content:   "Error executing CLI agent:\nboom",
		ExitCode:  2,
		Outcome:   domain.OutcomeToolFailure,
		CreatedAt: time.Now(),
	}))

	recs, err := store.ListCompletions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].ExitCode)
	assert.Equal(t, domain.OutcomeToolFailure, recs[0].Outcome)
}
