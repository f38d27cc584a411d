package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"qnote/internal/errors"
	"qnote/internal/kv"
)

// TestFullWorkflow exercises the complete note lifecycle:
// create → save → get → resave → search → delete → clear
func TestFullWorkflow(t *testing.T) {
	backend, err := kv.Open(t.TempDir())
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	st := New(backend, nil)
	st.Load(ctx)

	// 1. Create is transient
	n := st.Create()
	require.NotEmpty(t, n.ID)
	require.Equal(t, 0, st.Len())

	// 2. Save
	n.Title = "Groceries"
	n.Content = "<p>milk</p>"
	saved, err := st.Save(ctx, n, true)
	require.NoError(t, err)
	require.Equal(t, n.ID, saved.ID)
	require.Equal(t, 1, st.Len())

	// 3. Get
	got, err := st.Get(saved.ID)
	require.NoError(t, err)
	require.Equal(t, "Groceries", got.Title)
	require.Equal(t, "<p>milk</p>", got.Content)

	// 4. Resave with the same id updates in place, no duplicate
	got.Content = "<p>milk and eggs</p>"
	resaved, err := st.Save(ctx, got, true)
	require.NoError(t, err)
	require.Equal(t, saved.ID, resaved.ID)
	require.Equal(t, 1, st.Len())

	got, err = st.Get(saved.ID)
	require.NoError(t, err)
	require.Equal(t, "<p>milk and eggs</p>", got.Content)

	// 5. Search finds it by content
	results := st.Search("eggs")
	require.Len(t, results, 1)
	require.Equal(t, saved.ID, results[0].ID)

	// 6. Delete
	deleted, err := st.Delete(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, 0, st.Len())

	_, err = st.Get(saved.ID)
	var qErr *errors.Error
	require.ErrorAs(t, err, &qErr)
	require.Equal(t, errors.ErrNotFound, qErr.Code)

	// 7. Clear after building up a small collection
	for i := 0; i < 5; i++ {
		m := st.Create()
		m.Title = fmt.Sprintf("Note %d", i)
		_, err := st.Save(ctx, m, true)
		require.NoError(t, err)
	}
	require.Equal(t, 5, st.Len())

	require.NoError(t, st.ClearAll(ctx))
	require.Equal(t, 0, st.Len())

	// 8. The cleared state is what a fresh store loads
	st2 := New(backend, nil)
	require.Empty(t, st2.Load(ctx))
}

// TestWorkflow_PersistenceAcrossRestart verifies that everything a
// session writes is what the next session loads.
func TestWorkflow_PersistenceAcrossRestart(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	backend, err := kv.Open(tmpDir)
	require.NoError(t, err)

	st := New(backend, nil)
	st.Load(ctx)

	n := st.Create()
	n.Title = "Persistent"
	n.Content = "<p>survives restart</p>"
	saved, err := st.Save(ctx, n, true)
	require.NoError(t, err)

	settings := st.Settings(ctx)
	settings.Theme = "dark"
	require.NoError(t, st.SaveSettings(ctx, settings))

	require.NoError(t, backend.Close())

	// Restart
	backend2, err := kv.Open(tmpDir)
	require.NoError(t, err)
	defer backend2.Close()

	st2 := New(backend2, nil)
	notes := st2.Load(ctx)
	require.Len(t, notes, 1)
	require.Equal(t, saved.ID, notes[0].ID)
	require.Equal(t, "dark", st2.Settings(ctx).Theme)
}

// TestWorkflow_OutageRecovery verifies the degraded-mode contract: a
// backend outage loses no in-memory state, and writes succeed again
// once the backend recovers.
func TestWorkflow_OutageRecovery(t *testing.T) {
	backend, err := kv.Open(t.TempDir())
	require.NoError(t, err)
	defer backend.Close()

	flaky := &failingBackend{inner: backend}
	st := New(flaky, nil)
	ctx := context.Background()
	st.Load(ctx)

	n := st.Create()
	n.Title = "Before outage"
	n.Content = "<p>safe</p>"
	saved, err := st.Save(ctx, n, true)
	require.NoError(t, err)

	// Outage: saves and deletes fail, reads keep serving.
	flaky.failSet = true

	bad := st.Create()
	bad.Title = "During outage"
	_, err = st.Save(ctx, bad, true)
	require.True(t, errors.Is(err, errors.ErrStorage))

	_, err = st.Delete(ctx, saved.ID)
	require.True(t, errors.Is(err, errors.ErrStorage))

	require.Equal(t, 1, st.Len())
	got, err := st.Get(saved.ID)
	require.NoError(t, err)
	require.Equal(t, "Before outage", got.Title)

	// Recovery
	flaky.failSet = false
	after := st.Create()
	after.Title = "After outage"
	after.Content = "<p>back</p>"
	_, err = st.Save(ctx, after, true)
	require.NoError(t, err)
	require.Equal(t, 2, st.Len())
}
