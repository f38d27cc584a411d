package store

import (
	"context"
	"fmt"
	"testing"

	"qnote/internal/kv"
	"qnote/internal/note"
)

// newTestStore creates a store over a real SQLite backend in a temp dir.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	backend, err := kv.Open(t.TempDir())
	if err != nil {
		t.Fatalf("kv.Open failed: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	st := New(backend, nil)
	st.Load(context.Background())
	return st
}

// failingBackend wraps a real backend and injects failures.
type failingBackend struct {
	inner   kv.Store
	failGet bool
	failSet bool
}

func (f *failingBackend) Get(ctx context.Context, namespace string, keys ...string) (map[string][]byte, error) {
	if f.failGet {
		return nil, fmt.Errorf("injected get failure")
	}
	return f.inner.Get(ctx, namespace, keys...)
}

func (f *failingBackend) Set(ctx context.Context, namespace string, pairs map[string][]byte) error {
	if f.failSet {
		return fmt.Errorf("injected set failure")
	}
	return f.inner.Set(ctx, namespace, pairs)
}

// mustSave saves a note and fails the test on error.
func mustSave(t *testing.T, st *Store, title, content string) *note.Note {
	t.Helper()
	n := st.Create()
	n.Title = title
	n.Content = content
	saved, err := st.Save(context.Background(), n, true)
	if err != nil {
		t.Fatalf("Save(%q) failed: %v", title, err)
	}
	return saved
}

func TestLoad_EmptyDatabase(t *testing.T) {
	st := newTestStore(t)

	if st.Len() != 0 {
		t.Errorf("Len = %d, want 0 on a fresh database", st.Len())
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	backend, err := kv.Open(t.TempDir())
	if err != nil {
		t.Fatalf("kv.Open failed: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	st := New(backend, nil)
	st.Load(ctx)
	saved := mustSave(t, st, "Groceries", "<p>milk</p>")

	// A second store over the same backend sees the persisted note.
	st2 := New(backend, nil)
	notes := st2.Load(ctx)
	if len(notes) != 1 {
		t.Fatalf("Load returned %d notes, want 1", len(notes))
	}
	if notes[0].ID != saved.ID {
		t.Errorf("loaded id = %q, want %q", notes[0].ID, saved.ID)
	}
	if notes[0].Title != "Groceries" {
		t.Errorf("loaded title = %q, want Groceries", notes[0].Title)
	}
}

func TestLoad_BackendFailureDegradesToEmpty(t *testing.T) {
	backend, err := kv.Open(t.TempDir())
	if err != nil {
		t.Fatalf("kv.Open failed: %v", err)
	}
	defer backend.Close()

	st := New(&failingBackend{inner: backend, failGet: true}, nil)
	notes := st.Load(context.Background())

	if len(notes) != 0 {
		t.Errorf("Load returned %d notes, want 0 on backend failure", len(notes))
	}
	if st.Len() != 0 {
		t.Errorf("Len = %d, want 0", st.Len())
	}
}

func TestLoad_CorruptDataDegradesToEmpty(t *testing.T) {
	backend, err := kv.Open(t.TempDir())
	if err != nil {
		t.Fatalf("kv.Open failed: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	if err := backend.Set(ctx, kv.NamespaceLocal, map[string][]byte{"notes": []byte("not json")}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	st := New(backend, nil)
	notes := st.Load(ctx)
	if len(notes) != 0 {
		t.Errorf("Load returned %d notes, want 0 on unreadable data", len(notes))
	}
}

func TestGet(t *testing.T) {
	st := newTestStore(t)
	saved := mustSave(t, st, "Groceries", "<p>milk</p>")

	got, err := st.Get(saved.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Groceries" {
		t.Errorf("Title = %q, want Groceries", got.Title)
	}

	// Returned note is a copy; mutating it must not affect the store.
	got.Title = "Mutated"
	again, err := st.Get(saved.ID)
	if err != nil {
		t.Fatalf("second Get failed: %v", err)
	}
	if again.Title != "Groceries" {
		t.Errorf("stored title mutated through the returned copy: %q", again.Title)
	}
}

func TestGet_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Get("does-not-exist")
	if err == nil {
		t.Fatal("Get of unknown id should fail")
	}
}

func TestClearAll(t *testing.T) {
	st := newTestStore(t)
	for i := 0; i < 5; i++ {
		mustSave(t, st, fmt.Sprintf("Note %d", i), "<p>body</p>")
	}
	if st.Len() != 5 {
		t.Fatalf("Len = %d, want 5", st.Len())
	}

	if err := st.ClearAll(context.Background()); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if st.Len() != 0 {
		t.Errorf("Len after ClearAll = %d, want 0", st.Len())
	}
}

func TestClearAll_EmptyCollection(t *testing.T) {
	st := newTestStore(t)

	if err := st.ClearAll(context.Background()); err != nil {
		t.Fatalf("ClearAll on empty collection failed: %v", err)
	}
	if st.Len() != 0 {
		t.Errorf("Len = %d, want 0", st.Len())
	}
}
