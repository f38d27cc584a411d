package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"qnote/internal/errors"
	"qnote/internal/note"
)

// writeImportFile marshals notes to a JSON file in a temp dir.
func writeImportFile(t *testing.T, notes []*note.Note) string {
	t.Helper()
	data, err := json.Marshal(notes)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "import.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestImport(t *testing.T) {
	st := newTestStore(t)

	path := writeImportFile(t, []*note.Note{
		{ID: "id-1", Title: "One", Content: "<p>first</p>", Created: 1000, Modified: 1000},
		{ID: "id-2", Title: "Two", Content: "<p>second</p>", Created: 2000, Modified: 2000},
	})

	out, err := st.Import(context.Background(), ImportInput{Path: path})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if out.Imported != 2 {
		t.Errorf("Imported = %d, want 2", out.Imported)
	}
	if out.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", out.Skipped)
	}
	if st.Len() != 2 {
		t.Errorf("Len = %d, want 2", st.Len())
	}

	// New notes are prepended as a block in file order.
	notes := st.Notes()
	if notes[0].ID != "id-1" || notes[1].ID != "id-2" {
		t.Errorf("order = [%s %s], want [id-1 id-2]", notes[0].ID, notes[1].ID)
	}
}

func TestImport_SkipMode(t *testing.T) {
	st := newTestStore(t)
	existing := mustSave(t, st, "Existing", "<p>original</p>")

	path := writeImportFile(t, []*note.Note{
		{ID: existing.ID, Title: "Replacement", Content: "<p>overwritten</p>"},
		{ID: "fresh", Title: "Fresh", Content: "<p>new</p>"},
	})

	out, err := st.Import(context.Background(), ImportInput{Path: path, Mode: ImportModeSkip})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if out.Imported != 1 {
		t.Errorf("Imported = %d, want 1", out.Imported)
	}
	if out.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", out.Skipped)
	}

	got, err := st.Get(existing.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Existing" {
		t.Errorf("Title = %q, skip mode must leave the existing note alone", got.Title)
	}
}

func TestImport_ReplaceMode(t *testing.T) {
	st := newTestStore(t)
	old := mustSave(t, st, "Old", "<p>old</p>")
	newest := mustSave(t, st, "Newest", "<p>newest</p>")

	path := writeImportFile(t, []*note.Note{
		{ID: old.ID, Title: "Replaced", Content: "<p>replaced</p>"},
	})

	out, err := st.Import(context.Background(), ImportInput{Path: path, Mode: ImportModeReplace})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if out.Imported != 1 {
		t.Errorf("Imported = %d, want 1", out.Imported)
	}

	got, err := st.Get(old.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Replaced" {
		t.Errorf("Title = %q, want Replaced", got.Title)
	}

	// Replaced notes keep their position.
	notes := st.Notes()
	if notes[0].ID != newest.ID || notes[1].ID != old.ID {
		t.Errorf("order = [%s %s], want [%s %s]", notes[0].ID, notes[1].ID, newest.ID, old.ID)
	}
}

func TestImport_SkipsEmptyRecords(t *testing.T) {
	st := newTestStore(t)

	path := writeImportFile(t, []*note.Note{
		{Title: "  ", Content: "\n"},
		{Title: "Real", Content: "<p>content</p>"},
	})

	out, err := st.Import(context.Background(), ImportInput{Path: path})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if out.Imported != 1 || out.Skipped != 1 {
		t.Errorf("Imported/Skipped = %d/%d, want 1/1", out.Imported, out.Skipped)
	}
}

func TestImport_ResanitizesContent(t *testing.T) {
	st := newTestStore(t)

	path := writeImportFile(t, []*note.Note{
		{Title: "Tainted", Content: `<p>ok</p><script>alert("x")</script>`},
	})

	if _, err := st.Import(context.Background(), ImportInput{Path: path}); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	notes := st.Notes()
	if len(notes) != 1 {
		t.Fatalf("Len = %d, want 1", len(notes))
	}
	if want := "<p>ok</p>"; notes[0].Content != want {
		t.Errorf("Content = %q, want %q (script stripped)", notes[0].Content, want)
	}
}

func TestImport_AssignsMissingIDs(t *testing.T) {
	st := newTestStore(t)

	path := writeImportFile(t, []*note.Note{
		{Title: "No ID", Content: "<p>x</p>"},
	})

	if _, err := st.Import(context.Background(), ImportInput{Path: path}); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if st.Notes()[0].ID == "" {
		t.Error("imported note should have been assigned an id")
	}
}

func TestImport_MissingFile(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Import(context.Background(), ImportInput{
		Path: filepath.Join(t.TempDir(), "nope.json"),
	})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("Import of missing file should return NOT_FOUND, got: %v", err)
	}
}

func TestImport_InvalidJSON(t *testing.T) {
	st := newTestStore(t)

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not an export"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	_, err := st.Import(context.Background(), ImportInput{Path: path})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Fatalf("Import of invalid JSON should return INVALID_REQUEST, got: %v", err)
	}
}

func TestImport_InvalidInput(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if _, err := st.Import(ctx, ImportInput{}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Import without path should return INVALID_REQUEST, got: %v", err)
	}
	if _, err := st.Import(ctx, ImportInput{Path: "x.json", Mode: "merge"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Import with unknown mode should return INVALID_REQUEST, got: %v", err)
	}
}
