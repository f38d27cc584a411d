package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"qnote/internal/errors"
	"qnote/internal/note"
)

// Save validates, normalizes, and upserts a note by id, then persists
// the full collection.
//
// With validate true, a note whose trimmed title and content are both
// empty is rejected with EMPTY_NOTE and the collection is unchanged.
// An empty title is normalized to the placeholder, modified is set to
// now, content is sanitized, and the note is inserted at the front when
// its id is new or replaced in place when it exists. On a backend write
// failure the in-memory collection keeps its last known-good state.
func (s *Store) Save(ctx context.Context, n *note.Note, validate bool) (*note.Note, error) {
	if n == nil {
		return nil, errors.NewInvalidRequest("note is required")
	}
	if validate && n.IsEmpty() {
		return nil, errors.NewEmptyNote()
	}

	saved := n.Clone()
	if saved.ID == "" {
		saved.ID = note.NewID()
	}
	saved.Title = note.NormalizeTitle(saved.Title)
	saved.Content = note.Sanitize(saved.Content)
	saved.Modified = time.Now().Unix()
	if saved.Created == 0 || saved.Created > saved.Modified {
		saved.Created = saved.Modified
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := upsert(s.notes, saved)
	if err := s.persist(ctx, updated); err != nil {
		return nil, err
	}
	s.notes = updated

	s.log.Debug("note saved",
		zap.String("id", saved.ID),
		zap.String("title", saved.Title))
	return saved.Clone(), nil
}

// upsert returns a new slice with the note replaced in place when its
// id exists, or inserted at the front (most-recent-first) when it is new.
func upsert(notes []*note.Note, n *note.Note) []*note.Note {
	for i, existing := range notes {
		if existing.ID == n.ID {
			updated := make([]*note.Note, len(notes))
			copy(updated, notes)
			updated[i] = n
			return updated
		}
	}

	updated := make([]*note.Note, 0, len(notes)+1)
	updated = append(updated, n)
	updated = append(updated, notes...)
	return updated
}
