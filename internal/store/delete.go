package store

import (
	"context"

	"go.uber.org/zap"

	"qnote/internal/note"
)

// Delete removes the note with the given id and persists the resulting
// collection. A missing id is a no-op, not an error; the returned bool
// reports whether a note was removed. Deletion is irreversible.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, n := range s.notes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	updated := make([]*note.Note, 0, len(s.notes)-1)
	updated = append(updated, s.notes[:idx]...)
	updated = append(updated, s.notes[idx+1:]...)

	if err := s.persist(ctx, updated); err != nil {
		return false, err
	}
	s.notes = updated

	s.log.Debug("note deleted", zap.String("id", id))
	return true, nil
}
