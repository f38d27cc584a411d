package store

import (
	"context"

	"go.uber.org/zap"
)

// ClearConfirmPhrase is the typed confirmation every surface must
// collect before invoking ClearAll.
const ClearConfirmPhrase = "DELETE"

// ClearAll replaces the persisted collection with an empty one. The
// store does not prompt; it trusts that the caller has collected the
// typed confirmation phrase. Terminal and unrecoverable.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := len(s.notes)
	if err := s.persist(ctx, nil); err != nil {
		return err
	}
	s.notes = nil

	s.log.Info("all notes cleared", zap.Int("count", cleared))
	return nil
}
