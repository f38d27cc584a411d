// Package store owns the authoritative in-memory view of the note
// collection and keeps it synchronized with the persistence backend.
// Every write persists the full collection; there are no delta writes
// and the last writer wins at the backend.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"qnote/internal/errors"
	"qnote/internal/kv"
	"qnote/internal/note"
)

// Keys within the KV namespaces.
const (
	notesKey    = "notes"
	settingsKey = "settings"
)

// Store maintains the note collection. Callers hold only a reference;
// the store is the single source of truth. A single mutex serializes
// operations, standing in for the original single UI-bound thread.
type Store struct {
	mu      sync.Mutex
	backend kv.Store
	log     *zap.Logger
	notes   []*note.Note
}

// New creates a Store over the given backend. Call Load before use.
func New(backend kv.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		backend: backend,
		log:     log,
	}
}

// Load fetches the full note collection from the persistence backend.
// On absence the collection is empty; on backend failure the store
// degrades to an empty in-memory collection and logs the failure rather
// than failing the caller. The result is sorted by modified descending.
func (s *Store) Load(ctx context.Context) []*note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = nil

	values, err := s.backend.Get(ctx, kv.NamespaceLocal, notesKey)
	if err != nil {
		s.log.Warn("note load failed, starting with empty collection", zap.Error(err))
		return nil
	}

	data, ok := values[notesKey]
	if !ok {
		return nil
	}

	var notes []*note.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		s.log.Warn("stored note collection is unreadable, starting empty", zap.Error(err))
		return nil
	}

	s.notes = notes
	return sortNotes(snapshot(notes), SortModified)
}

// Create produces a new transient note with a fresh ID and both
// timestamps set to now. Nothing is persisted until Save.
func (s *Store) Create() *note.Note {
	return note.New()
}

// Get returns a copy of the note with the given id.
func (s *Store) Get(id string) (*note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notes {
		if n.ID == id {
			return n.Clone(), nil
		}
	}
	return nil, errors.NewNotFound(id)
}

// Notes returns a copy of the collection in persisted (insertion) order.
func (s *Store) Notes() []*note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.notes)
}

// Len returns the number of notes in the collection.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// persist writes the full collection to the backend. On failure the
// in-memory collection is left untouched by callers, so the last
// known-good state survives.
func (s *Store) persist(ctx context.Context, notes []*note.Note) error {
	data, err := json.Marshal(notes)
	if err != nil {
		return errors.NewInternal(err)
	}
	if notes == nil {
		data = []byte("[]")
	}
	if err := s.backend.Set(ctx, kv.NamespaceLocal, map[string][]byte{notesKey: data}); err != nil {
		s.log.Error("note collection write failed", zap.Error(err))
		return errors.NewStorage(err)
	}
	return nil
}

// snapshot copies a note slice, cloning each note.
func snapshot(notes []*note.Note) []*note.Note {
	out := make([]*note.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
