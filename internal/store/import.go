package store

import (
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"qnote/internal/errors"
	"qnote/internal/note"
)

// ImportMode controls collision behavior during import.
type ImportMode string

const (
	ImportModeSkip    ImportMode = "skip"    // default: existing ids untouched
	ImportModeReplace ImportMode = "replace" // overwrite existing ids
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string     // required
	Mode ImportMode // default: skip
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Import merges a JSON export file into the collection by id. Imported
// content is re-sanitized; records that are empty after trimming are
// skipped, not errors. New notes are prepended as a block in file
// order; replaced notes keep their position. One persistence write
// covers the whole batch.
func (s *Store) Import(ctx context.Context, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = ImportModeSkip
	}
	if input.Mode != ImportModeSkip && input.Mode != ImportModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: skip, replace")
	}

	data, err := os.ReadFile(input.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(input.Path)
		}
		return nil, errors.NewInternal(err)
	}

	var records []*note.Note
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.NewInvalidRequest("file is not a qnote JSON export: " + err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]int, len(s.notes))
	for i, n := range s.notes {
		existing[n.ID] = i
	}

	updated := make([]*note.Note, len(s.notes))
	copy(updated, s.notes)

	var incoming []*note.Note
	incomingIdx := make(map[string]int)
	out := &ImportOutput{}

	for _, r := range records {
		if r == nil || r.IsEmpty() {
			out.Skipped++
			continue
		}

		n := r.Clone()
		n.Title = note.NormalizeTitle(n.Title)
		n.Content = note.Sanitize(n.Content)
		if n.ID == "" {
			n.ID = note.NewID()
		}
		if n.Modified < n.Created {
			n.Modified = n.Created
		}

		if idx, ok := existing[n.ID]; ok {
			if input.Mode == ImportModeSkip {
				out.Skipped++
				continue
			}
			updated[idx] = n
			out.Imported++
			continue
		}

		// Duplicate id within the file itself.
		if idx, ok := incomingIdx[n.ID]; ok {
			if input.Mode == ImportModeSkip {
				out.Skipped++
				continue
			}
			incoming[idx] = n
			continue
		}

		incomingIdx[n.ID] = len(incoming)
		incoming = append(incoming, n)
		out.Imported++
	}

	if out.Imported == 0 {
		return out, nil
	}

	updated = append(incoming, updated...)
	if err := s.persist(ctx, updated); err != nil {
		return nil, err
	}
	s.notes = updated

	s.log.Info("notes imported",
		zap.String("path", input.Path),
		zap.Int("imported", out.Imported),
		zap.Int("skipped", out.Skipped))
	return out, nil
}
