package store

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"qnote/internal/note"
)

// SortCriterion selects the derived display ordering. Persisted order
// is never mutated.
type SortCriterion string

const (
	SortModified SortCriterion = "modified" // descending, default
	SortCreated  SortCriterion = "created"  // descending
	SortTitle    SortCriterion = "title"    // locale-aware ascending
)

// ParseSortCriterion maps a user-supplied string onto a criterion,
// falling back to SortModified for anything unknown.
func ParseSortCriterion(s string) SortCriterion {
	switch SortCriterion(strings.ToLower(strings.TrimSpace(s))) {
	case SortCreated:
		return SortCreated
	case SortTitle:
		return SortTitle
	default:
		return SortModified
	}
}

// Search returns the notes whose title or content contains the query as
// a case-insensitive substring. Content is matched raw, markup included.
// An empty or whitespace query returns the full collection. Pure
// function over the in-memory collection; no persistence access.
func (s *Store) Search(query string) []*note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.TrimSpace(query)
	if query == "" {
		return snapshot(s.notes)
	}

	q := strings.ToLower(query)
	var matches []*note.Note
	for _, n := range s.notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			matches = append(matches, n.Clone())
		}
	}
	return matches
}

// SortView orders an already-snapshotted view, such as search results.
func SortView(notes []*note.Note, criterion SortCriterion) []*note.Note {
	return sortNotes(notes, criterion)
}

// SortBy returns a new ordered view of the collection.
func (s *Store) SortBy(criterion SortCriterion) []*note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortNotes(snapshot(s.notes), criterion)
}

// sortNotes orders a snapshot in place and returns it.
func sortNotes(notes []*note.Note, criterion SortCriterion) []*note.Note {
	switch criterion {
	case SortCreated:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].Created > notes[j].Created
		})
	case SortTitle:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(notes, func(i, j int) bool {
			return c.CompareString(notes[i].Title, notes[j].Title) < 0
		})
	default:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].Modified > notes[j].Modified
		})
	}
	return notes
}
