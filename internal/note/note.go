package note

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// UntitledTitle is the placeholder applied when a note is saved with
// content but no title.
const UntitledTitle = "Untitled Note"

// Note is the sole persisted entity: a rich-text document with title,
// sanitized HTML content, timestamps, and optional capture metadata.
type Note struct {
	// ID is a ULID that uniquely identifies this note. Immutable.
	ID string `json:"id"`

	// Title is the human-readable title. Normalized to UntitledTitle
	// before persistence when empty.
	Title string `json:"title"`

	// Content is the note body, stored as sanitized HTML.
	Content string `json:"content"`

	// Tags is populated only by capture flows.
	Tags []string `json:"tags,omitempty"`

	// Category is populated only by capture flows.
	Category string `json:"category,omitempty"`

	// Created is the Unix timestamp set once at creation.
	Created int64 `json:"created"`

	// Modified is the Unix timestamp updated on every successful save.
	Modified int64 `json:"modified"`
}

// New creates a transient note with a fresh ID and both timestamps set
// to now. It is not persisted until the store saves it.
func New() *Note {
	now := time.Now().Unix()
	return &Note{
		ID:       NewID(),
		Created:  now,
		Modified: now,
	}
}

// NewID generates a new ULID string.
func NewID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// IsEmpty reports whether both title and content are empty after
// trimming whitespace. Empty notes are never persisted.
func (n *Note) IsEmpty() bool {
	return strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == ""
}

// NormalizeTitle returns the title to persist: the trimmed title, or
// UntitledTitle when the trimmed title is empty.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return UntitledTitle
	}
	return title
}

// Clone returns a deep copy of the note.
func (n *Note) Clone() *Note {
	c := *n
	if n.Tags != nil {
		c.Tags = make([]string, len(n.Tags))
		copy(c.Tags, n.Tags)
	}
	return &c
}
