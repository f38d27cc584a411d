// Package export serializes the note collection into its four derived,
// read-only formats: structured JSON, plain text, Markdown, and a
// self-contained HTML document.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"qnote/internal/errors"
	"qnote/internal/note"
)

// Format identifies an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// filenamePrefix is the fixed prefix of export filenames.
const filenamePrefix = "notes"

// ParseFormat maps a user-supplied string onto a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "txt", "text":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", errors.NewInvalidRequest(
			fmt.Sprintf("unknown export format %q (want json, txt, md, or html)", s))
	}
}

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	return string(f)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Filename returns the export filename for the format and date:
// notes_<YYYY-MM-DD>.<ext>.
func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", filenamePrefix, now.Format("2006-01-02"), f.Ext())
}

// Render serializes the full collection to the requested format.
func Render(notes []*note.Note, f Format, now time.Time) ([]byte, error) {
	switch f {
	case FormatJSON:
		return renderJSON(notes)
	case FormatText:
		return renderText(notes), nil
	case FormatMarkdown:
		return renderMarkdown(notes), nil
	case FormatHTML:
		return renderHTML(notes, now)
	default:
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown export format %q", string(f)))
	}
}

// renderJSON produces a pretty-printed, full-fidelity dump of every
// note field. Parsing it back yields a field-for-field equal collection.
func renderJSON(notes []*note.Note) ([]byte, error) {
	if notes == nil {
		notes = []*note.Note{}
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return append(data, '\n'), nil
}

// ParseJSON parses a structured-data export back into a collection.
func ParseJSON(data []byte) ([]*note.Note, error) {
	var notes []*note.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, errors.NewInvalidRequest("not a qnote JSON export: " + err.Error())
	}
	return notes, nil
}

// formatDate renders a note timestamp for the text-bearing formats.
func formatDate(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
}
