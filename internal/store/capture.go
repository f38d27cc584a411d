package store

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"qnote/internal/note"
)

// Capture metadata applied to every captured note.
const (
	CaptureTag      = "captured"
	CaptureCategory = "Captured"
)

// CaptureInput is the tuple supplied by a context-menu or host-page
// integration: the selected text plus the source page metadata.
type CaptureInput struct {
	Selection string
	PageTitle string
	PageURL   string
}

// Capture synthesizes and persists a note from externally supplied
// context. The selection is treated as Markdown and rendered to HTML;
// a source line is appended when a page URL is known. When the input
// carries no usable data the operation silently aborts and no note is
// created: the return is (nil, nil).
func (s *Store) Capture(ctx context.Context, input CaptureInput) (*note.Note, error) {
	selection := strings.TrimSpace(input.Selection)
	pageTitle := strings.TrimSpace(input.PageTitle)
	pageURL := strings.TrimSpace(input.PageURL)

	if selection == "" && pageTitle == "" && pageURL == "" {
		s.log.Debug("capture aborted, no selection and no page context")
		return nil, nil
	}

	var body strings.Builder
	if selection != "" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(selection), &buf); err != nil {
			// Fall back to the raw selection as one paragraph.
			buf.Reset()
			buf.WriteString("<p>" + html.EscapeString(selection) + "</p>")
		}
		body.WriteString(buf.String())
	}
	if pageURL != "" {
		label := pageTitle
		if label == "" {
			label = pageURL
		}
		fmt.Fprintf(&body, `<p>Source: <a href="%s">%s</a></p>`,
			html.EscapeString(pageURL), html.EscapeString(label))
	}

	n := note.New()
	n.Title = pageTitle
	if n.Title == "" {
		n.Title = "Captured Note"
	}
	n.Content = body.String()
	n.Tags = []string{CaptureTag}
	n.Category = CaptureCategory

	saved, err := s.Save(ctx, n, true)
	if err != nil {
		return nil, err
	}

	s.log.Info("note captured",
		zap.String("id", saved.ID),
		zap.String("url", pageURL))
	return saved, nil
}
