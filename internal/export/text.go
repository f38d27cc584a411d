package export

import (
	"html"
	"regexp"
	"strings"

	"qnote/internal/note"
)

const separatorWidth = 50

var (
	// Block-level closers become line breaks before tags are stripped,
	// so paragraphs stay separated in plain text.
	blockBreakRe = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|li|h[1-6]|blockquote|tr)>`)
	anyTagRe     = regexp.MustCompile(`<[^>]*>`)
	multiBlankRe = regexp.MustCompile(`\n{3,}`)
)

// StripTags converts note markup to plain text: block closers and line
// breaks become newlines, every remaining tag is dropped with its inner
// text kept, and HTML entities are unescaped.
func StripTags(content string) string {
	s := blockBreakRe.ReplaceAllString(content, "\n")
	s = anyTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = multiBlankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// renderText produces the plain-text export: per note a title line, a
// modified-date line, a blank line, the stripped content, and a
// separator line of 50 '=' characters.
func renderText(notes []*note.Note) []byte {
	var b strings.Builder
	separator := strings.Repeat("=", separatorWidth)

	for _, n := range notes {
		b.WriteString(n.Title)
		b.WriteString("\n")
		b.WriteString("Modified: ")
		b.WriteString(formatDate(n.Modified))
		b.WriteString("\n")
		if len(n.Tags) > 0 {
			b.WriteString("Tags: ")
			b.WriteString(strings.Join(n.Tags, ", "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(StripTags(n.Content))
		b.WriteString("\n")
		b.WriteString(separator)
		b.WriteString("\n\n")
	}

	return []byte(b.String())
}
