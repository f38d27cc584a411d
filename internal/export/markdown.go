package export

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"qnote/internal/note"
)

// mdRule is one substitution in the fixed, ordered HTML-to-Markdown
// table. The conversion is lossy and best-effort: any
// construct outside the table falls through to the final tag strip,
// which drops the tag and keeps the inner text.
type mdRule struct {
	re   *regexp.Regexp
	repl string
}

var mdRules = buildMDRules()

func buildMDRules() []mdRule {
	rules := []mdRule{
		{regexp.MustCompile(`(?is)<(?:strong|b)\b[^>]*>(.*?)</(?:strong|b)>`), "**$1**"},
		{regexp.MustCompile(`(?is)<(?:em|i)\b[^>]*>(.*?)</(?:em|i)>`), "*$1*"},
		{regexp.MustCompile(`(?is)<u\b[^>]*>(.*?)</u>`), "__$1__"},
	}

	// Headings keep their level.
	for level := 1; level <= 6; level++ {
		rules = append(rules, mdRule{
			regexp.MustCompile(fmt.Sprintf(`(?is)<h%d\b[^>]*>(.*?)</h%d>`, level, level)),
			strings.Repeat("#", level) + " $1\n\n",
		})
	}

	rules = append(rules,
		mdRule{regexp.MustCompile(`(?is)<li\b[^>]*>(.*?)</li>`), "- $1\n"},
		mdRule{regexp.MustCompile(`(?i)<br\s*/?>`), "\n"},
		mdRule{regexp.MustCompile(`(?is)</p>`), "\n\n"},
		mdRule{regexp.MustCompile(`(?is)</div>`), "\n"},
	)

	return rules
}

// ToMarkdown converts note markup to Markdown through the fixed
// substitution table, then strips all remaining tags.
func ToMarkdown(content string) string {
	s := content
	for _, r := range mdRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	s = anyTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = multiBlankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// renderMarkdown produces the Markdown export: per note a level-1
// heading, an emphasized modified date, the converted content, and a
// horizontal-rule separator.
func renderMarkdown(notes []*note.Note) []byte {
	var b strings.Builder

	for _, n := range notes {
		b.WriteString("# ")
		b.WriteString(n.Title)
		b.WriteString("\n\n")
		b.WriteString("*")
		b.WriteString(formatDate(n.Modified))
		b.WriteString("*\n\n")
		b.WriteString(ToMarkdown(n.Content))
		b.WriteString("\n\n---\n\n")
	}

	return []byte(b.String())
}
