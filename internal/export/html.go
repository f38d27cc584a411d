package export

import (
	"bytes"
	"html/template"
	"time"

	"qnote/internal/errors"
	"qnote/internal/note"
)

// htmlDocument is the single self-contained export document: a minimal
// stylesheet, a header with export date and note count, and one styled
// section per note. Content is embedded as raw markup (it is sanitized
// on every write path), titles and dates are escaped.
const htmlDocument = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Notes Export</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 760px; margin: 2rem auto; padding: 0 1rem; color: #222; }
  header { border-bottom: 2px solid #ddd; padding-bottom: 1rem; margin-bottom: 2rem; }
  header p { color: #666; margin: 0.25rem 0 0; }
  section.note { border: 1px solid #e2e2e2; border-radius: 6px; padding: 1rem 1.25rem; margin-bottom: 1.5rem; }
  section.note h2 { margin: 0 0 0.25rem; }
  .meta { color: #888; font-size: 0.85rem; margin-bottom: 0.75rem; }
  .tag { background: #eef; border-radius: 3px; padding: 0 0.4em; margin-left: 0.3em; font-size: 0.8rem; }
</style>
</head>
<body>
<header>
  <h1>Notes Export</h1>
  <p>Exported {{.ExportedAt}} &middot; {{.Count}} {{if eq .Count 1}}note{{else}}notes{{end}}</p>
</header>
{{range .Notes}}<section class="note">
  <h2>{{.Title}}</h2>
  <div class="meta">Modified {{.Modified}}{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</div>
  <div class="content">{{.Content}}</div>
</section>
{{end}}</body>
</html>
`

var htmlTmpl = template.Must(template.New("export").Parse(htmlDocument))

type htmlNote struct {
	Title    string
	Modified string
	Tags     []string
	Content  template.HTML
}

type htmlData struct {
	ExportedAt string
	Count      int
	Notes      []htmlNote
}

// renderHTML produces the hypertext export document.
func renderHTML(notes []*note.Note, now time.Time) ([]byte, error) {
	data := htmlData{
		ExportedAt: now.UTC().Format("2006-01-02 15:04"),
		Count:      len(notes),
		Notes:      make([]htmlNote, len(notes)),
	}
	for i, n := range notes {
		data.Notes[i] = htmlNote{
			Title:    n.Title,
			Modified: formatDate(n.Modified),
			Tags:     n.Tags,
			Content:  template.HTML(n.Content),
		}
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return nil, errors.NewInternal(err)
	}
	return buf.Bytes(), nil
}
