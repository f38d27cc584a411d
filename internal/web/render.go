package web

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"qnote/internal/errors"
	"qnote/internal/export"
	"qnote/internal/note"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "notes", "settings"
}

// ListPageData is the template data for the note list page.
type ListPageData struct {
	PageData
	Notes []*note.Note
	Query string
	Sort  string
	Count int
}

// EditPageData is the template data for the note editor page.
type EditPageData struct {
	PageData
	Note    *note.Note
	IsNew   bool
	Content template.HTML
	Error   string
}

// SettingsPageData is the template data for the settings page.
type SettingsPageData struct {
	PageData
	Settings  note.Settings
	NoteCount int
	Formats   []string
	Saved     bool
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"formatTime": formatTime,
		"snippet":    snippet,
		"safeHTML":   func(s string) template.HTML { return template.HTML(s) },
	}

	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"list":     "list.html",
		"edit":     "edit.html",
		"settings": "settings.html",
		"error":    "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPage renders a named page template with HTTP 200.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error page from a qnote error.
func (r *Renderer) renderError(w http.ResponseWriter, err error) {
	var qErr *errors.Error
	if !stderrors.As(err, &qErr) {
		qErr = errors.NewInternal(err)
	}

	r.renderPageStatus(w, qErr.Status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", qErr.Status),
			Version: r.version,
		},
		StatusCode: qErr.Status,
		Message:    qErr.Message,
	})
}

// formatTime formats a Unix timestamp as "2006-01-02 15:04" UTC.
func formatTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
}

// snippet reduces note markup to a short plain-text preview.
func snippet(content string) string {
	const maxChars = 160

	s := export.StripTags(content)
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxChars {
		return s
	}

	runes := []rune(s)
	cut := string(runes[:maxChars])
	if idx := strings.LastIndex(cut, " "); idx > maxChars/2 {
		cut = cut[:idx]
	}
	return cut + "..."
}
