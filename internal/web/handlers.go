package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"qnote/internal/errors"
	"qnote/internal/export"
	"qnote/internal/note"
	"qnote/internal/store"
)

// exportFormats is the choice list offered on the settings page.
var exportFormats = []string{"json", "txt", "md", "html"}

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	store     *store.Store
	exportDir string
	renderer  *Renderer
	log       *zap.Logger
}

// HandleList handles GET /notes, the searchable, sortable note list.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	sortParam := r.URL.Query().Get("sort")
	criterion := store.ParseSortCriterion(sortParam)

	var notes []*note.Note
	if strings.TrimSpace(query) != "" {
		notes = h.store.Search(query)
		notes = store.SortView(notes, criterion)
	} else {
		notes = h.store.SortBy(criterion)
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: PageData{
			Title:   "Notes",
			Version: h.renderer.version,
			Nav:     "notes",
		},
		Notes: notes,
		Query: query,
		Sort:  string(criterion),
		Count: len(notes),
	})
}

// HandleNew handles GET /notes/new, the editor for a transient note.
func (h *Handlers) HandleNew(w http.ResponseWriter, r *http.Request) {
	n := h.store.Create()
	h.renderer.renderPage(w, "edit", EditPageData{
		PageData: PageData{
			Title:   "New Note",
			Version: h.renderer.version,
			Nav:     "notes",
		},
		Note:  n,
		IsNew: true,
	})
}

// HandleEdit handles GET /notes/{id}, the editor for an existing note.
func (h *Handlers) HandleEdit(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	h.renderer.renderPage(w, "edit", EditPageData{
		PageData: PageData{
			Title:   n.Title,
			Version: h.renderer.version,
			Nav:     "notes",
		},
		Note:    n,
		Content: template.HTML(n.Content),
	})
}

// HandleSave handles POST /notes/save.
func (h *Handlers) HandleSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, errors.NewInvalidRequest("bad form data"))
		return
	}

	id := r.PostFormValue("id")
	n := h.store.Create()
	isNew := true
	if id != "" {
		if existing, err := h.store.Get(id); err == nil {
			n = existing
			isNew = false
		} else {
			// Transient note from /notes/new keeps the id it was created with.
			n.ID = id
		}
	}
	n.Title = r.PostFormValue("title")
	n.Content = r.PostFormValue("content")

	saved, err := h.store.Save(r.Context(), n, true)
	if err != nil {
		if errors.Is(err, errors.ErrEmptyNote) {
			// Rejection is a prompt, not an error page.
			h.renderer.renderPageStatus(w, http.StatusUnprocessableEntity, "edit", EditPageData{
				PageData: PageData{
					Title:   "New Note",
					Version: h.renderer.version,
					Nav:     "notes",
				},
				Note:  n,
				IsNew: isNew,
				Error: "Cannot save an empty note. Add a title or some content.",
			})
			return
		}
		h.renderer.renderError(w, err)
		return
	}

	http.Redirect(w, r, "/notes/"+saved.ID, http.StatusSeeOther)
}

// HandleDelete handles POST /notes/{id}/delete.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.renderer.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

// HandleClear handles POST /notes/clear. The typed confirmation phrase
// is the caller-side gesture the store trusts.
func (h *Handlers) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, errors.NewInvalidRequest("bad form data"))
		return
	}

	if r.PostFormValue("confirm") != store.ClearConfirmPhrase {
		h.renderer.renderError(w, errors.NewInvalidRequest(
			fmt.Sprintf("type %s to confirm clearing all notes", store.ClearConfirmPhrase)))
		return
	}

	if err := h.store.ClearAll(r.Context()); err != nil {
		h.renderer.renderError(w, err)
		return
	}

	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

// HandleSettings handles GET /settings, the options surface.
func (h *Handlers) HandleSettings(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "settings", SettingsPageData{
		PageData: PageData{
			Title:   "Settings",
			Version: h.renderer.version,
			Nav:     "settings",
		},
		Settings:  h.store.Settings(r.Context()),
		NoteCount: h.store.Len(),
		Formats:   exportFormats,
		Saved:     r.URL.Query().Get("saved") == "1",
	})
}

// HandleSettingsSave handles POST /settings.
func (h *Handlers) HandleSettingsSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, errors.NewInvalidRequest("bad form data"))
		return
	}

	settings := h.store.Settings(r.Context())
	settings.Theme = r.PostFormValue("theme")
	settings.FontFamily = r.PostFormValue("font_family")
	settings.AutoSave = r.PostFormValue("auto_save") == "on"
	settings.BackupFrequency = r.PostFormValue("backup_frequency")

	if size, err := strconv.Atoi(r.PostFormValue("font_size")); err == nil && size > 0 {
		settings.FontSize = size
	}
	if f := r.PostFormValue("export_format"); f != "" {
		if _, err := export.ParseFormat(f); err != nil {
			h.renderer.renderError(w, err)
			return
		}
		settings.ExportFormat = f
	}

	if err := h.store.SaveSettings(r.Context(), settings); err != nil {
		h.renderer.renderError(w, err)
		return
	}

	http.Redirect(w, r, "/settings?saved=1", http.StatusSeeOther)
}

// HandleExport handles GET /export. Serves the rendered export as a
// file download, the web analog of "save bytes as a downloadable file".
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = h.store.Settings(r.Context()).ExportFormat
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	now := time.Now()
	data, err := export.Render(h.store.Notes(), format, now)
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	filename := export.Filename(format, now)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)

	h.log.Info("collection exported",
		zap.String("format", string(format)),
		zap.String("filename", filename))
}
