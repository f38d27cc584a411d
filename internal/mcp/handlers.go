package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"qnote/internal/errors"
	"qnote/internal/export"
	"qnote/internal/note"
	"qnote/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store     *store.Store
	exportDir string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store, exportDir string) *Handlers {
	return &Handlers{store: st, exportDir: exportDir}
}

// Request types for each tool

// SaveRequest represents the arguments for note_save.
type SaveRequest struct {
	ID       string   `json:"id,omitempty"`
	Title    string   `json:"title,omitempty"`
	Content  string   `json:"content,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Category string   `json:"category,omitempty"`
	Validate *bool    `json:"validate,omitempty"`
}

// GetRequest represents the arguments for note_get.
type GetRequest struct {
	ID string `json:"id"`
}

// ListRequest represents the arguments for note_list.
type ListRequest struct {
	Sort string `json:"sort,omitempty"`
}

// SearchRequest represents the arguments for note_search.
type SearchRequest struct {
	Query string `json:"query,omitempty"`
}

// DeleteRequest represents the arguments for note_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// ClearRequest represents the arguments for note_clear.
type ClearRequest struct {
	Confirm string `json:"confirm"`
}

// CaptureRequest represents the arguments for note_capture.
type CaptureRequest struct {
	Selection string `json:"selection,omitempty"`
	PageTitle string `json:"page_title,omitempty"`
	PageURL   string `json:"page_url,omitempty"`
}

// ExportRequest represents the arguments for note_export.
type ExportRequest struct {
	Format string `json:"format,omitempty"`
}

// ImportRequest represents the arguments for note_import.
type ImportRequest struct {
	Path string `json:"path"`
	Mode string `json:"mode,omitempty"`
}

// SettingsUpdateRequest represents the arguments for settings_update.
// Pointer fields distinguish "omitted" from zero values.
type SettingsUpdateRequest struct {
	Theme           *string `json:"theme,omitempty"`
	FontSize        *int    `json:"font_size,omitempty"`
	FontFamily      *string `json:"font_family,omitempty"`
	AutoSave        *bool   `json:"auto_save,omitempty"`
	ExportFormat    *string `json:"export_format,omitempty"`
	BackupFrequency *string `json:"backup_frequency,omitempty"`
}

// Handler implementations

// HandleSave handles the note_save tool call.
func (h *Handlers) HandleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SaveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	n := h.store.Create()
	if input.ID != "" {
		existing, err := h.store.Get(input.ID)
		if err != nil {
			return errorResult(err), nil
		}
		n = existing
	}
	n.Title = input.Title
	n.Content = input.Content
	if input.Tags != nil {
		n.Tags = input.Tags
	}
	if input.Category != "" {
		n.Category = input.Category
	}

	validate := true
	if input.Validate != nil {
		validate = *input.Validate
	}

	saved, err := h.store.Save(ctx, n, validate)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(saved)
}

// HandleGet handles the note_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	n, err := h.store.Get(input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(n)
}

// HandleList handles the note_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	notes := h.store.SortBy(store.ParseSortCriterion(input.Sort))
	return successResult(map[string]any{
		"notes": notes,
		"count": len(notes),
	})
}

// HandleSearch handles the note_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	notes := h.store.Search(input.Query)
	if notes == nil {
		notes = []*note.Note{}
	}
	return successResult(map[string]any{
		"notes": notes,
		"count": len(notes),
	})
}

// HandleDelete handles the note_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	deleted, err := h.store.Delete(ctx, input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"deleted": deleted,
		"id":      input.ID,
	})
}

// HandleClear handles the note_clear tool call.
func (h *Handlers) HandleClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ClearRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if input.Confirm != store.ClearConfirmPhrase {
		return errorResult(errors.NewInvalidRequest(
			"clearing all notes requires confirm set to the exact phrase " + store.ClearConfirmPhrase)), nil
	}

	if err := h.store.ClearAll(ctx); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"cleared": true})
}

// HandleCapture handles the note_capture tool call.
func (h *Handlers) HandleCapture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CaptureRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	n, err := h.store.Capture(ctx, store.CaptureInput{
		Selection: input.Selection,
		PageTitle: input.PageTitle,
		PageURL:   input.PageURL,
	})
	if err != nil {
		return errorResult(err), nil
	}
	if n == nil {
		// Missing source data: silent no-op per the capture contract.
		return successResult(map[string]any{"captured": false})
	}

	return successResult(map[string]any{
		"captured": true,
		"note":     n,
	})
}

// HandleExport handles the note_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	name := input.Format
	if name == "" {
		name = h.store.Settings(ctx).ExportFormat
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return errorResult(err), nil
	}

	now := time.Now()
	notes := h.store.Notes()
	data, err := export.Render(notes, format, now)
	if err != nil {
		return errorResult(err), nil
	}

	path, err := export.WriteFile(h.exportDir, export.Filename(format, now), data)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"path":   path,
		"format": string(format),
		"count":  len(notes),
	})
}

// HandleImport handles the note_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.store.Import(ctx, store.ImportInput{
		Path: input.Path,
		Mode: store.ImportMode(input.Mode),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSettingsGet handles the settings_get tool call.
func (h *Handlers) HandleSettingsGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(h.store.Settings(ctx))
}

// HandleSettingsUpdate handles the settings_update tool call.
func (h *Handlers) HandleSettingsUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SettingsUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	settings := h.store.Settings(ctx)
	if input.Theme != nil {
		settings.Theme = *input.Theme
	}
	if input.FontSize != nil {
		settings.FontSize = *input.FontSize
	}
	if input.FontFamily != nil {
		settings.FontFamily = *input.FontFamily
	}
	if input.AutoSave != nil {
		settings.AutoSave = *input.AutoSave
	}
	if input.ExportFormat != nil {
		if _, err := export.ParseFormat(*input.ExportFormat); err != nil {
			return errorResult(err), nil
		}
		settings.ExportFormat = *input.ExportFormat
	}
	if input.BackupFrequency != nil {
		settings.BackupFrequency = *input.BackupFrequency
	}

	if err := h.store.SaveSettings(ctx, settings); err != nil {
		return errorResult(err), nil
	}

	return successResult(settings)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed to avoid leaking paths.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if qErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    qErr.Code,
			"message": qErr.Message,
			"status":  qErr.Status,
		}
		if qErr.Code != errors.ErrInternal && qErr.Details != nil {
			errorObj["details"] = qErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
