package mcp

import "github.com/mark3labs/mcp-go/mcp"

var saveToolDef = mcp.NewTool("note_save",
	mcp.WithDescription("Create or update a note. Omit id to create; pass an existing id to update in place. A note with empty title and empty content is rejected."),
	mcp.WithString("id", mcp.Description("Note id; omit to create a new note")),
	mcp.WithString("title", mcp.Description("Note title; empty titles become \"Untitled Note\"")),
	mcp.WithString("content", mcp.Description("Note body as HTML; sanitized before persistence")),
	mcp.WithArray("tags", mcp.Description("Optional tags"), mcp.Items(map[string]any{"type": "string"})),
	mcp.WithString("category", mcp.Description("Optional category label")),
	mcp.WithBoolean("validate", mcp.Description("Reject empty notes (default true)")),
)

var getToolDef = mcp.NewTool("note_get",
	mcp.WithDescription("Fetch a note by id."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
)

var listToolDef = mcp.NewTool("note_list",
	mcp.WithDescription("List all notes, sorted by the given criterion."),
	mcp.WithString("sort", mcp.Description("Sort criterion: modified (default), created, or title")),
)

var searchToolDef = mcp.NewTool("note_search",
	mcp.WithDescription("Case-insensitive substring search over title and content. An empty query returns every note."),
	mcp.WithString("query", mcp.Description("Search query")),
)

var deleteToolDef = mcp.NewTool("note_delete",
	mcp.WithDescription("Delete a note by id. Irreversible; deleting a missing id is a no-op."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
)

var clearToolDef = mcp.NewTool("note_clear",
	mcp.WithDescription("Delete every note. Irreversible. Requires confirm set to the exact phrase DELETE."),
	mcp.WithString("confirm", mcp.Required(), mcp.Description("Must be the exact phrase DELETE")),
)

var captureToolDef = mcp.NewTool("note_capture",
	mcp.WithDescription("Create a note from captured page context. The selection is rendered as Markdown; a source link is appended when a page URL is given. With no usable input, nothing is created."),
	mcp.WithString("selection", mcp.Description("Selected text, treated as Markdown")),
	mcp.WithString("page_title", mcp.Description("Source page title")),
	mcp.WithString("page_url", mcp.Description("Source page URL")),
)

var exportToolDef = mcp.NewTool("note_export",
	mcp.WithDescription("Export the full collection into the export directory. Format defaults to the export_format setting."),
	mcp.WithString("format", mcp.Description("Export format: json, txt, md, or html")),
)

var importToolDef = mcp.NewTool("note_import",
	mcp.WithDescription("Import notes from a JSON export file, merging by id."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Path to a JSON export file")),
	mcp.WithString("mode", mcp.Description("Collision mode: skip (default) or replace")),
)

var settingsGetToolDef = mcp.NewTool("settings_get",
	mcp.WithDescription("Read the settings record, with defaults applied for absent fields."),
)

var settingsUpdateToolDef = mcp.NewTool("settings_update",
	mcp.WithDescription("Update settings fields; omitted fields keep their current values."),
	mcp.WithString("theme", mcp.Description("UI theme")),
	mcp.WithNumber("font_size", mcp.Description("Editor font size")),
	mcp.WithString("font_family", mcp.Description("Editor font family")),
	mcp.WithBoolean("auto_save", mcp.Description("Save edits automatically")),
	mcp.WithString("export_format", mcp.Description("Default export format: json, txt, md, or html")),
	mcp.WithString("backup_frequency", mcp.Description("Backup frequency label")),
)
