package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"qnote/internal/config"
	"qnote/internal/errors"
	"qnote/internal/export"
	"qnote/internal/store"
	"qnote/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *store.Store, cfg *config.Config, exportDir string, log *zap.Logger) *cli.App {
	app := &cli.App{
		Name:    "qnote",
		Usage:   "Local quick-note store",
		Version: Version,
		Commands: []*cli.Command{
			saveCmd(st),
			getCmd(st),
			listCmd(st),
			searchCmd(st),
			deleteCmd(st),
			clearCmd(st),
			captureCmd(st),
			exportCmd(st, exportDir),
			importCmd(st),
			settingsCmd(st),
			webCmd(st, cfg, exportDir, log),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// saveCmd creates the save command.
func saveCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: "Create or update a note (reads content from stdin when piped)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Note id; omit to create a new note"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Note title"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
			&cli.StringFlag{Name: "category", Usage: "Category label"},
			&cli.BoolFlag{Name: "no-validate", Usage: "Allow saving an empty note"},
		},
		Action: func(c *cli.Context) error {
			n := st.Create()
			if id := c.String("id"); id != "" {
				existing, err := st.Get(id)
				if err != nil {
					return outputError(err)
				}
				n = existing
			}

			if c.IsSet("title") {
				n.Title = c.String("title")
			}
			if stdinHasData() {
				content, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				n.Content = content
			}
			if c.IsSet("tags") {
				n.Tags = parseTags(c.String("tags"))
			}
			if c.IsSet("category") {
				n.Category = c.String("category")
			}

			saved, err := st.Save(c.Context, n, !c.Bool("no-validate"))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(saved)
		},
	}
}

// getCmd creates the get command.
func getCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch a note by id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("id is required"))
			}

			n, err := st.Get(c.Args().First())
			if err != nil {
				return outputError(err)
			}

			return outputJSON(n)
		},
	}
}

// listCmd creates the list command.
func listCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all notes",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sort", Aliases: []string{"s"}, Value: "modified", Usage: "Sort criterion: modified|created|title"},
		},
		Action: func(c *cli.Context) error {
			notes := st.SortBy(store.ParseSortCriterion(c.String("sort")))
			return outputJSON(map[string]any{
				"notes": notes,
				"count": len(notes),
			})
		},
	}
}

// searchCmd creates the search command.
func searchCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search notes by title or content substring",
		ArgsUsage: "[query]",
		Action: func(c *cli.Context) error {
			notes := st.Search(strings.Join(c.Args().Slice(), " "))
			return outputJSON(map[string]any{
				"notes": notes,
				"count": len(notes),
			})
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a note by id (irreversible)",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("id is required"))
			}

			id := c.Args().First()
			deleted, err := st.Delete(c.Context, id)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"deleted": deleted,
				"id":      id,
			})
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete every note (irreversible)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "confirm", Usage: "Must be the exact phrase " + store.ClearConfirmPhrase},
		},
		Action: func(c *cli.Context) error {
			if c.String("confirm") != store.ClearConfirmPhrase {
				return outputError(errors.NewInvalidRequest(
					"clearing all notes requires --confirm " + store.ClearConfirmPhrase))
			}

			if err := st.ClearAll(c.Context); err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{"cleared": true})
		},
	}
}

// captureCmd creates the capture command.
func captureCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "capture",
		Usage: "Create a note from captured page context (selection from stdin when piped)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "selection", Usage: "Selected text (overrides stdin)"},
			&cli.StringFlag{Name: "page-title", Usage: "Source page title"},
			&cli.StringFlag{Name: "page-url", Usage: "Source page URL"},
		},
		Action: func(c *cli.Context) error {
			selection := c.String("selection")
			if selection == "" && stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				selection = text
			}

			n, err := st.Capture(c.Context, store.CaptureInput{
				Selection: selection,
				PageTitle: c.String("page-title"),
				PageURL:   c.String("page-url"),
			})
			if err != nil {
				return outputError(err)
			}
			if n == nil {
				return outputJSON(map[string]any{"captured": false})
			}

			return outputJSON(map[string]any{
				"captured": true,
				"note":     n,
			})
		},
	}
}

// exportCmd creates the export command.
func exportCmd(st *store.Store, exportDir string) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the full collection to a file in the export directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Export format: json|txt|md|html (default: the export_format setting)"},
		},
		Action: func(c *cli.Context) error {
			name := c.String("format")
			if name == "" {
				name = st.Settings(c.Context).ExportFormat
			}
			format, err := export.ParseFormat(name)
			if err != nil {
				return outputError(err)
			}

			now := time.Now()
			notes := st.Notes()
			data, err := export.Render(notes, format, now)
			if err != nil {
				return outputError(err)
			}

			path, err := export.WriteFile(exportDir, export.Filename(format, now), data)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"path":   path,
				"format": string(format),
				"count":  len(notes),
			})
		},
	}
}

// importCmd creates the import command.
func importCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import notes from a JSON export file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "skip", Usage: "Collision mode: skip|replace"},
		},
		Action: func(c *cli.Context) error {
			output, err := st.Import(c.Context, store.ImportInput{
				Path: c.String("path"),
				Mode: store.ImportMode(c.String("mode")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// settingsCmd creates the settings command.
func settingsCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show settings, or update the given fields",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "theme", Usage: "UI theme"},
			&cli.IntFlag{Name: "font-size", Usage: "Editor font size"},
			&cli.StringFlag{Name: "font-family", Usage: "Editor font family"},
			&cli.BoolFlag{Name: "auto-save", Usage: "Save edits automatically"},
			&cli.StringFlag{Name: "export-format", Usage: "Default export format: json|txt|md|html"},
			&cli.StringFlag{Name: "backup-frequency", Usage: "Backup frequency label"},
		},
		Action: func(c *cli.Context) error {
			settings := st.Settings(c.Context)

			changed := false
			if c.IsSet("theme") {
				settings.Theme = c.String("theme")
				changed = true
			}
			if c.IsSet("font-size") {
				settings.FontSize = c.Int("font-size")
				changed = true
			}
			if c.IsSet("font-family") {
				settings.FontFamily = c.String("font-family")
				changed = true
			}
			if c.IsSet("auto-save") {
				settings.AutoSave = c.Bool("auto-save")
				changed = true
			}
			if c.IsSet("export-format") {
				if _, err := export.ParseFormat(c.String("export-format")); err != nil {
					return outputError(err)
				}
				settings.ExportFormat = c.String("export-format")
				changed = true
			}
			if c.IsSet("backup-frequency") {
				settings.BackupFrequency = c.String("backup-frequency")
				changed = true
			}

			if changed {
				if err := st.SaveSettings(c.Context, settings); err != nil {
					return outputError(err)
				}
			}

			return outputJSON(settings)
		},
	}
}

// webCmd creates the web command.
func webCmd(st *store.Store, cfg *config.Config, exportDir string, log *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Run the local web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (default from config)"},
			&cli.IntFlag{Name: "port", Usage: "Listen port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			bind := cfg.WebBind
			if c.IsSet("bind") {
				bind = c.String("bind")
			}
			port := cfg.WebPort
			if c.IsSet("port") {
				port = c.Int("port")
			}

			srv := web.NewServer(st, exportDir, Version, bind, port, log)
			return web.Run(srv, log)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if qErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", qErr.Code, qErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
