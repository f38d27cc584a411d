package note

// Settings is the global user configuration consulted by rendering and
// export. Stored in the sync KV namespace, independent of notes.
type Settings struct {
	Theme           string `json:"theme"`
	FontSize        int    `json:"font_size"`
	FontFamily      string `json:"font_family"`
	AutoSave        bool   `json:"auto_save"`
	ExportFormat    string `json:"export_format"`
	BackupFrequency string `json:"backup_frequency"`
}

// DefaultSettings returns the settings used when no stored record exists.
func DefaultSettings() Settings {
	return Settings{
		Theme:           "light",
		FontSize:        14,
		FontFamily:      "system-ui",
		AutoSave:        true,
		ExportFormat:    "json",
		BackupFrequency: "never",
	}
}

// ApplyDefaults fills zero-valued fields from the defaults. A stored
// record may predate newer fields; absent values fall back field-wise.
func (s Settings) ApplyDefaults() Settings {
	def := DefaultSettings()
	if s.Theme == "" {
		s.Theme = def.Theme
	}
	if s.FontSize == 0 {
		s.FontSize = def.FontSize
	}
	if s.FontFamily == "" {
		s.FontFamily = def.FontFamily
	}
	if s.ExportFormat == "" {
		s.ExportFormat = def.ExportFormat
	}
	if s.BackupFrequency == "" {
		s.BackupFrequency = def.BackupFrequency
	}
	return s
}
