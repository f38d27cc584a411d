package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"qnote/internal/errors"
	"qnote/internal/kv"
	"qnote/internal/note"
)

// Settings loads the settings record from the sync namespace. Defaults
// apply field-wise when the record is absent, partial, or unreadable;
// a backend failure degrades to defaults and is logged, not returned.
func (s *Store) Settings(ctx context.Context) note.Settings {
	settings := note.DefaultSettings()

	values, err := s.backend.Get(ctx, kv.NamespaceSync, settingsKey)
	if err != nil {
		s.log.Warn("settings load failed, using defaults", zap.Error(err))
		return settings
	}

	data, ok := values[settingsKey]
	if !ok {
		return settings
	}

	// Unmarshal over the defaults so absent fields keep them while an
	// explicit false for auto_save survives.
	if err := json.Unmarshal(data, &settings); err != nil {
		s.log.Warn("stored settings are unreadable, using defaults", zap.Error(err))
		return note.DefaultSettings()
	}

	return settings.ApplyDefaults()
}

// SaveSettings persists the settings record to the sync namespace.
func (s *Store) SaveSettings(ctx context.Context, settings note.Settings) error {
	data, err := json.Marshal(settings.ApplyDefaults())
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := s.backend.Set(ctx, kv.NamespaceSync, map[string][]byte{settingsKey: data}); err != nil {
		s.log.Error("settings write failed", zap.Error(err))
		return errors.NewStorage(err)
	}
	return nil
}
