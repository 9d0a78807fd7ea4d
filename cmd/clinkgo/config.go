package main

import "gitlab.com/tinyland/lab/clinkgo/internal/settings"

// loadSettingsOrDefault loads the effective settings, falling back to
// DefaultConfig() for subcommands (like "history browse" and "doctor")
// that should still work against a history bank even with no settings file
// and a hostile environment.
func loadSettingsOrDefault() (*settings.Config, error) {
	cfg, err := settings.Load()
	if err != nil {
		return settings.DefaultConfig(), err
	}
	return cfg, nil
}
