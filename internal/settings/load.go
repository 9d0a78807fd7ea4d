package settings

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"gitlab.com/tinyland/lab/clinkgo/internal/history"
)

// Load reads configuration from the standard search path:
//  1. $CLINKGO_CONFIG_DIR/settings.toml, if CLINKGO_CONFIG_DIR is set
//  2. %LOCALAPPDATA%/clinkgo/settings.toml (APPDATA as fallback on non-Windows
//     test hosts where LOCALAPPDATA is unset)
//
// If no file exists, returns DefaultConfig() with env overrides applied.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader decodes TOML over DefaultConfig and layers CLINKGO_*
// environment overrides on top.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides lets CLINKGO_* environment variables win over both the
// built-in defaults and a loaded config file, for the settings most useful
// to flip without editing a file (CI, one-off debugging sessions).
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CLINKGO_HISTORY_MAX_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.MaxLines = n
		}
	}
	if v := os.Getenv("CLINKGO_HISTORY_SHARED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.History.Shared = b
		}
	}
	if v := os.Getenv("CLINKGO_HISTORY_IGNORE_SPACE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.History.IgnoreSpace = b
		}
	}
	if v := os.Getenv("CLINKGO_HISTORY_DUPE_MODE"); v != "" {
		var m history.DupeMode
		if err := m.UnmarshalText([]byte(v)); err == nil {
			cfg.History.DupeMode = m
		}
	}
	if v := os.Getenv("CLINKGO_MATCH_TRANSLATE_SLASHES"); v != "" {
		var m SlashMode
		if err := m.UnmarshalText([]byte(v)); err == nil {
			cfg.Match.TranslateSlashes = m
		}
	}
	if v := os.Getenv("CLINKGO_MATCH_IGNORE_CASE"); v != "" {
		var m CaseMode
		if err := m.UnmarshalText([]byte(v)); err == nil {
			cfg.Match.IgnoreCase = m
		}
	}
	if v := os.Getenv("CLINKGO_AUTOSUGGEST_ENABLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Autosuggest.Enable = b
		}
	}
	if v := os.Getenv("CLINKGO_AUTOSUGGEST_STRATEGY"); v != "" {
		var s AutosuggestStrategy
		if err := s.UnmarshalText([]byte(v)); err == nil {
			cfg.Autosuggest.Strategy = s
		}
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	var paths []string
	if dir := os.Getenv("CLINKGO_CONFIG_DIR"); dir != "" {
		paths = append(paths, filepath.Join(dir, "settings.toml"))
	}
	if dir := localAppDataDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "clinkgo", "settings.toml"))
	}
	return paths
}

// localAppDataDir mirrors the %LOCALAPPDATA% Windows convention clink
// itself uses for its profile directory, falling back to APPDATA/HOME so
// the search path still resolves to something sane off-Windows (tests,
// WSL development of this module).
func localAppDataDir() string {
	if v := os.Getenv("LOCALAPPDATA"); v != "" {
		return v
	}
	if v := os.Getenv("APPDATA"); v != "" {
		return v
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share")
	}
	return ""
}
