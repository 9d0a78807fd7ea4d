package settings

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DumpFormat selects Dump's output encoding.
type DumpFormat int

const (
	DumpTOML DumpFormat = iota
	DumpYAML
)

// ParseDumpFormat maps a CLI flag value ("toml", "yaml") to a DumpFormat.
func ParseDumpFormat(s string) (DumpFormat, error) {
	switch strings.ToLower(s) {
	case "", "toml":
		return DumpTOML, nil
	case "yaml", "yml":
		return DumpYAML, nil
	default:
		return DumpTOML, fmt.Errorf("settings: unknown dump format %q", s)
	}
}

// Dump renders the effective configuration for diagnostics, e.g. the
// "clinkgo doctor" subcommand's settings section.
func (c *Config) Dump(format DumpFormat) (string, error) {
	switch format {
	case DumpYAML:
		out, err := yaml.Marshal(c)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
}
