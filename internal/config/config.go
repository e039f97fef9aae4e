package config

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Clipboard backends.
const (
	ClipboardSystem = "system"
	ClipboardMemory = "memory"
)

// Config holds all editor settings.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`

	// Keys maps key specs such as "Ctrl+K" to action names. Entries
	// override the default keymap.
	Keys map[string]string `toml:"keys" yaml:"keys"`
}

// EditorConfig holds editing settings.
type EditorConfig struct {
	ReadOnly    bool   `toml:"read_only" yaml:"read_only"`
	Clipboard   string `toml:"clipboard" yaml:"clipboard"`
	TabWidth    int    `toml:"tab_width" yaml:"tab_width"`
	LineNumbers bool   `toml:"line_numbers" yaml:"line_numbers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`

	// File receives the log. Empty disables logging in terminal mode.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Clipboard: ClipboardSystem,
			TabWidth:  4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Keys: make(map[string]string),
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Keys = maps.Clone(c.Keys)
	if cp.Keys == nil {
		cp.Keys = make(map[string]string)
	}
	return &cp
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Editor.Clipboard {
	case ClipboardSystem, ClipboardMemory:
	default:
		errs = append(errs, invalid("editor.clipboard", c.Editor.Clipboard, "want system or memory"))
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		errs = append(errs, invalid("editor.tab_width", c.Editor.TabWidth, "want 1 to 16"))
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, invalid("logging.level", c.Logging.Level, "want debug, info, warn or error"))
	}

	for spec, action := range c.Keys {
		if strings.TrimSpace(spec) == "" || strings.TrimSpace(action) == "" {
			errs = append(errs, invalid("keys", spec, "empty key or action"))
		}
	}

	return errors.Join(errs...)
}

// DefaultPath returns the user's config file path,
// $XDG_CONFIG_HOME/quill/config.toml or the platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "config.toml")
}
