package config

import (
	"strings"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel  = "QUILL_LOG_LEVEL"
	EnvLogFile   = "QUILL_LOG_FILE"
	EnvClipboard = "QUILL_CLIPBOARD"
	EnvReadOnly  = "QUILL_READ_ONLY"
)

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetters maps each variable to the setting it overrides.
// Empty string values are treated as valid values, not as unset.
var envSetters = map[string]func(cfg *Config, val string) error{
	EnvLogLevel: func(cfg *Config, val string) error {
		cfg.Logging.Level = strings.ToLower(val)
		return nil
	},
	EnvLogFile: func(cfg *Config, val string) error {
		cfg.Logging.File = val
		return nil
	},
	EnvClipboard: func(cfg *Config, val string) error {
		cfg.Editor.Clipboard = strings.ToLower(val)
		return nil
	},
	EnvReadOnly: func(cfg *Config, val string) error {
		b, ok := parseBool(val)
		if !ok {
			return invalid(EnvReadOnly, val, "want a boolean")
		}
		cfg.Editor.ReadOnly = b
		return nil
	},
}

// ApplyEnv overrides settings from environment variables.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	for name, set := range envSetters {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(cfg, val); err != nil {
			return err
		}
	}
	return nil
}

// parseBool accepts the spellings people put in environment variables.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0", "":
		return false, true
	}
	return false, false
}
