// Package config provides the configuration system for Quill.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A missing config file is not an error; the defaults apply.
//
// # Basic Usage
//
//	cfg, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Logging.Level)
//
// # Live Reload
//
// A Watcher reloads the file whenever it changes on disk:
//
//	w, err := config.NewWatcher(path, func(cfg *config.Config, err error) {
//	    if err == nil {
//	        keymap.Apply(cfg.Keys)
//	    }
//	})
//	defer w.Close()
package config
