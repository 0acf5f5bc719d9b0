// Package config loads optional user settings from a TOML file.
//
// Settings live at $XDG_CONFIG_HOME/sizemap/config.toml (or the platform
// equivalent per os.UserConfigDir). A missing file is not an error; every
// field falls back to a sensible default so the tool works unconfigured.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Scan controls the directory walker.
type Scan struct {
	Workers          int  `toml:"workers"`
	ProgressInterval int  `toml:"progress_interval"`
	DiskUsage        bool `toml:"disk_usage"`
	Parallel         bool `toml:"parallel"`
}

// Layout controls the treemap engine.
type Layout struct {
	MinCell float64 `toml:"min_cell"`
	Padding float64 `toml:"padding"`
}

// Config is the full file shape.
type Config struct {
	Scan   Scan   `toml:"scan"`
	Layout Layout `toml:"layout"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Scan:   Scan{Workers: 8, ProgressInterval: 1000, Parallel: true},
		Layout: Layout{MinCell: 1, Padding: 0},
	}
}

// Path returns the expected config file location, or "" if the user
// config directory cannot be determined.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sizemap", "config.toml")
}

// Load reads the config file at path, layering it over Default. An empty
// path or a missing file yields the defaults without error; a file that
// exists but fails to parse is reported.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
