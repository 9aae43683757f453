package store

import "fmt"

// Config defines settings for the run history store and its rotation.
type Config struct {
	// Backend selects the store type: "jsonl", "sqlite" or "none".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
	// KeepOutcomes stores every trial outcome alongside the summary.
	KeepOutcomes bool `json:"keep_outcomes"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		switch c.Backend {
		case "sqlite":
			c.Path = "runs.db"
		default:
			c.Path = "runs.jsonl"
		}
	}
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = 50
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Backend {
	case "jsonl", "sqlite", "none":
	default:
		return fmt.Errorf("unknown store backend %s", c.Backend)
	}
	if c.Backend != "none" && c.Path == "" {
		return fmt.Errorf("store path is required")
	}
	return nil
}
