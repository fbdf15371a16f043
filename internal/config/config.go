// Package config loads runtime settings for the Studyos CLI. Values come
// from defaults, then an optional JSON file, then command-line flags; later
// sources take precedence.
package config

import "github.com/dmitrijs2005/studyos/internal/srs"

// Config holds runtime settings for the Studyos CLI.
//
// Fields:
//   - DatabasePath: location of the local SQLite database file.
//   - NewCardsPerSession: how many unseen cards a session introduces when no
//     reviews are due.
type Config struct {
	DatabasePath       string
	NewCardsPerSession int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "studyos.db"
	c.NewCardsPerSession = srs.DefaultNewCardLimit
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
