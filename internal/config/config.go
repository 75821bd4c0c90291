package config

import (
	"fmt"
	"slices"
	"time"
)

const (
	ModeREPL = "repl"
	ModeTUI  = "tui"
	ModeHTTP = "http"
)

var (
	modes     = []string{ModeREPL, ModeTUI, ModeHTTP}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Config holds runtime settings for the ContactPro client.
type Config struct {
	DBPath          string
	LogFile         string
	LogLevel        string
	Mode            string
	HTTPAddr        string
	HistoryLimit    int
	ExportDir       string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "contacts.db"
	c.LogFile = "contactpro.log"
	c.LogLevel = "info"
	c.Mode = ModeREPL
	c.HTTPAddr = "127.0.0.1:8080"
	c.HistoryLimit = 0
	c.ExportDir = "."
	c.ShutdownTimeout = 5 * time.Second
}

// Validate reports values that the application cannot start with.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if !slices.Contains(modes, c.Mode) {
		return fmt.Errorf("unknown mode %q, expected one of %v", c.Mode, modes)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("unknown log level %q, expected one of %v", c.LogLevel, logLevels)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history limit must not be negative")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
