package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/contactpro/internal/flagx"
	"github.com/dmitrijs2005/contactpro/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from zero values, so a partial file only overrides what
// it mentions.
type JsonConfig struct {
	DBPath          *string         `json:"db_path"`
	LogFile         *string         `json:"log_file"`
	LogLevel        *string         `json:"log_level"`
	Mode            *string         `json:"mode"`
	HTTPAddr        *string         `json:"http_addr"`
	HistoryLimit    *int            `json:"history_limit"`
	ExportDir       *string         `json:"export_dir"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Without such a flag it does nothing. Read and decode errors panic,
// matching parseFlags.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIfPresent(&cfg.DBPath, jc.DBPath)
	setIfPresent(&cfg.LogFile, jc.LogFile)
	setIfPresent(&cfg.LogLevel, jc.LogLevel)
	setIfPresent(&cfg.Mode, jc.Mode)
	setIfPresent(&cfg.HTTPAddr, jc.HTTPAddr)
	setIfPresent(&cfg.HistoryLimit, jc.HistoryLimit)
	setIfPresent(&cfg.ExportDir, jc.ExportDir)
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
