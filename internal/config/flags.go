package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/contactpro/internal/flagx"
)

// parseFlags overlays Config fields with command-line flags. Only the flags
// declared here are picked out of os.Args (see flagx.FilterArgs), so the
// -c/-config flag handled by parseJson does not cause a parse error.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"db", "log-file", "log-level", "mode", "http-addr", "history-limit", "export-dir",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the contacts database")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file (empty for stderr)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "interface: repl, tui or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "listen address for http mode")
	fs.IntVar(&cfg.HistoryLimit, "history-limit", cfg.HistoryLimit, "max undo snapshots (0 = unbounded)")
	fs.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "directory for exported files")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
