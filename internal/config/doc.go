// Package config loads runtime configuration for the ContactPro client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-db string             path to the SQLite file holding contacts, backup and theme
//	-log-file string       rotating log file; empty logs to stderr
//	-log-level string      debug | info | warn | error
//	-mode string           repl | tui | http
//	-http-addr string      listen address for http mode
//	-history-limit int     max undo snapshots kept (0 = unbounded)
//	-export-dir string     directory for exported files
//
// # JSON schema
//
//	{
//	  "db_path": "contacts.db",
//	  "log_file": "contactpro.log",
//	  "log_level": "info",
//	  "mode": "repl",
//	  "http_addr": "127.0.0.1:8080",
//	  "history_limit": 0,
//	  "export_dir": ".",
//	  "shutdown_timeout": "5s"
//	}
package config
