// Package cli provides the interactive ContactPro command-line client.
//
// App reads commands from a line-oriented REPL, turns each into an
// intent.Intent and prints the refreshed contact table. Destructive
// commands (delete, bulkdelete, restore) ask for confirmation. Export files
// are written under the configured export directory.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See runREPL for the command list.
package cli
