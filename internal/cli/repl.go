package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	BulkDelete(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Tag(ctx context.Context, args []string) error
	Tags(ctx context.Context) error
	Recent(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Theme(ctx context.Context) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Backup(ctx context.Context) error
	Restore(ctx context.Context) error
	Undo(ctx context.Context) error
	Redo(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist                    show contacts with the current filters
  add                       add a contact
  edit <id>                 edit a contact (Enter keeps a value, "-" clears it)
  show <id>                 show one contact
  delete <id>               delete a contact
  bulkdelete <id> [<id>..]  delete several contacts
  search [text]             filter by name or email, no text clears
  tag [name]                filter by tag, no name clears
  tags                      list tags in use
  recent on|off             only contacts created in the last 7 days
  sort name|recent          change the sort order
  theme                     toggle dark/light theme
  export csv|json|xlsx [file]
  import <file.csv|file.json|file.xlsx>
  backup | restore
  undo | redo
  exit | quit`

// runREPL starts a simple read–eval–print loop for the ContactPro CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. Errors returned by handlers are printed and the loop continues. The
// loop exits on EOF or when the user types "exit" or "quit".
//
// The same reader is shared with the interactive prompts of the handlers so
// buffered input is never lost between them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("contactpro %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "add":
			cmdErr = a.Add(ctx)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)
		case "bulkdelete":
			cmdErr = a.BulkDelete(ctx, args)
		case "search":
			cmdErr = a.Search(ctx, args)
		case "tag":
			cmdErr = a.Tag(ctx, args)
		case "tags":
			cmdErr = a.Tags(ctx)
		case "recent":
			cmdErr = a.Recent(ctx, args)
		case "sort":
			cmdErr = a.Sort(ctx, args)
		case "theme":
			cmdErr = a.Theme(ctx)
		case "export":
			cmdErr = a.Export(ctx, args)
		case "import":
			cmdErr = a.Import(ctx, args)
		case "backup":
			cmdErr = a.Backup(ctx)
		case "restore":
			cmdErr = a.Restore(ctx)
		case "undo":
			cmdErr = a.Undo(ctx)
		case "redo":
			cmdErr = a.Redo(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
