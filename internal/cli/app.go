package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/contactpro/internal/intent"
	"github.com/dmitrijs2005/contactpro/internal/logging"
)

type App struct {
	d         *intent.Dispatcher
	reader    *bufio.Reader
	out       io.Writer
	exportDir string
	log       logging.Logger
}

func NewApp(d *intent.Dispatcher, exportDir string, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		d:         d,
		reader:    bufio.NewReader(in),
		out:       out,
		exportDir: exportDir,
		log:       log,
	}
}

// Run prints the contact list and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to ContactPro (type 'help' for commands)")
	if err := a.List(ctx); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
	}
	runREPL(ctx, a, a.status, a.reader)
	a.log.Info(ctx, "repl finished")
}

// status summarises the active filters for the prompt.
func (a *App) status() string {
	svc := a.d.Service()
	cr := svc.Criteria()

	parts := []string{fmt.Sprintf("%d/%d", svc.Count(), svc.Total())}
	if cr.Search != "" {
		parts = append(parts, "search:"+cr.Search)
	}
	if cr.Tag != "" {
		parts = append(parts, "tag:"+cr.Tag)
	}
	if cr.Recent {
		parts = append(parts, "recent")
	}
	if cr.SortBy != "" {
		parts = append(parts, "sort:"+cr.SortBy)
	}
	return "(" + strings.Join(parts, " ") + ")"
}
