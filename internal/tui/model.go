// Package tui is the full-screen terminal renderer of ContactPro, built on
// bubbletea. Every key press that changes state is turned into an
// intent.Intent and dispatched; the table is rebuilt from the returned view.
package tui

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/contactpro/internal/intent"
	"github.com/dmitrijs2005/contactpro/internal/logging"
	"github.com/dmitrijs2005/contactpro/internal/models"
	"github.com/dmitrijs2005/contactpro/internal/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeForm
	modeConfirm
	modePath
)

// Form field indices
const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldAddress
	fieldTags
	fieldCount
)

type Model struct {
	ctx       context.Context
	d         *intent.Dispatcher
	log       logging.Logger
	exportDir string

	view     []models.Contact
	count    int
	selected map[string]bool
	tagIdx   int

	table  table.Model
	search textinput.Model
	path   textinput.Model
	form   [fieldCount]textinput.Model
	focus  int
	editID string

	mode    mode
	pending intent.Intent
	prompt  string

	status string
	err    error
	styles theme.Styles

	width  int
	height int
}

func New(ctx context.Context, d *intent.Dispatcher, exportDir string, log logging.Logger) *Model {
	search := textinput.New()
	search.Placeholder = "Search by name or email..."
	search.Prompt = "/ "
	search.CharLimit = 100

	path := textinput.New()
	path.Placeholder = "contacts.csv"
	path.Prompt = "Import file: "

	m := &Model{
		ctx:       ctx,
		d:         d,
		log:       log,
		exportDir: exportDir,
		selected:  make(map[string]bool),
		search:    search,
		path:      path,
		table: table.New(
			table.WithColumns(columns(80)),
			table.WithFocused(true),
			table.WithHeight(15),
		),
	}

	placeholders := [fieldCount]string{"Name (required)", "Email (required)", "Phone", "Address", "Tags, comma separated"}
	for i := range m.form {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 200
		m.form[i] = in
	}

	m.applyTheme(d.Service().Theme())
	m.dispatch(intent.Intent{Kind: intent.List})
	return m
}

func columns(width int) []table.Column {
	// fixed columns take 2+10+16 plus cell padding
	rest := width - 2 - 10 - 16 - 12
	if rest < 36 {
		rest = 36
	}
	return []table.Column{
		{Title: " ", Width: 2},
		{Title: "ID", Width: 10},
		{Title: "Name", Width: rest * 3 / 10},
		{Title: "Email", Width: rest * 4 / 10},
		{Title: "Phone", Width: 16},
		{Title: "Tags", Width: rest - rest*3/10 - rest*4/10},
	}
}

func (m *Model) applyTheme(t models.Theme) {
	m.styles = theme.NewStyles(t)
	c := m.styles.Colours

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(c.Surface1)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(c.Blue))
	ts.Cell = ts.Cell.Foreground(lipgloss.Color(c.Text))
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(c.Base)).
		Background(lipgloss.Color(c.Lavender)).
		Bold(true)
	m.table.SetStyles(ts)

	inputStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Blue))
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Text))
	for i := range m.form {
		m.form[i].PromptStyle = inputStyle
		m.form[i].TextStyle = textStyle
	}
	m.search.PromptStyle = inputStyle
	m.search.TextStyle = textStyle
	m.path.PromptStyle = inputStyle
	m.path.TextStyle = textStyle
}

// dispatch runs in and refreshes the table; errors are kept for the status line.
func (m *Model) dispatch(in intent.Intent) (intent.Result, bool) {
	res, err := m.d.Dispatch(m.ctx, in)
	if err != nil {
		m.err = err
		m.status = ""
		return res, false
	}
	m.err = nil
	m.status = res.Message
	m.applyTheme(res.Theme)
	m.setView(res.View)
	return res, true
}

func (m *Model) setView(view []models.Contact) {
	m.view = view
	m.count = len(view)

	// drop selections that are no longer visible
	visible := make(map[string]bool, len(view))
	for _, c := range view {
		visible[c.ID] = true
	}
	for id := range m.selected {
		if !visible[id] {
			delete(m.selected, id)
		}
	}

	rows := make([]table.Row, 0, len(view))
	for _, c := range view {
		mark := " "
		if m.selected[c.ID] {
			mark = "•"
		}
		rows = append(rows, table.Row{mark, shortID(c.ID), c.Name, c.Email, c.Phone, models.FormatTags(c.Tags)})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *Model) current() (models.Contact, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.view) {
		return models.Contact{}, false
	}
	return m.view[i], true
}

func (m *Model) exportPath(name string) string {
	return filepath.Join(m.exportDir, name)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Run starts the full-screen program and blocks until the user quits or
// ctx is cancelled. Cancellation is a normal exit.
func Run(ctx context.Context, d *intent.Dispatcher, exportDir string, log logging.Logger) error {
	p := tea.NewProgram(New(ctx, d, exportDir, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return exitError(ctx, err)
}

// exitError hides the error bubbletea reports when ctx stopped the program.
func exitError(ctx context.Context, err error) error {
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
