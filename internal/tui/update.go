package tui

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/contactpro/internal/codec"
	"github.com/dmitrijs2005/contactpro/internal/filex"
	"github.com/dmitrijs2005/contactpro/internal/intent"
	"github.com/dmitrijs2005/contactpro/internal/models"
	"github.com/dmitrijs2005/contactpro/internal/query"
	"github.com/dmitrijs2005/contactpro/internal/services"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetColumns(columns(msg.Width))
		if h := msg.Height - 9; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modePath:
			return m.updatePath(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()

	case "t":
		m.cycleTag()

	case "r":
		cr := m.d.Service().Criteria()
		m.dispatch(intent.Intent{Kind: intent.SetFilter, Field: services.FilterRecent, Value: fmt.Sprint(!cr.Recent)})

	case "s":
		next := query.SortByRecent
		if m.d.Service().Criteria().SortBy == query.SortByRecent {
			next = query.SortByName
		}
		m.dispatch(intent.Intent{Kind: intent.SetSort, Value: next})

	case "a":
		m.openForm("", models.Fields{})
		return m, m.form[fieldName].Focus()

	case "e":
		c, ok := m.current()
		if !ok {
			return m, nil
		}
		f, err := m.d.Prefill(c.ID)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.openForm(c.ID, f)
		return m, m.form[fieldName].Focus()

	case "d":
		c, ok := m.current()
		if !ok {
			return m, nil
		}
		m.ask("Are you sure you want to delete this contact?", intent.Intent{Kind: intent.Delete, ID: c.ID})

	case " ":
		c, ok := m.current()
		if !ok {
			return m, nil
		}
		if m.selected[c.ID] {
			delete(m.selected, c.ID)
		} else {
			m.selected[c.ID] = true
		}
		m.setView(m.view)

	case "D":
		if len(m.selected) == 0 {
			m.status = "No contacts selected!"
			return m, nil
		}
		ids := make([]string, 0, len(m.selected))
		for id := range m.selected {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		m.ask(fmt.Sprintf("Delete %d contact(s)?", len(ids)), intent.Intent{Kind: intent.DeleteSelected, IDs: ids})

	case "u":
		m.dispatch(intent.Intent{Kind: intent.Undo})

	case "U", "ctrl+r":
		m.dispatch(intent.Intent{Kind: intent.Redo})

	case "T":
		m.dispatch(intent.Intent{Kind: intent.ToggleTheme})

	case "b":
		m.dispatch(intent.Intent{Kind: intent.Backup})

	case "R":
		has, err := m.d.Service().HasBackup(m.ctx)
		if err != nil {
			m.err = err
			return m, nil
		}
		if !has {
			m.err = nil
			m.status = "No backup found!"
			return m, nil
		}
		m.ask("Restore from backup? This will overwrite current data.", intent.Intent{Kind: intent.Restore})

	case "x":
		m.export(codec.FormatCSV)

	case "X":
		m.export(codec.FormatJSON)

	case "i":
		m.mode = modePath
		m.path.SetValue("")
		return m, m.path.Focus()

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// cycleTag steps the tag filter through "" and every tag in use.
func (m *Model) cycleTag() {
	tags := append([]string{""}, m.d.Service().Tags()...)
	m.tagIdx = (m.tagIdx + 1) % len(tags)
	m.dispatch(intent.Intent{Kind: intent.SetFilter, Field: services.FilterTag, Value: tags[m.tagIdx]})
}

func (m *Model) ask(prompt string, in intent.Intent) {
	m.mode = modeConfirm
	m.prompt = prompt
	m.pending = in
}

func (m *Model) export(f codec.Format) {
	res, ok := m.dispatch(intent.Intent{Kind: intent.Export, Format: string(f)})
	if !ok {
		return
	}
	path := m.exportPath(f.FileName())
	if err := filex.WriteFile(path, res.Data); err != nil {
		m.err = err
		return
	}
	m.log.Info(m.ctx, "contacts exported", "path", path, "format", f)
	m.status = "Exported to " + path
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.mode = modeNormal
		m.dispatch(intent.Intent{Kind: intent.SetFilter, Field: services.FilterSearch, Value: ""})
		return m, nil
	case "enter":
		m.search.Blur()
		m.mode = modeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.dispatch(intent.Intent{Kind: intent.SetFilter, Field: services.FilterSearch, Value: m.search.Value()})
	return m, cmd
}

func (m *Model) openForm(id string, f models.Fields) {
	m.mode = modeForm
	m.editID = id
	m.focus = fieldName
	values := [fieldCount]string{f.Name, f.Email, f.Phone, f.Address, models.FormatTags(f.Tags)}
	for i := range m.form {
		m.form[i].SetValue(values[i])
		m.form[i].CursorEnd()
		m.form[i].Blur()
	}
}

func (m *Model) focusField(i int) tea.Cmd {
	m.form[m.focus].Blur()
	m.focus = (i + fieldCount) % fieldCount
	return m.form[m.focus].Focus()
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.form[m.focus].Blur()
		return m, nil
	case "tab", "down":
		return m, m.focusField(m.focus + 1)
	case "shift+tab", "up":
		return m, m.focusField(m.focus - 1)
	case "enter":
		if m.focus < fieldCount-1 {
			return m, m.focusField(m.focus + 1)
		}
		m.submitForm()
		return m, nil
	}

	var cmd tea.Cmd
	m.form[m.focus], cmd = m.form[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) submitForm() {
	f := models.Fields{
		Name:    m.form[fieldName].Value(),
		Email:   m.form[fieldEmail].Value(),
		Phone:   m.form[fieldPhone].Value(),
		Address: m.form[fieldAddress].Value(),
		Tags:    models.ParseTags(m.form[fieldTags].Value()),
	}

	in := intent.Intent{Kind: intent.Add, Fields: f}
	if m.editID != "" {
		in = intent.Intent{Kind: intent.Edit, ID: m.editID, Fields: f}
	}
	if _, ok := m.dispatch(in); !ok {
		// keep the form open so the user can fix it
		return
	}
	m.form[m.focus].Blur()
	m.mode = modeNormal
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	switch msg.String() {
	case "y", "Y":
		if _, ok := m.dispatch(m.pending); ok && m.pending.Kind == intent.DeleteSelected {
			clear(m.selected)
			m.setView(m.view)
		}
	default:
		m.status = "Cancelled"
	}
	m.pending = intent.Intent{}
	m.prompt = ""
	return m, nil
}

func (m *Model) updatePath(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.path.Blur()
		m.mode = modeNormal
		return m, nil
	case "enter":
		m.path.Blur()
		m.mode = modeNormal
		p := m.path.Value()
		if p == "" {
			return m, nil
		}
		m.dispatch(intent.Intent{Kind: intent.Import, Path: m.resolvePath(p)})
		return m, nil
	}

	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}
