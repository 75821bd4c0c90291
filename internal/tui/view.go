package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpNormal = "/ search • t tag • r recent • s sort • a add • e edit • d delete • space select • D delete selected • u/U undo/redo • T theme • b/R backup/restore • x/X export csv/json • i import • q quit"

func (m *Model) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.exportDir, p)
}

func (m *Model) View() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Title.Render("ContactPro"))
	b.WriteString("  ")
	b.WriteString(st.Muted.Render(m.filtersLine()))
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.formView())
	default:
		if m.count == 0 {
			b.WriteString(st.Muted.Render("No contacts found"))
		} else {
			b.WriteString(m.table.View())
		}
		b.WriteString("\n")
		b.WriteString(st.Muted.Render(fmt.Sprintf("%d contact(s)", m.count)))
		if n := len(m.selected); n > 0 {
			b.WriteString(st.Tag.Render(fmt.Sprintf(" • %d selected", n)))
		}
	}
	b.WriteString("\n")

	switch m.mode {
	case modeSearch:
		b.WriteString(m.search.View())
	case modePath:
		b.WriteString(m.path.View())
	case modeConfirm:
		b.WriteString(st.Error.Render(m.prompt + " (y/N)"))
	default:
		if m.err != nil {
			b.WriteString(st.Error.Render("Error: " + m.err.Error()))
		} else if m.status != "" {
			b.WriteString(st.Success.Render(m.status))
		}
	}
	b.WriteString("\n")
	b.WriteString(st.Muted.Render(m.helpLine()))
	return b.String()
}

func (m *Model) filtersLine() string {
	svc := m.d.Service()
	cr := svc.Criteria()
	parts := []string{"sort: " + cr.SortBy}
	if cr.Search != "" {
		parts = append(parts, "search: "+cr.Search)
	}
	if cr.Tag != "" {
		parts = append(parts, "tag: "+cr.Tag)
	}
	if cr.Recent {
		parts = append(parts, "recent")
	}
	if svc.CanUndo() {
		parts = append(parts, "undo")
	}
	if svc.CanRedo() {
		parts = append(parts, "redo")
	}
	return strings.Join(parts, " | ")
}

func (m *Model) helpLine() string {
	switch m.mode {
	case modeForm:
		return "tab/shift+tab move • enter next/save • esc cancel"
	case modeSearch:
		return "type to filter • enter keep • esc clear"
	case modeConfirm:
		return "y confirm • any other key cancels"
	case modePath:
		return "enter import • esc cancel"
	default:
		return helpNormal
	}
}

func (m *Model) formView() string {
	st := m.styles
	title := "New contact"
	if m.editID != "" {
		title = "Edit contact"
	}

	labels := [fieldCount]string{"Name*", "Email*", "Phone", "Address", "Tags"}
	rows := []string{st.Title.Render(title), ""}
	for i := range m.form {
		label := lipgloss.NewStyle().Width(10).Render(labels[i])
		if i == m.focus {
			label = st.Header.UnsetPadding().Width(10).Render(labels[i])
		}
		rows = append(rows, label+m.form[i].View())
	}
	return strings.Join(rows, "\n")
}
