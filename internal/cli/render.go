package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/dmitrijs2005/contactpro/internal/intent"
	"github.com/dmitrijs2005/contactpro/internal/models"
	"github.com/dmitrijs2005/contactpro/internal/theme"
)

// termSize is a test seam for term.GetSize.
var termSize = term.GetSize

func termWidth() int {
	w, _, err := termSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	return w
}

const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// render prints the view of res as a table followed by the count and the
// result message.
func (a *App) render(res intent.Result) {
	st := theme.NewStyles(res.Theme)

	if len(res.View) == 0 {
		fmt.Fprintln(a.out, st.Muted.Render("No contacts found"))
	} else {
		fmt.Fprintln(a.out, contactTable(res.View, st))
	}
	fmt.Fprintln(a.out, st.Muted.Render(fmt.Sprintf("%d contact(s)", res.Count)))
	a.message(res)
}

func (a *App) message(res intent.Result) {
	if res.Message == "" {
		return
	}
	st := theme.NewStyles(res.Theme)
	fmt.Fprintln(a.out, st.Success.Render(res.Message))
}

func contactTable(view []models.Contact, st theme.Styles) string {
	rows := make([][]string, 0, len(view))
	for _, c := range view {
		rows = append(rows, []string{shortID(c.ID), c.Name, c.Email, c.Phone, strings.Join(c.Tags, ", ")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.Border).
		Headers("ID", "Name", "Email", "Phone", "Tags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.Header
			case col == 4:
				return st.Tag.Padding(0, 1)
			default:
				return st.Cell
			}
		})

	out := t.Render()
	if w := termWidth(); w > 0 && lipgloss.Width(out) > w {
		out = t.Width(w).Render()
	}
	return out
}

func contactDetails(c models.Contact, st theme.Styles) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", st.Header.Render(fmt.Sprintf("%-8s", label)), value)
	}
	fmt.Fprintln(&b, st.Title.Render(c.Name))
	line("ID", c.ID)
	line("Email", c.Email)
	line("Phone", c.Phone)
	line("Address", c.Address)
	line("Tags", st.Tag.Render(strings.Join(c.Tags, ", ")))
	line("Created", c.Created.Local().Format(time.DateTime))
	line("Updated", c.Updated.Local().Format(time.DateTime))
	return strings.TrimRight(b.String(), "\n")
}
