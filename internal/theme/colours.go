// Package theme holds the Catppuccin palettes and lipgloss styles used by
// the REPL tables and the terminal UI.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/contactpro/internal/models"
)

// ColourScheme is the subset of a Catppuccin flavour the renderers use.
type ColourScheme struct {
	Red      string
	Peach    string
	Yellow   string
	Green    string
	Teal     string
	Blue     string
	Lavender string
	Mauve    string
	Text     string
	Subtext0 string
	Overlay0 string
	Surface1 string
	Surface0 string
	Base     string
}

// Mocha is the dark flavour.
var Mocha = ColourScheme{
	Red:      "#f38ba8",
	Peach:    "#fab387",
	Yellow:   "#f9e2af",
	Green:    "#a6e3a1",
	Teal:     "#94e2d5",
	Blue:     "#89b4fa",
	Lavender: "#b4befe",
	Mauve:    "#cba6f7",
	Text:     "#cdd6f4",
	Subtext0: "#a6adc8",
	Overlay0: "#6c7086",
	Surface1: "#45475a",
	Surface0: "#313244",
	Base:     "#1e1e2e",
}

// Latte is the light flavour.
var Latte = ColourScheme{
	Red:      "#d20f39",
	Peach:    "#fe640b",
	Yellow:   "#df8e1d",
	Green:    "#40a02b",
	Teal:     "#179299",
	Blue:     "#1e66f5",
	Lavender: "#7287fd",
	Mauve:    "#8839ef",
	Text:     "#4c4f69",
	Subtext0: "#6c6f85",
	Overlay0: "#9ca0b0",
	Surface1: "#bcc0cc",
	Surface0: "#ccd0da",
	Base:     "#eff1f5",
}

// Scheme picks the palette for t.
func Scheme(t models.Theme) ColourScheme {
	if t == models.ThemeDark {
		return Mocha
	}
	return Latte
}

// Styles are the lipgloss styles derived from a palette.
type Styles struct {
	Colours  ColourScheme
	Title    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Tag      lipgloss.Style
	Border   lipgloss.Style
}

func NewStyles(t models.Theme) Styles {
	c := Scheme(t)
	return Styles{
		Colours:  c,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Mauve)),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Blue)).Padding(0, 1),
		Cell:     lipgloss.NewStyle().Foreground(lipgloss.Color(c.Text)).Padding(0, 1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Base)).Background(lipgloss.Color(c.Lavender)),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.Overlay0)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.Red)),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color(c.Green)),
		Tag:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Teal)),
		Border:   lipgloss.NewStyle().Foreground(lipgloss.Color(c.Surface1)),
	}
}
