// Package intent maps renderer events onto ContactPro operations.
//
// Renderers (REPL, TUI, HTTP) build an Intent and hand it to a Dispatcher
// instead of calling the service directly, so every user action goes
// through one place and produces a uniform Result.
package intent

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/contactpro/internal/common"
	"github.com/dmitrijs2005/contactpro/internal/models"
)

type Kind int

const (
	List Kind = iota
	Add
	Edit
	Delete
	DeleteSelected
	SetFilter
	SetSort
	ToggleTheme
	Export
	Import
	Backup
	Restore
	Undo
	Redo
)

var kindNames = [...]string{
	List:           "list",
	Add:            "add",
	Edit:           "edit",
	Delete:         "delete",
	DeleteSelected: "delete-selected",
	SetFilter:      "set-filter",
	SetSort:        "set-sort",
	ToggleTheme:    "toggle-theme",
	Export:         "export",
	Import:         "import",
	Backup:         "backup",
	Restore:        "restore",
	Undo:           "undo",
	Redo:           "redo",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown intent %q", common.ErrValidation, s)
}

// Intent is one user action. Only the fields relevant to Kind are read.
type Intent struct {
	Kind   Kind
	ID     string        // Edit, Delete
	IDs    []string      // DeleteSelected
	Fields models.Fields // Add, Edit
	Field  string        // SetFilter
	Value  string        // SetFilter, SetSort
	Format string        // Export, Import
	Data   []byte        // Import
	Path   string        // Import from a file when Data is nil
}

// Result is what a renderer needs to repaint after an intent.
type Result struct {
	Kind    Kind
	Contact *models.Contact
	View    []models.Contact
	Count   int
	Removed int
	Data    []byte
	Theme   models.Theme
	// Changed is false for intents that turned out to be no-ops
	// (undo/redo at a boundary, deleting an absent id).
	Changed bool
	Message string
}
