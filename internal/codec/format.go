package codec

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactpro/internal/common"
	"github.com/dmitrijs2005/contactpro/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Header is the column row of CSV and XLSX exports.
var Header = []string{"Name", "Email", "Phone", "Address", "Tags"}

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, s)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", common.ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// FileName is the default export file name for f.
func (f Format) FileName() string {
	return "contacts." + string(f)
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// Export encodes contacts in canonical order.
func Export(contacts []models.Contact, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportCSV(contacts), nil
	case FormatJSON:
		return ExportJSON(contacts)
	case FormatXLSX:
		return ExportXLSX(contacts)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, f)
	}
}

// Stamp supplies ids and timestamps for rows that carry neither.
type Stamp struct {
	Now   time.Time
	NewID func() string
}

// Import decodes data. JSON keeps the stored ids and timestamps; CSV and
// XLSX rows get fresh ones from st.
func Import(data []byte, f Format, st Stamp) ([]models.Contact, error) {
	switch f {
	case FormatCSV:
		return ImportCSV(data, st)
	case FormatJSON:
		return ImportJSON(data)
	case FormatXLSX:
		return ImportXLSX(data, st)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, f)
	}
}

// fromRow builds a contact from the five tabular columns.
func fromRow(cells []string, st Stamp) models.Contact {
	tags := make([]string, 0)
	for _, t := range strings.Split(cells[4], ";") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return models.Contact{
		ID:      st.NewID(),
		Name:    strings.TrimSpace(cells[0]),
		Email:   strings.TrimSpace(cells[1]),
		Phone:   strings.TrimSpace(cells[2]),
		Address: strings.TrimSpace(cells[3]),
		Tags:    tags,
		Created: st.Now,
		Updated: st.Now,
	}
}

func toRow(c models.Contact) []string {
	return []string{c.Name, c.Email, c.Phone, c.Address, strings.Join(c.Tags, ";")}
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
