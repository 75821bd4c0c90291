package codec

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/contactpro/internal/common"
	"github.com/dmitrijs2005/contactpro/internal/models"
)

// ExportCSV writes a header and one row per contact. Every cell is quoted
// and embedded quotes are doubled; rows are separated by "\n" with no
// trailing newline.
func ExportCSV(contacts []models.Contact) []byte {
	var b bytes.Buffer
	writeCSVRow(&b, Header)
	for _, c := range contacts {
		b.WriteByte('\n')
		writeCSVRow(&b, toRow(c))
	}
	return b.Bytes()
}

func writeCSVRow(b *bytes.Buffer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
}

// ImportCSV parses quoted CSV. The first record is the header and is
// ignored; blank lines are skipped. A row without exactly five cells
// rejects the whole import.
func ImportCSV(data []byte, st Stamp) ([]models.Contact, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	out := make([]models.Contact, 0)
	header := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv: %v", common.ErrParse, err)
		}
		if header {
			header = false
			continue
		}
		if blankRow(rec) {
			continue
		}
		if len(rec) != len(Header) {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("%w: csv line %d: expected %d cells, got %d",
				common.ErrParse, line, len(Header), len(rec))
		}
		out = append(out, fromRow(rec, st))
	}
	return out, nil
}
