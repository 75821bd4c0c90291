package codec

import (
	"bytes"
	"fmt"

	"github.com/dmitrijs2005/contactpro/internal/common"
	"github.com/dmitrijs2005/contactpro/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Contacts"

// ExportXLSX writes a single-sheet workbook with the CSV columns.
func ExportXLSX(contacts []models.Contact) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	header := Header
	if err := xl.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: header: %w", err)
	}

	for i, c := range contacts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
		row := toRow(c)
		if err := xl.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportXLSX reads the first sheet with the same rules as ImportCSV.
// Trailing empty cells are dropped by the spreadsheet, so short rows are
// padded; rows with more than five cells are rejected.
func ImportXLSX(data []byte, st Stamp) ([]models.Contact, error) {
	xl, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", common.ErrParse, err)
	}
	defer func() { _ = xl.Close() }()

	rows, err := xl.GetRows(xl.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", common.ErrParse, err)
	}

	out := make([]models.Contact, 0, len(rows))
	for i, row := range rows {
		if i == 0 || blankRow(row) {
			continue
		}
		if len(row) > len(Header) {
			return nil, fmt.Errorf("%w: xlsx row %d: expected %d cells, got %d",
				common.ErrParse, i+1, len(Header), len(row))
		}
		for len(row) < len(Header) {
			row = append(row, "")
		}
		out = append(out, fromRow(row, st))
	}
	return out, nil
}
