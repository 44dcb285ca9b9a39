package sheetio

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Radaos/griddle/internal/grid/entity"
)

const xlsxSheetName = "Sheet1"

// WriteXLSX exports the table to an XLSX workbook with a single sheet,
// header row first. Cells are written as plain strings; no formatting is
// carried over.
func WriteXLSX(path string, t entity.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range t.Records() {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("sheetio: cell name: %w", err)
			}
			if err := f.SetCellStr(xlsxSheetName, cell, value); err != nil {
				return fmt.Errorf("sheetio: set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("sheetio: save %s: %w", path, err)
	}
	return nil
}

// ReadXLSX reads the first sheet of an XLSX workbook back into a table,
// padding ragged rows the same way the CSV reader does.
func ReadXLSX(path string) (entity.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return entity.Table{}, fmt.Errorf("sheetio: open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return entity.Table{}, fmt.Errorf("sheetio: read rows: %w", err)
	}

	return entity.NewTable(rows), nil
}
