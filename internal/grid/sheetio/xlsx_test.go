package sheetio

import (
	"path/filepath"
	"testing"

	"github.com/Radaos/griddle/internal/grid/entity"
)

func TestWriteXLSXReadXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.xlsx")
	table := entity.NewTable([][]string{
		{"id", "name"},
		{"1", "widget"},
		{"2", "gadget"},
	})

	if err := WriteXLSX(path, table); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	got, err := ReadXLSX(path)
	if err != nil {
		t.Fatalf("read xlsx: %v", err)
	}
	if !got.Equal(table) {
		t.Fatalf("round trip changed the table: %v", got.Records())
	}
}

func TestReadXLSXMissingFile(t *testing.T) {
	if _, err := ReadXLSX(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Fatalf("expected an error for a missing workbook")
	}
}
