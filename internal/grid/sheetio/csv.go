package sheetio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/Radaos/griddle/internal/grid/entity"
)

var (
	// ErrNotFound is returned by ReadFile when the path does not exist.
	ErrNotFound = errors.New("sheetio: file not found")
)

// Read parses lenient CSV text into a table.
//
// Rows may be ragged; every row is padded on the right with empty strings to
// the widest row seen anywhere in the input, including rows read earlier.
// Empty input yields a zero-row table. No row is ever rejected: a line
// without a comma is a single-field row, an empty line a zero-field row.
func Read(r io.Reader) (entity.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return entity.Table{}, fmt.Errorf("sheetio: read: %w", err)
	}

	text := string(data)
	if text == "" {
		return entity.Table{}, nil
	}

	// Trim the final line terminator only; interior blank lines survive as
	// zero-field rows.
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")

	lines := strings.Split(text, "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		fields := strings.Split(line, ",")
		for j, field := range fields {
			fields[j] = unquoteField(field)
		}
		rows[i] = fields
	}

	return entity.NewTable(rows), nil
}

// ReadFile parses the CSV file at path. A missing path yields ErrNotFound.
func ReadFile(path string) (entity.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entity.Table{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return entity.Table{}, fmt.Errorf("sheetio: open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Write serializes the table as CSV text, header row first. Every field is
// wrapped in double quotes with embedded quotes doubled, and rows end in a
// bare newline.
func Write(w io.Writer, t entity.Table) error {
	bw := bufio.NewWriter(w)

	for _, row := range t.Records() {
		for i, field := range row {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return fmt.Errorf("sheetio: write: %w", err)
				}
			}
			if _, err := bw.WriteString(quoteField(field)); err != nil {
				return fmt.Errorf("sheetio: write: %w", err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("sheetio: write: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("sheetio: flush: %w", err)
	}
	return nil
}

// WriteFile serializes the table to the CSV file at path, creating or
// truncating it.
func WriteFile(path string, t entity.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sheetio: create %s: %w", path, err)
	}

	if err := Write(f, t); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("sheetio: close %s: %w", path, err)
	}
	return nil
}

// unquoteField strips one layer of surrounding double quotes and collapses
// doubled quotes. Best-effort legacy compatibility, not CSV unescaping.
func unquoteField(field string) string {
	if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
		field = field[1 : len(field)-1]
	}
	return strings.ReplaceAll(field, `""`, `"`)
}

func quoteField(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
