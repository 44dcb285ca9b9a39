package entity

// Table is a rectangular grid of string cells. Row 0 is the header row.
//
// The constructor normalizes ragged input by padding short rows with empty
// strings, so every row always has exactly Cols() entries afterwards.
type Table struct {
	cells [][]string
}

// NewTable deep-copies rows into a Table, padding ragged rows to the widest
// row seen. A nil or empty input yields a zero-row table.
func NewTable(rows [][]string) Table {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, width)
		copy(cells[i], row)
	}

	return Table{cells: cells}
}

// Rows returns the number of rows, header included.
func (t Table) Rows() int {
	return len(t.cells)
}

// Cols returns the number of columns, zero for a zero-row table.
func (t Table) Cols() int {
	if len(t.cells) == 0 {
		return 0
	}
	return len(t.cells[0])
}

// InBounds reports whether (row, col) addresses an existing cell.
func (t Table) InBounds(row, col int) bool {
	return row >= 0 && row < t.Rows() && col >= 0 && col < t.Cols()
}

// Cell returns the value at (row, col), or "" when out of bounds.
func (t Table) Cell(row, col int) string {
	if !t.InBounds(row, col) {
		return ""
	}
	return t.cells[row][col]
}

// SetCell writes value at (row, col). Out-of-bounds writes are ignored;
// access control is enforced one level up, by the session.
func (t Table) SetCell(row, col int, value string) {
	if !t.InBounds(row, col) {
		return
	}
	t.cells[row][col] = value
}

// Header returns a copy of row 0, or nil for a zero-row table.
func (t Table) Header() []string {
	if len(t.cells) == 0 {
		return nil
	}
	header := make([]string, len(t.cells[0]))
	copy(header, t.cells[0])
	return header
}

// Records returns a deep copy of all rows, header first.
func (t Table) Records() [][]string {
	out := make([][]string, len(t.cells))
	for i, row := range t.cells {
		out[i] = make([]string, len(row))
		copy(out[i], row)
	}
	return out
}

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	return Table{cells: t.Records()}
}

// Equal reports whether both tables hold the same cells in the same shape.
func (t Table) Equal(other Table) bool {
	if t.Rows() != other.Rows() || t.Cols() != other.Cols() {
		return false
	}
	for i, row := range t.cells {
		for j, cell := range row {
			if cell != other.cells[i][j] {
				return false
			}
		}
	}
	return true
}
