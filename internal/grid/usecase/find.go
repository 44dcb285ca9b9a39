package usecase

import (
	"strings"

	"github.com/Radaos/griddle/internal/grid/entity"
)

// FindCursor is the session-scoped search position. The zero value means no
// search has run yet; the next FindNext starts at the top-left cell.
type FindCursor struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Query string `json:"query"`
}

// findNext scans the table row-major for the next cell containing query,
// starting at the cell after cur and wrapping around the whole table once.
// Matching is a case-insensitive substring test and includes the header row.
func findNext(t entity.Table, query string, cur FindCursor) (FindCursor, bool) {
	rows, cols := t.Rows(), t.Cols()
	if rows == 0 || cols == 0 || query == "" {
		return cur, false
	}

	needle := strings.ToLower(query)
	total := rows * cols

	// A fresh cursor (or a changed query) restarts before the first cell.
	start := 0
	if cur.Query == query {
		start = cur.Row*cols + cur.Col + 1
	}

	for i := 0; i < total; i++ {
		pos := (start + i) % total
		row, col := pos/cols, pos%cols
		if strings.Contains(strings.ToLower(t.Cell(row, col)), needle) {
			return FindCursor{Row: row, Col: col, Query: query}, true
		}
	}

	return cur, false
}
