package entity

// LastColumn selects the table's last column in an AccessRule.
const LastColumn = -1

// AccessRule describes which columns of a table accept edits.
//
// Column is only meaningful for EditModeSingleColumn; LastColumn (or any
// negative value) means the rightmost column, and an index beyond the table
// width is clamped to the rightmost column.
type AccessRule struct {
	Mode   EditMode
	Column int
}

// EditMask is a per-column editable flag set.
type EditMask []bool

// Editable reports whether col accepts edits. Out-of-range columns do not.
func (m EditMask) Editable(col int) bool {
	if col < 0 || col >= len(m) {
		return false
	}
	return m[col]
}

// ComputeMask derives the per-column edit mask for a table of cols columns.
//
// Pure function; callers recompute it whenever the column count changes.
func ComputeMask(cols int, rule AccessRule) EditMask {
	if cols <= 0 {
		return EditMask{}
	}

	mask := make(EditMask, cols)

	switch rule.Mode {
	case EditModeSingleColumn:
		idx := rule.Column
		if idx < 0 || idx >= cols {
			idx = cols - 1
		}
		mask[idx] = true
	default:
		for i := range mask {
			mask[i] = true
		}
	}

	return mask
}
