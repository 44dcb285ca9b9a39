package usecase

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Radaos/griddle/internal/grid/entity"
	"github.com/Radaos/griddle/internal/grid/sheetio"
	"github.com/Radaos/griddle/internal/pkg/pkgerror"
)

// CellCommit describes a staged edit that became part of the table.
type CellCommit struct {
	Row   int
	Col   int
	Value string
}

type stagedEdit struct {
	row   int
	col   int
	value string
}

// Session is one modal edit interaction over a single table.
//
// It owns its table exclusively: the input rows are deep-copied on open and
// the final table is handed back on Exit. A mutex serializes all events, so
// Load, Save, cell edits, and Exit are processed strictly one at a time in
// arrival order.
//
// Cell edits are commit-on-focus-loss: EditCell stages a value, and the
// stage joins the table only when a later event touches another cell, when
// the table is saved, or when the session exits. Edits to non-editable
// columns are rejected at entry time, never silently reverted later.
type Session struct {
	mu sync.Mutex

	id    string
	title string
	state entity.SessionState
	table entity.Table
	rule  entity.AccessRule
	mask  entity.EditMask

	staged   *stagedEdit
	cursor   FindCursor
	onCommit func(CellCommit)
}

// NewSession validates rows and opens a session in the editing state.
//
// A nil input fails with a null-input error and a table smaller than 2x2
// (header plus one data row, two columns) fails with an invalid-shape error;
// both abort creation entirely. Ragged input rows are padded the same way
// the CSV reader pads them.
func NewSession(id, title string, rows [][]string, rule entity.AccessRule) (*Session, error) {
	if rows == nil {
		return nil, pkgerror.NewNullInput()
	}

	table := entity.NewTable(rows)
	if table.Rows() < 2 || table.Cols() < 2 {
		return nil, pkgerror.NewInvalidShape(
			fmt.Sprintf("table must be at least 2x2, got %dx%d", table.Rows(), table.Cols()),
		)
	}

	return &Session{
		id:    id,
		title: title,
		state: entity.SessionStateEditing,
		table: table,
		rule:  rule,
		mask:  entity.ComputeMask(table.Cols(), rule),
	}, nil
}

// OnCommit registers a hook invoked for every committed cell edit. The hook
// runs with the session lock held and must not call back into the session.
func (s *Session) OnCommit(fn func(CellCommit)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCommit = fn
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Title returns the dialog title the session was opened with.
func (s *Session) Title() string {
	return s.title
}

// State returns the current lifecycle state.
func (s *Session) State() entity.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Mask returns a copy of the current per-column edit mask.
func (s *Session) Mask() entity.EditMask {
	s.mu.Lock()
	defer s.mu.Unlock()
	mask := make(entity.EditMask, len(s.mask))
	copy(mask, s.mask)
	return mask
}

// Snapshot returns a copy of the committed table. A staged edit that has not
// lost focus yet is not part of the snapshot.
func (s *Session) Snapshot() entity.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Clone()
}

// Cell returns the value at (row, col) as the user currently sees it: the
// staged value when that cell holds the editing focus, the committed value
// otherwise.
func (s *Session) Cell(row, col int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staged != nil && s.staged.row == row && s.staged.col == col {
		return s.staged.value
	}
	return s.table.Cell(row, col)
}

// EditCell stages value at (row, col).
//
// A previously staged edit on a different cell loses focus and is committed
// first. Staging the same cell again just replaces the pending value.
func (s *Session) EditCell(row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEditing(); err != nil {
		return err
	}
	if !s.table.InBounds(row, col) {
		return pkgerror.NewInvalidInput(fmt.Errorf("cell (%d,%d) is out of bounds", row, col))
	}
	if !s.mask.Editable(col) {
		return pkgerror.NewAccessViolation(fmt.Sprintf("column %d is read-only", col))
	}

	if s.staged != nil && (s.staged.row != row || s.staged.col != col) {
		s.commitStagedLocked()
	}
	s.staged = &stagedEdit{row: row, col: col, value: value}

	return nil
}

// CommitPending commits the staged edit, if any, as when the editing focus
// moves somewhere that is not another cell.
func (s *Session) CommitPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitStagedLocked()
}

// DiscardPending drops the staged edit without committing it, as when the
// user cancels the cell editor.
func (s *Session) DiscardPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = nil
}

// Load replaces the whole table, header included, with the CSV file at path
// and recomputes the edit mask for the new column count.
//
// Any failure leaves the session editing its prior table untouched: a
// missing file is a not-found error, a parsed table below the minimum shape
// an invalid-shape error, and other I/O problems server errors. A pending
// staged edit is discarded on success because the cell it targeted no
// longer exists.
func (s *Session) Load(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEditing(); err != nil {
		return err
	}

	table, err := sheetio.ReadFile(path)
	if err != nil {
		if errors.Is(err, sheetio.ErrNotFound) {
			return pkgerror.NewBusiness(fmt.Sprintf("csv file %s does not exist", path), pkgerror.CodeNotFound)
		}
		return pkgerror.NewServer(err)
	}

	if table.Rows() < 2 || table.Cols() < 1 {
		return pkgerror.NewInvalidShape(
			fmt.Sprintf("csv file %s needs a header row and at least one data row", path),
		)
	}

	s.staged = nil
	s.table = table
	s.mask = entity.ComputeMask(table.Cols(), s.rule)
	s.cursor = FindCursor{}

	return nil
}

// Save commits any staged edit and serializes the current table, header row
// first, to the CSV file at path. Failures are server errors and leave the
// session editing.
func (s *Session) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEditing(); err != nil {
		return err
	}

	s.commitStagedLocked()

	if err := sheetio.WriteFile(path, s.table); err != nil {
		return pkgerror.NewServer(err)
	}
	return nil
}

// ExportXLSX commits any staged edit and exports the current table to an
// XLSX workbook at path.
func (s *Session) ExportXLSX(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEditing(); err != nil {
		return err
	}

	s.commitStagedLocked()

	if err := sheetio.WriteXLSX(path, s.table); err != nil {
		return pkgerror.NewServer(err)
	}
	return nil
}

// FindNext advances the session's search cursor to the next cell containing
// query and reports whether a match was found. Changing the query restarts
// the search from the top-left cell.
func (s *Session) FindNext(query string) (FindCursor, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEditing(); err != nil {
		return FindCursor{}, false, err
	}

	cursor, found := findNext(s.table, query, s.cursor)
	if found {
		s.cursor = cursor
	}
	return cursor, found, nil
}

// Exit commits any staged edit, transitions to the terminal exited state,
// and returns the final table. Further events are rejected.
func (s *Session) Exit() (entity.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEditing(); err != nil {
		return entity.Table{}, err
	}

	s.commitStagedLocked()
	s.state = entity.SessionStateExited

	return s.table.Clone(), nil
}

func (s *Session) requireEditing() error {
	if s.state == entity.SessionStateExited {
		return pkgerror.NewBusiness("session already exited", pkgerror.CodeExited)
	}
	if s.state != entity.SessionStateEditing {
		return pkgerror.NewBusiness("session is not accepting events", pkgerror.CodeConflict)
	}
	return nil
}

func (s *Session) commitStagedLocked() {
	if s.staged == nil {
		return
	}

	staged := s.staged
	s.staged = nil
	s.table.SetCell(staged.row, staged.col, staged.value)

	if s.onCommit != nil {
		s.onCommit(CellCommit{Row: staged.row, Col: staged.col, Value: staged.value})
	}
}
