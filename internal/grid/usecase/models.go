package usecase

import "github.com/Radaos/griddle/internal/grid/entity"

// OpenResult is returned when a new session is created.
type OpenResult struct {
	SessionID string
	State     entity.SessionState
	Rows      int
	Cols      int
	Mask      entity.EditMask
}

// SessionResult is a point-in-time view of a session.
type SessionResult struct {
	SessionID string
	Title     string
	State     entity.SessionState
	Table     entity.Table
	Mask      entity.EditMask
}

// FindResult reports the outcome of a find-next request.
type FindResult struct {
	SessionID string
	Cursor    FindCursor
	Found     bool
}

// ExitResult carries the final table handed back to the caller.
type ExitResult struct {
	SessionID string
	Table     entity.Table
}
