package inbound

import (
	"net/http"

	"github.com/Radaos/griddle/internal/grid/entity"
	"github.com/Radaos/griddle/internal/grid/usecase"
)

type OpenRequest struct {
	Title        string     `json:"title"`
	Table        [][]string `json:"table"`
	AccessMode   string     `json:"access_mode,omitempty"`
	AccessColumn *int       `json:"access_column,omitempty"`
}

type OpenResponse struct {
	SessionID string              `json:"session_id"`
	State     entity.SessionState `json:"state"`
	Rows      int                 `json:"rows"`
	Cols      int                 `json:"cols"`
	Mask      []bool              `json:"mask"`
}

func (OpenResponse) StatusCode() int {
	return http.StatusCreated
}

func (OpenResponse) Message() string {
	return "session opened"
}

type SessionResponse struct {
	SessionID string              `json:"session_id"`
	Title     string              `json:"title"`
	State     entity.SessionState `json:"state"`
	Table     [][]string          `json:"table"`
	Mask      []bool              `json:"mask"`
}

type EditCellRequest struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

type PathRequest struct {
	Path string `json:"path"`
}

type FindRequest struct {
	Query string `json:"query"`
}

type FindResponse struct {
	SessionID string             `json:"session_id"`
	Cursor    usecase.FindCursor `json:"cursor"`
	Found     bool               `json:"found"`
}

type ExitResponse struct {
	SessionID string     `json:"session_id"`
	Table     [][]string `json:"table"`
}

func (ExitResponse) Message() string {
	return "session exited"
}

type AuditResponse struct {
	SessionID string              `json:"session_id"`
	Events    []entity.AuditEvent `json:"events"`
	total     int
}

func (r AuditResponse) Meta() map[string]any {
	return map[string]any{"total": r.total}
}

func toSessionResponse(res usecase.SessionResult) SessionResponse {
	return SessionResponse{
		SessionID: res.SessionID,
		Title:     res.Title,
		State:     res.State,
		Table:     res.Table.Records(),
		Mask:      res.Mask,
	}
}
