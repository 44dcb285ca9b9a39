package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Radaos/griddle/internal/grid/entity"
	"github.com/Radaos/griddle/internal/pkg/pkgerror"
	"github.com/Radaos/griddle/internal/pkg/pkgrouter"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Open(ctx context.Context, r *http.Request) (any, error) {
	var req OpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, pkgerror.NewInvalidInput(errors.New("invalid request body"))
	}

	rule, err := parseAccessRule(req.AccessMode, req.AccessColumn)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.Open(ctx, req.Title, req.Table, rule)
	if err != nil {
		return nil, err
	}

	return OpenResponse{
		SessionID: result.SessionID,
		State:     result.State,
		Rows:      result.Rows,
		Cols:      result.Cols,
		Mask:      result.Mask,
	}, nil
}

func (h *HTTPEndpoint) Get(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Get(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return toSessionResponse(result), nil
}

func (h *HTTPEndpoint) EditCell(ctx context.Context, r *http.Request) (any, error) {
	var req EditCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, pkgerror.NewInvalidInput(errors.New("invalid request body"))
	}

	sessionID := pkgrouter.GetParam(ctx, "id")
	if err := h.uc.EditCell(ctx, sessionID, req.Row, req.Col, req.Value); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *HTTPEndpoint) Load(ctx context.Context, r *http.Request) (any, error) {
	path, err := decodePath(r)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.Load(ctx, pkgrouter.GetParam(ctx, "id"), path)
	if err != nil {
		return nil, err
	}

	return toSessionResponse(result), nil
}

func (h *HTTPEndpoint) Save(ctx context.Context, r *http.Request) (any, error) {
	path, err := decodePath(r)
	if err != nil {
		return nil, err
	}

	if err := h.uc.Save(ctx, pkgrouter.GetParam(ctx, "id"), path); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *HTTPEndpoint) Export(ctx context.Context, r *http.Request) (any, error) {
	path, err := decodePath(r)
	if err != nil {
		return nil, err
	}

	if err := h.uc.Export(ctx, pkgrouter.GetParam(ctx, "id"), path); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *HTTPEndpoint) Find(ctx context.Context, r *http.Request) (any, error) {
	var req FindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, pkgerror.NewInvalidInput(errors.New("invalid request body"))
	}

	result, err := h.uc.Find(ctx, pkgrouter.GetParam(ctx, "id"), strings.TrimSpace(req.Query))
	if err != nil {
		return nil, err
	}

	return FindResponse{
		SessionID: result.SessionID,
		Cursor:    result.Cursor,
		Found:     result.Found,
	}, nil
}

func (h *HTTPEndpoint) Exit(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Exit(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return ExitResponse{
		SessionID: result.SessionID,
		Table:     result.Table.Records(),
	}, nil
}

func (h *HTTPEndpoint) Audit(ctx context.Context, r *http.Request) (any, error) {
	sessionID := pkgrouter.GetParam(ctx, "id")
	events, err := h.uc.Audit(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return AuditResponse{
		SessionID: sessionID,
		Events:    events,
		total:     len(events),
	}, nil
}

func parseAccessRule(mode string, column *int) (*entity.AccessRule, error) {
	if mode == "" {
		return nil, nil
	}

	switch strings.ToUpper(mode) {
	case string(entity.EditModeAll):
		return &entity.AccessRule{Mode: entity.EditModeAll}, nil
	case string(entity.EditModeSingleColumn):
		col := entity.LastColumn
		if column != nil {
			col = *column
		}
		return &entity.AccessRule{Mode: entity.EditModeSingleColumn, Column: col}, nil
	default:
		return nil, pkgerror.NewInvalidInput(errors.New("invalid access_mode"))
	}
}

func decodePath(r *http.Request) (string, error) {
	var req PathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", pkgerror.NewInvalidInput(errors.New("invalid request body"))
	}

	path := strings.TrimSpace(req.Path)
	if path == "" {
		return "", pkgerror.NewInvalidInput(errors.New("path is required"))
	}
	return path, nil
}
