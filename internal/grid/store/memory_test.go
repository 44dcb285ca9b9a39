package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Radaos/griddle/internal/grid/entity"
	"github.com/Radaos/griddle/internal/grid/usecase"
	"github.com/Radaos/griddle/internal/pkg/pkgerror"
)

func newSession(t *testing.T, id string) *usecase.Session {
	t.Helper()
	session, err := usecase.NewSession(id, "t", [][]string{{"a", "b"}, {"c", "d"}}, entity.AccessRule{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func TestCreateAndGetSession(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	session := newSession(t, "s-1")
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetSession(ctx, "s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != session {
		t.Fatalf("expected the same session instance back")
	}
}

func TestCreateSessionDuplicate(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	if err := store.CreateSession(ctx, newSession(t, "s-1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := store.CreateSession(ctx, newSession(t, "s-1"))
	if !pkgerror.HasCode(err, pkgerror.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetSessionUnknown(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.GetSession(context.Background(), "nope")
	if !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAppendAndListAudit(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	if err := store.CreateSession(ctx, newSession(t, "s-1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	events := []entity.AuditEvent{
		{EventID: 1, SessionID: "s-1", Action: entity.AuditSessionOpened},
		{EventID: 2, SessionID: "s-1", Action: entity.AuditCellCommitted, Row: 1, Col: 1, Detail: "x"},
	}
	for _, event := range events {
		if err := store.AppendAudit(ctx, "s-1", event); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	trail, err := store.ListAudit(ctx, "s-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trail) != 2 || trail[0].EventID != 1 || trail[1].EventID != 2 {
		t.Fatalf("unexpected trail: %+v", trail)
	}

	// The returned slice is a copy.
	trail[0].EventID = 99
	again, err := store.ListAudit(ctx, "s-1")
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	if again[0].EventID != 1 {
		t.Fatalf("ListAudit leaked internal state")
	}
}

func TestAppendAuditUnknownSession(t *testing.T) {
	store := NewInMemoryStore()

	err := store.AppendAudit(context.Background(), "nope", entity.AuditEvent{EventID: 1})
	if !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
