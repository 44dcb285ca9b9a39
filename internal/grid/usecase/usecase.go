package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Radaos/griddle/internal/grid/entity"
	"github.com/Radaos/griddle/internal/pkg/pkgerror"
	"github.com/Radaos/griddle/internal/pkg/pkguid"
)

type Store interface {
	CreateSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	ListAudit(ctx context.Context, sessionID string) ([]entity.AuditEvent, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.AuditEvent) error
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store       Store
	Events      EventPublisher
	Clock       Clock
	ID          pkguid.StringID
	Seq         pkguid.NumberID
	DefaultRule entity.AccessRule
	RootCtx     context.Context
}

// Usecase orchestrates grid edit sessions: creation, the events a session
// accepts while editing, and the audit trail each event leaves behind.
type Usecase struct {
	store       Store
	events      EventPublisher
	clock       Clock
	id          pkguid.StringID
	seq         pkguid.NumberID
	defaultRule entity.AccessRule
	rootCtx     context.Context
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	return &Usecase{
		store:       dep.Store,
		events:      dep.Events,
		clock:       clock,
		id:          dep.ID,
		seq:         dep.Seq,
		defaultRule: dep.DefaultRule,
		rootCtx:     root,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Open validates rows and creates a new editing session. When rule is nil
// the configured default access rule applies.
func (u *Usecase) Open(ctx context.Context, title string, rows [][]string, rule *entity.AccessRule) (OpenResult, error) {
	if u.store == nil || u.id == nil {
		return OpenResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	effective := u.defaultRule
	if rule != nil {
		effective = *rule
	}

	session, err := NewSession(u.id.Generate(), title, rows, effective)
	if err != nil {
		return OpenResult{}, normalizeErr(err)
	}

	sessionID := session.ID()
	session.OnCommit(func(commit CellCommit) {
		u.publish(sessionID, entity.AuditCellCommitted, commit.Row, commit.Col, commit.Value)
	})

	if err := u.store.CreateSession(ctx, session); err != nil {
		return OpenResult{}, normalizeErr(err)
	}

	u.publish(sessionID, entity.AuditSessionOpened, 0, 0, title)

	table := session.Snapshot()
	return OpenResult{
		SessionID: sessionID,
		State:     session.State(),
		Rows:      table.Rows(),
		Cols:      table.Cols(),
		Mask:      session.Mask(),
	}, nil
}

// Get returns a point-in-time view of the session's committed table and mask.
func (u *Usecase) Get(ctx context.Context, sessionID string) (SessionResult, error) {
	session, err := u.session(ctx, sessionID)
	if err != nil {
		return SessionResult{}, err
	}

	return SessionResult{
		SessionID: sessionID,
		Title:     session.Title(),
		State:     session.State(),
		Table:     session.Snapshot(),
		Mask:      session.Mask(),
	}, nil
}

// EditCell stages a cell value in the session. Rejected edits of read-only
// columns are recorded on the audit trail and returned to the caller.
func (u *Usecase) EditCell(ctx context.Context, sessionID string, row, col int, value string) error {
	session, err := u.session(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := session.EditCell(row, col, value); err != nil {
		if pkgerror.HasCode(err, pkgerror.CodeForbidden) {
			u.publish(sessionID, entity.AuditEditRejected, row, col, "")
		}
		return normalizeErr(err)
	}

	return nil
}

// Load replaces the session's table with the CSV file at path. Failures are
// non-fatal: the session keeps its prior table and stays in the editing
// state, and the error is reported back for the caller to show the user.
func (u *Usecase) Load(ctx context.Context, sessionID, path string) (SessionResult, error) {
	session, err := u.session(ctx, sessionID)
	if err != nil {
		return SessionResult{}, err
	}

	if err := session.Load(path); err != nil {
		return SessionResult{}, normalizeErr(err)
	}

	u.publish(sessionID, entity.AuditCSVLoaded, 0, 0, path)

	return SessionResult{
		SessionID: sessionID,
		Title:     session.Title(),
		State:     session.State(),
		Table:     session.Snapshot(),
		Mask:      session.Mask(),
	}, nil
}

// Save writes the session's current table to the CSV file at path.
func (u *Usecase) Save(ctx context.Context, sessionID, path string) error {
	session, err := u.session(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := session.Save(path); err != nil {
		return normalizeErr(err)
	}

	u.publish(sessionID, entity.AuditCSVSaved, 0, 0, path)
	return nil
}

// Export writes the session's current table to an XLSX workbook at path.
func (u *Usecase) Export(ctx context.Context, sessionID, path string) error {
	session, err := u.session(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := session.ExportXLSX(path); err != nil {
		return normalizeErr(err)
	}

	u.publish(sessionID, entity.AuditXLSXExported, 0, 0, path)
	return nil
}

// Find advances the session's search cursor to the next match of query.
func (u *Usecase) Find(ctx context.Context, sessionID, query string) (FindResult, error) {
	if query == "" {
		return FindResult{}, pkgerror.NewInvalidInput(errors.New("query is required"))
	}

	session, err := u.session(ctx, sessionID)
	if err != nil {
		return FindResult{}, err
	}

	cursor, found, err := session.FindNext(query)
	if err != nil {
		return FindResult{}, normalizeErr(err)
	}

	return FindResult{SessionID: sessionID, Cursor: cursor, Found: found}, nil
}

// Exit ends the session and returns the final table, header row included.
func (u *Usecase) Exit(ctx context.Context, sessionID string) (ExitResult, error) {
	session, err := u.session(ctx, sessionID)
	if err != nil {
		return ExitResult{}, err
	}

	table, err := session.Exit()
	if err != nil {
		return ExitResult{}, normalizeErr(err)
	}

	u.publish(sessionID, entity.AuditSessionExited, 0, 0, "")

	return ExitResult{SessionID: sessionID, Table: table}, nil
}

// Audit returns the session's recorded audit trail, oldest first.
func (u *Usecase) Audit(ctx context.Context, sessionID string) ([]entity.AuditEvent, error) {
	if _, err := u.session(ctx, sessionID); err != nil {
		return nil, err
	}
	return u.store.ListAudit(ctx, sessionID)
}

func (u *Usecase) session(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, pkgerror.NewInvalidInput(errors.New("session_id is required"))
	}

	session, err := u.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return session, nil
}

func (u *Usecase) publish(sessionID string, action entity.AuditAction, row, col int, detail string) {
	if u.events == nil {
		return
	}

	var eventID int64
	if u.seq != nil {
		eventID = u.seq.Generate()
	}

	event := entity.AuditEvent{
		EventID:   eventID,
		SessionID: sessionID,
		Action:    action,
		Row:       row,
		Col:       col,
		Detail:    detail,
		At:        u.clock.Now(),
	}

	if err := u.events.Publish(u.rootCtx, event); err != nil {
		slog.WarnContext(u.rootCtx, "failed to publish audit event",
			"session_id", sessionID, "action", action, "error", err)
	}
}

func mapStoreErr(err error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness("session not found", pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var appErr *pkgerror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return pkgerror.NewServer(fmt.Errorf("unclassified error: %w", err))
}
