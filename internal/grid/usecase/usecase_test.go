package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Radaos/griddle/internal/grid/entity"
	"github.com/Radaos/griddle/internal/grid/sheetio"
	"github.com/Radaos/griddle/internal/pkg/pkgerror"
)

type testStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	audit    map[string][]entity.AuditEvent
}

func newTestStore() *testStore {
	return &testStore{
		sessions: make(map[string]*Session),
		audit:    make(map[string][]entity.AuditEvent),
	}
}

func (s *testStore) CreateSession(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
	return nil
}

func (s *testStore) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, pkgerror.ErrNotFound
	}
	return session, nil
}

func (s *testStore) ListAudit(ctx context.Context, sessionID string) ([]entity.AuditEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.audit[sessionID], nil
}

type testPublisher struct {
	mu     sync.Mutex
	events []entity.AuditEvent
}

func (p *testPublisher) Publish(ctx context.Context, event entity.AuditEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *testPublisher) actions() []entity.AuditAction {
	p.mu.Lock()
	defer p.mu.Unlock()
	actions := make([]entity.AuditAction, len(p.events))
	for i, event := range p.events {
		actions[i] = event.Action
	}
	return actions
}

type testID struct {
	mu sync.Mutex
	n  int
}

func (t *testID) Generate() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n++
	return fmt.Sprintf("id-%d", t.n)
}

type testSeq struct {
	mu sync.Mutex
	n  int64
}

func (t *testSeq) Generate() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n++
	return t.n
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func newTestUsecase(events *testPublisher, rule entity.AccessRule) (*Usecase, *testStore) {
	store := newTestStore()
	uc := New(Dependency{
		Store:       store,
		Events:      events,
		Clock:       fixedClock{now: time.Unix(123, 0)},
		ID:          &testID{},
		Seq:         &testSeq{},
		DefaultRule: rule,
		RootCtx:     context.Background(),
	})
	return uc, store
}

func TestOpenAppliesDefaultRule(t *testing.T) {
	events := &testPublisher{}
	uc, _ := newTestUsecase(events, entity.AccessRule{Mode: entity.EditModeSingleColumn, Column: entity.LastColumn})

	result, err := uc.Open(context.Background(), "stock", sessionRows(), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if result.SessionID != "id-1" {
		t.Fatalf("unexpected session id: %s", result.SessionID)
	}
	if result.State != entity.SessionStateEditing {
		t.Fatalf("unexpected state: %s", result.State)
	}
	if result.Rows != 3 || result.Cols != 3 {
		t.Fatalf("unexpected shape: %dx%d", result.Rows, result.Cols)
	}
	if result.Mask.Editable(0) || !result.Mask.Editable(2) {
		t.Fatalf("default rule not applied: %v", result.Mask)
	}

	actions := events.actions()
	if len(actions) != 1 || actions[0] != entity.AuditSessionOpened {
		t.Fatalf("unexpected audit actions: %v", actions)
	}
}

func TestOpenExplicitRuleOverridesDefault(t *testing.T) {
	uc, _ := newTestUsecase(&testPublisher{}, entity.AccessRule{Mode: entity.EditModeSingleColumn, Column: 0})

	rule := entity.AccessRule{Mode: entity.EditModeAll}
	result, err := uc.Open(context.Background(), "stock", sessionRows(), &rule)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for col := 0; col < result.Cols; col++ {
		if !result.Mask.Editable(col) {
			t.Fatalf("column %d should be editable: %v", col, result.Mask)
		}
	}
}

func TestOpenRejectsBadInput(t *testing.T) {
	uc, _ := newTestUsecase(&testPublisher{}, entity.AccessRule{})

	if _, err := uc.Open(context.Background(), "t", nil, nil); !pkgerror.HasCode(err, pkgerror.CodeNullInput) {
		t.Fatalf("nil rows: %v", err)
	}
	if _, err := uc.Open(context.Background(), "t", [][]string{{"a"}}, nil); !pkgerror.HasCode(err, pkgerror.CodeInvalidShape) {
		t.Fatalf("tiny table: %v", err)
	}
}

func TestEditCellPublishesCommitOnFocusLoss(t *testing.T) {
	events := &testPublisher{}
	uc, _ := newTestUsecase(events, entity.AccessRule{})

	opened, err := uc.Open(context.Background(), "stock", sessionRows(), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := uc.EditCell(context.Background(), opened.SessionID, 1, 1, "a"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := uc.EditCell(context.Background(), opened.SessionID, 2, 1, "b"); err != nil {
		t.Fatalf("edit: %v", err)
	}

	actions := events.actions()
	want := []entity.AuditAction{entity.AuditSessionOpened, entity.AuditCellCommitted}
	if len(actions) != len(want) || actions[0] != want[0] || actions[1] != want[1] {
		t.Fatalf("unexpected audit actions: %v", actions)
	}
}

func TestEditCellRejectionIsAudited(t *testing.T) {
	events := &testPublisher{}
	uc, _ := newTestUsecase(events, entity.AccessRule{Mode: entity.EditModeSingleColumn, Column: entity.LastColumn})

	opened, err := uc.Open(context.Background(), "stock", sessionRows(), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	err = uc.EditCell(context.Background(), opened.SessionID, 1, 0, "x")
	if !pkgerror.HasCode(err, pkgerror.CodeForbidden) {
		t.Fatalf("expected access violation, got %v", err)
	}

	actions := events.actions()
	if len(actions) != 2 || actions[1] != entity.AuditEditRejected {
		t.Fatalf("unexpected audit actions: %v", actions)
	}
}

func TestUsecaseUnknownSession(t *testing.T) {
	uc, _ := newTestUsecase(&testPublisher{}, entity.AccessRule{})

	if _, err := uc.Get(context.Background(), "nope"); !pkgerror.HasCode(err, pkgerror.CodeNotFound) {
		t.Fatalf("get: %v", err)
	}
	if err := uc.EditCell(context.Background(), "nope", 0, 0, "x"); !pkgerror.HasCode(err, pkgerror.CodeNotFound) {
		t.Fatalf("edit: %v", err)
	}
	if _, err := uc.Exit(context.Background(), "nope"); !pkgerror.HasCode(err, pkgerror.CodeNotFound) {
		t.Fatalf("exit: %v", err)
	}
}

func TestUsecaseEmptySessionID(t *testing.T) {
	uc, _ := newTestUsecase(&testPublisher{}, entity.AccessRule{})

	if _, err := uc.Get(context.Background(), ""); !pkgerror.HasCode(err, pkgerror.CodeInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSaveLoadExitFlow(t *testing.T) {
	events := &testPublisher{}
	uc, _ := newTestUsecase(events, entity.AccessRule{})

	opened, err := uc.Open(context.Background(), "stock", sessionRows(), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sessionID := opened.SessionID

	if err := uc.EditCell(context.Background(), sessionID, 1, 1, "sprocket"); err != nil {
		t.Fatalf("edit: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := uc.Save(context.Background(), sessionID, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := uc.Load(context.Background(), sessionID, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := loaded.Table.Cell(1, 1); got != "sprocket" {
		t.Fatalf("reloaded table missing the edit: %q", got)
	}

	exited, err := uc.Exit(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("exit: %v", err)
	}
	if got := exited.Table.Cell(1, 1); got != "sprocket" {
		t.Fatalf("final table missing the edit: %q", got)
	}

	actions := events.actions()
	want := []entity.AuditAction{
		entity.AuditSessionOpened,
		entity.AuditCellCommitted,
		entity.AuditCSVSaved,
		entity.AuditCSVLoaded,
		entity.AuditSessionExited,
	}
	if len(actions) != len(want) {
		t.Fatalf("unexpected audit actions: %v", actions)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Fatalf("action %d: got %s, want %s", i, actions[i], want[i])
		}
	}
}

func TestLoadFailureDoesNotAudit(t *testing.T) {
	events := &testPublisher{}
	uc, _ := newTestUsecase(events, entity.AccessRule{})

	opened, err := uc.Open(context.Background(), "stock", sessionRows(), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	_, err = uc.Load(context.Background(), opened.SessionID, filepath.Join(t.TempDir(), "missing.csv"))
	if !pkgerror.HasCode(err, pkgerror.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	for _, action := range events.actions() {
		if action == entity.AuditCSVLoaded {
			t.Fatalf("failed load should not be audited as a load")
		}
	}
}

func TestExportWritesWorkbook(t *testing.T) {
	uc, _ := newTestUsecase(&testPublisher{}, entity.AccessRule{})

	opened, err := uc.Open(context.Background(), "stock", sessionRows(), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := uc.Export(context.Background(), opened.SessionID, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	exported, err := sheetio.ReadXLSX(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if exported.Rows() != 3 || exported.Cols() != 3 {
		t.Fatalf("unexpected exported shape: %dx%d", exported.Rows(), exported.Cols())
	}
}

func TestFindRequiresQuery(t *testing.T) {
	uc, _ := newTestUsecase(&testPublisher{}, entity.AccessRule{})

	opened, err := uc.Open(context.Background(), "stock", sessionRows(), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := uc.Find(context.Background(), opened.SessionID, ""); !pkgerror.HasCode(err, pkgerror.CodeInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	result, err := uc.Find(context.Background(), opened.SessionID, "widget")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !result.Found || result.Cursor.Row != 1 || result.Cursor.Col != 1 {
		t.Fatalf("unexpected find result: %+v", result)
	}
}
