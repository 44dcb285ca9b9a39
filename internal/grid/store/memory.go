package store

import (
	"context"
	"sync"

	"github.com/Radaos/griddle/internal/grid/entity"
	"github.com/Radaos/griddle/internal/grid/usecase"
	"github.com/Radaos/griddle/internal/pkg/pkgerror"
)

// InMemoryStore keeps live sessions and their audit trails in process
// memory. Sessions are never persisted; the process owns them for their
// whole lifetime.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]*sessionRecord
}

type sessionRecord struct {
	mu      sync.RWMutex
	session *usecase.Session
	audit   []entity.AuditEvent
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]*sessionRecord),
	}
}

func (s *InMemoryStore) CreateSession(ctx context.Context, session *usecase.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[session.ID()]; exists {
		return pkgerror.NewBusiness("session already exists", pkgerror.CodeConflict)
	}

	s.records[session.ID()] = &sessionRecord{session: session}

	return nil
}

func (s *InMemoryStore) GetSession(ctx context.Context, sessionID string) (*usecase.Session, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	return rec.session, nil
}

// AppendAudit adds one event to the session's audit trail. Events for
// unknown sessions are dropped with an error so the consumer can retry or
// give up.
func (s *InMemoryStore) AppendAudit(ctx context.Context, sessionID string, event entity.AuditEvent) error {
	rec, err := s.get(sessionID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.audit = append(rec.audit, event)

	return nil
}

// ListAudit returns a copy of the session's audit trail, oldest first.
func (s *InMemoryStore) ListAudit(ctx context.Context, sessionID string) ([]entity.AuditEvent, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	out := make([]entity.AuditEvent, len(rec.audit))
	copy(out, rec.audit)

	return out, nil
}

func (s *InMemoryStore) get(sessionID string) (*sessionRecord, error) {
	s.mu.RLock()
	rec, ok := s.records[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}
