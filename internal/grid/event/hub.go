package event

import (
	"sync"

	"github.com/Radaos/griddle/internal/grid/entity"
)

// Hub fans consumed audit events out to live watchers, one room per
// session. Watchers that fall behind are dropped rather than blocking the
// consumer.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[chan entity.AuditEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[chan entity.AuditEvent]struct{}),
	}
}

// Watch registers a watcher for one session and returns its event channel
// plus a cancel function. The channel is closed on cancel.
func (h *Hub) Watch(sessionID string) (<-chan entity.AuditEvent, func()) {
	ch := make(chan entity.AuditEvent, 16)

	h.mu.Lock()
	if h.rooms[sessionID] == nil {
		h.rooms[sessionID] = make(map[chan entity.AuditEvent]struct{})
	}
	h.rooms[sessionID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if watchers, ok := h.rooms[sessionID]; ok {
				delete(watchers, ch)
				if len(watchers) == 0 {
					delete(h.rooms, sessionID)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Broadcast delivers event to every watcher of its session without
// blocking; a full watcher buffer loses the event.
func (h *Hub) Broadcast(event entity.AuditEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.rooms[event.SessionID] {
		select {
		case ch <- event:
		default:
		}
	}
}
