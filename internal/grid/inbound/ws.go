package inbound

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Radaos/griddle/internal/grid/event"
	"github.com/Radaos/griddle/internal/pkg/pkgrouter"
)

const watchWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same-origin policy is handled by the CORS layer in front of the router.
	CheckOrigin: func(*http.Request) bool { return true },
}

// WatchEndpoint streams a session's audit events over a websocket, one JSON
// message per event.
type WatchEndpoint struct {
	uc  uc
	hub *event.Hub
}

func (w *WatchEndpoint) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	sessionID := pkgrouter.GetParam(r.Context(), "id")

	// Reject unknown sessions before upgrading.
	if _, err := w.uc.Get(r.Context(), sessionID); err != nil {
		http.Error(rw, "session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "websocket upgrade failed", "session_id", sessionID, "error", err)
		return
	}
	defer conn.Close()

	events, cancel := w.hub.Watch(sessionID)
	defer cancel()

	// Drain reads so close frames from the client are noticed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout)); err != nil {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				slog.WarnContext(r.Context(), "websocket write failed", "session_id", sessionID, "error", err)
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
