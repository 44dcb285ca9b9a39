package event

import (
	"testing"

	"github.com/Radaos/griddle/internal/grid/entity"
)

func TestHubBroadcastReachesSessionWatchers(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Watch("s-1")
	defer cancel1()
	ch2, cancel2 := hub.Watch("s-2")
	defer cancel2()

	hub.Broadcast(entity.AuditEvent{EventID: 1, SessionID: "s-1"})

	got := <-ch1
	if got.EventID != 1 {
		t.Fatalf("unexpected event: %+v", got)
	}

	select {
	case event := <-ch2:
		t.Fatalf("watcher of another session received %+v", event)
	default:
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Watch("s-1")
	cancel()
	cancel() // idempotent

	if _, open := <-ch; open {
		t.Fatalf("expected a closed channel after cancel")
	}

	// Broadcasting after cancel must not panic or deliver.
	hub.Broadcast(entity.AuditEvent{EventID: 2, SessionID: "s-1"})
}

func TestHubSlowWatcherDropsEvents(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Watch("s-1")
	defer cancel()

	// Overfill the watcher buffer; Broadcast must never block.
	for i := 0; i < 100; i++ {
		hub.Broadcast(entity.AuditEvent{EventID: int64(i + 1), SessionID: "s-1"})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	if received == 0 || received >= 100 {
		t.Fatalf("expected some but not all events, got %d", received)
	}
}
