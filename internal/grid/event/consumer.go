package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Radaos/griddle/internal/grid/entity"
)

// AuditSink receives consumed audit events, typically the session store.
type AuditSink interface {
	AppendAudit(ctx context.Context, sessionID string, event entity.AuditEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
}

// AuditConsumer drains the bus with a small worker pool, appends each event
// to the sink with retries, and forwards it to the live watch hub.
//
// Event IDs are used for deduplication so a retried publish cannot double an
// entry on the trail. Seen IDs are never evicted, so the set grows with the
// total event count of one process run; sessions and their trails are
// process-owned, so that is the same lifetime the store itself has.
type AuditConsumer struct {
	bus         *Bus
	sink        AuditSink
	hub         *Hub
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        sync.Map
	wg          sync.WaitGroup
}

func NewAuditConsumer(bus *Bus, sink AuditSink, hub *Hub, cfg ConsumerConfig) *AuditConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 2
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	return &AuditConsumer{
		bus:         bus,
		sink:        sink,
		hub:         hub,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (c *AuditConsumer) Start() {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
}

func (c *AuditConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *AuditConsumer) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.processEvent(event)
	}
}

func (c *AuditConsumer) processEvent(event entity.AuditEvent) {
	if event.EventID != 0 {
		if _, loaded := c.seen.LoadOrStore(event.EventID, struct{}{}); loaded {
			slog.Info("skip duplicate audit event", "event_id", event.EventID, "session_id", event.SessionID)
			return
		}
	}

	if c.sink != nil {
		backoff := c.baseBackoff
		for attempt := 0; ; attempt++ {
			err := c.sink.AppendAudit(context.Background(), event.SessionID, event)
			if err == nil {
				break
			}

			if attempt == c.maxRetries {
				slog.Error("failed to record audit event after retries",
					"event_id", event.EventID, "session_id", event.SessionID, "error", err)
				return
			}

			time.Sleep(backoff)
			backoff *= 2
		}
	}

	if c.hub != nil {
		c.hub.Broadcast(event)
	}
}
