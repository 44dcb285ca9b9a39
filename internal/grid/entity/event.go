package entity

import "time"

// AuditEvent records one session action for the audit trail.
//
// EventID is assigned by the publisher so consumers can deduplicate
// redeliveries.
type AuditEvent struct {
	EventID   int64       `json:"event_id"`
	SessionID string      `json:"session_id"`
	Action    AuditAction `json:"action"`
	Row       int         `json:"row"`
	Col       int         `json:"col"`
	Detail    string      `json:"detail,omitempty"`
	At        time.Time   `json:"at"`
}
