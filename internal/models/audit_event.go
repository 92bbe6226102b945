package models

import "time"

// AuditEvent records a completed mutation. Written asynchronously, off the
// request path.
type AuditEvent struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Action     string    `json:"action"`
	Actor      int64     `json:"actor"`
	CreatedAt  time.Time `json:"created_at"`
}
