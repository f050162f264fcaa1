package models

import "time"

// AuditEvent records one state-changing API call made by an authenticated user.
type AuditEvent struct {
	ID         uint      `json:"id"`
	ActorID    uint      `json:"actor_id"`
	Action     string    `json:"action"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	RequestID  string    `json:"request_id"`
	OccurredAt time.Time `json:"occurred_at"`
	// Signature is an HMAC over the other fields, empty when no key is configured.
	Signature string `json:"signature,omitempty"`
}
