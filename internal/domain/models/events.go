package models

import "time"

// DomainEvent is a fact published to downstream consumers.
type DomainEvent struct {
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// NewDomainEvent stamps an event with the current time.
func NewDomainEvent(eventType, key string, payload interface{}) DomainEvent {
	return DomainEvent{
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// TokenRevokedPayload tells other instances to reject a logged-out token.
type TokenRevokedPayload struct {
	JTI       string    `json:"jti"`
	ExpiresAt time.Time `json:"expires_at"`
}
