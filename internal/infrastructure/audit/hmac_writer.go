package audit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// Signer computes HMAC-SHA256 signatures over audit events.
type Signer struct {
	key []byte
}

// NewSigner returns nil for an empty key; a nil Signer leaves events unsigned.
func NewSigner(key string) *Signer {
	if key == "" {
		return nil
	}
	return &Signer{key: []byte(key)}
}

// signedFields is the canonical form that gets signed. ID and Signature are
// excluded since they are assigned after signing.
type signedFields struct {
	ActorID    uint      `json:"actor_id"`
	Action     string    `json:"action"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	RequestID  string    `json:"request_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Sign returns the base64 signature of event.
func (s *Signer) Sign(event *models.AuditEvent) (string, error) {
	payload, err := json.Marshal(signedFields{
		ActorID:    event.ActorID,
		Action:     event.Action,
		Path:       event.Path,
		Status:     event.Status,
		RequestID:  event.RequestID,
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		return "", err
	}
	h := hmac.New(sha256.New, s.key)
	h.Write(payload)
	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

// Verify reports whether event carries a valid signature.
func (s *Signer) Verify(event *models.AuditEvent) bool {
	if s == nil || event.Signature == "" {
		return false
	}
	expected, err := s.Sign(event)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(event.Signature))
}
