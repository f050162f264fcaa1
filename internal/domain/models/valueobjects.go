// Package models defines the domain models for the academic administration service.
// This file contains the validated value objects shared by several aggregates.
package models

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/turtacn/acadmin/pkg/errors"
)

// ================================================================================
// Email
// ================================================================================

// Email is a syntactically valid, lower-cased email address.
type Email string

// NewEmail validates and normalizes an email address.
func NewEmail(raw string) (Email, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", errors.ErrInvalidRequest("email is required")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed || !strings.Contains(trimmed[strings.LastIndex(trimmed, "@")+1:], ".") {
		return "", errors.ErrInvalidRequest(fmt.Sprintf("invalid email: %q", raw))
	}
	return Email(trimmed), nil
}

func (e Email) String() string { return string(e) }

// ================================================================================
// SubjectCode
// ================================================================================

var subjectCodePattern = regexp.MustCompile(`^[A-Z]{2,4}[0-9]{3,4}$`)

// SubjectCode identifies a subject in the catalogue, e.g. "CS101".
type SubjectCode string

// NewSubjectCode upper-cases and validates a subject code.
func NewSubjectCode(raw string) (SubjectCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !subjectCodePattern.MatchString(code) {
		return "", errors.ErrInvalidRequest(fmt.Sprintf("invalid subject code: %q", raw))
	}
	return SubjectCode(code), nil
}

func (c SubjectCode) String() string { return string(c) }

// ================================================================================
// Credits
// ================================================================================

const (
	MinCredits = 1
	MaxCredits = 12
)

// Credits is the academic weight of a subject.
type Credits int

// NewCredits validates the credit range.
func NewCredits(n int) (Credits, error) {
	if n < MinCredits || n > MaxCredits {
		return 0, errors.ErrInvalidRequest(fmt.Sprintf("credits must be between %d and %d, got %d", MinCredits, MaxCredits, n))
	}
	return Credits(n), nil
}

// ================================================================================
// TimeSlot
// ================================================================================

// TimeSlot is a half-open interval [Start, End).
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeSlot builds a slot, normalized to UTC. End must be strictly after Start.
func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if start.IsZero() || end.IsZero() {
		return TimeSlot{}, errors.ErrInvalidRequest("time slot start and end are required")
	}
	if !end.After(start) {
		return TimeSlot{}, errors.ErrInvalidRequest("time slot end must be after start")
	}
	return TimeSlot{Start: start.UTC(), End: end.UTC()}, nil
}

// Overlaps reports whether two slots share any instant. Back-to-back slots do not overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// Duration returns the length of the slot.
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
