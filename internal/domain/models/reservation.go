package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/acadmin/pkg/errors"
)

// ResourceKind classifies bookable resources.
type ResourceKind string

const (
	ResourceRoom      ResourceKind = "room"
	ResourceLab       ResourceKind = "lab"
	ResourceEquipment ResourceKind = "equipment"
)

// ParseResourceKind validates a resource kind.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch k := ResourceKind(strings.ToLower(s)); k {
	case ResourceRoom, ResourceLab, ResourceEquipment:
		return k, nil
	}
	return "", errors.ErrInvalidRequest(fmt.Sprintf("unknown resource kind: %q", s))
}

// Resource is a room, lab or piece of equipment that can be reserved.
type Resource struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Kind     ResourceKind `json:"kind"`
	Capacity int          `json:"capacity"`
	IsActive bool         `json:"is_active"`
}

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Reservation books a resource for a time slot.
type Reservation struct {
	ID         uint              `json:"id"`
	ResourceID uint              `json:"resource_id"`
	UserID     uint              `json:"user_id"`
	Slot       TimeSlot          `json:"slot"`
	Purpose    string            `json:"purpose"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NewReservation creates a pending reservation.
func NewReservation(resourceID, userID uint, slot TimeSlot, purpose string) *Reservation {
	return &Reservation{
		ResourceID: resourceID,
		UserID:     userID,
		Slot:       slot,
		Purpose:    strings.TrimSpace(purpose),
		Status:     ReservationPending,
		CreatedAt:  time.Now().UTC(),
	}
}

// Confirm moves a pending reservation to confirmed.
func (r *Reservation) Confirm() error {
	if r.Status != ReservationPending {
		return errors.ErrConflict(fmt.Sprintf("reservation %d cannot be confirmed from %s", r.ID, r.Status))
	}
	r.Status = ReservationConfirmed
	return nil
}

// Cancel releases the slot. Cancelled is terminal.
func (r *Reservation) Cancel() error {
	if r.Status == ReservationCancelled {
		return errors.ErrConflict(fmt.Sprintf("reservation %d is already cancelled", r.ID))
	}
	r.Status = ReservationCancelled
	return nil
}
