package dto

import (
	"time"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// CreateResourceRequest registers a bookable resource.
type CreateResourceRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Kind     string `json:"kind" validate:"required,oneof=room lab equipment"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

// ResourceResponse is the public view of a resource.
type ResourceResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"is_active"`
}

// NewResourceResponse maps a resource.
func NewResourceResponse(r *models.Resource) *ResourceResponse {
	return &ResourceResponse{ID: r.ID, Name: r.Name, Kind: string(r.Kind), Capacity: r.Capacity, IsActive: r.IsActive}
}

// ReserveRequest books a resource.
type ReserveRequest struct {
	ResourceID uint      `json:"resource_id" validate:"required"`
	StartsAt   time.Time `json:"starts_at" validate:"required"`
	EndsAt     time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	Purpose    string    `json:"purpose" validate:"max=500"`
}

// ReservationResponse is the public view of a reservation.
type ReservationResponse struct {
	ID         uint      `json:"id"`
	ResourceID uint      `json:"resource_id"`
	UserID     uint      `json:"user_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Purpose    string    `json:"purpose,omitempty"`
	Status     string    `json:"status"`
}

// NewReservationResponse maps a reservation.
func NewReservationResponse(r *models.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:         r.ID,
		ResourceID: r.ResourceID,
		UserID:     r.UserID,
		StartsAt:   r.Slot.Start,
		EndsAt:     r.Slot.End,
		Purpose:    r.Purpose,
		Status:     string(r.Status),
	}
}
