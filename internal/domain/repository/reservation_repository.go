package repository

import (
	"context"

	"github.com/turtacn/acadmin/internal/domain/models"
)

// ResourceRepository persists bookable resources.
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	FindByID(ctx context.Context, id uint) (*models.Resource, error)
}

// ReservationGuard inspects the booked resource and the non-cancelled
// reservations overlapping the new one. A non-nil error aborts the insert.
type ReservationGuard func(resource *models.Resource, overlapping []*models.Reservation) error

// ReservationRepository persists reservations.
type ReservationRepository interface {
	// CreateGuarded runs guard and the insert as one unit. Calls for the same
	// resource are serialized, so two overlapping reservations cannot both pass.
	// A missing resource is reported as not_found before guard runs.
	CreateGuarded(ctx context.Context, reservation *models.Reservation, guard ReservationGuard) error
	Update(ctx context.Context, reservation *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	// FindOverlapping returns the non-cancelled reservations of a resource that share
	// any instant with slot.
	FindOverlapping(ctx context.Context, resourceID uint, slot models.TimeSlot) ([]*models.Reservation, error)
	ListForResource(ctx context.Context, resourceID uint) ([]*models.Reservation, error)
}
