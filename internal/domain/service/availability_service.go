package service

import (
	"context"
	"fmt"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/pkg/errors"
)

// AvailabilityService decides whether a resource can be booked for a slot.
type AvailabilityService struct {
	resources    repository.ResourceRepository
	reservations repository.ReservationRepository
}

// NewAvailabilityService creates an AvailabilityService.
func NewAvailabilityService(resources repository.ResourceRepository, reservations repository.ReservationRepository) *AvailabilityService {
	return &AvailabilityService{resources: resources, reservations: reservations}
}

// IsAvailable reports whether the resource is active and free for the whole slot.
// A missing resource is reported as a not_found error.
func (s *AvailabilityService) IsAvailable(ctx context.Context, resourceID uint, slot models.TimeSlot) (bool, error) {
	resource, err := s.resources.FindByID(ctx, resourceID)
	if err != nil {
		return false, err
	}
	if !resource.IsActive {
		return false, nil
	}
	overlapping, err := s.reservations.FindOverlapping(ctx, resourceID, slot)
	if err != nil {
		return false, err
	}
	return slotFree(resource, overlapping), nil
}

// Book stores the reservation if its slot is free, applying the same rule as
// IsAvailable inside the repository's serialized insert. A taken slot or an
// inactive resource yields a conflict error.
func (s *AvailabilityService) Book(ctx context.Context, reservation *models.Reservation) error {
	return s.reservations.CreateGuarded(ctx, reservation, func(resource *models.Resource, overlapping []*models.Reservation) error {
		if !slotFree(resource, overlapping) {
			return errors.ErrConflict(fmt.Sprintf("resource %d is not available for the requested slot", reservation.ResourceID))
		}
		return nil
	})
}

func slotFree(resource *models.Resource, overlapping []*models.Reservation) bool {
	return resource.IsActive && len(overlapping) == 0
}
