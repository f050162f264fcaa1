package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

// ReservationAppService defines the resource booking use cases.
type ReservationAppService interface {
	CreateResource(ctx context.Context, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error)
	Reserve(ctx context.Context, userID uint, req *dto.ReserveRequest) (*dto.ReservationResponse, error)
	Confirm(ctx context.Context, reservationID uint) (*dto.ReservationResponse, error)
	// Cancel releases a reservation. Only its owner or an admin may cancel it.
	Cancel(ctx context.Context, reservationID uint, actor *models.Claims) (*dto.ReservationResponse, error)
	ListForResource(ctx context.Context, resourceID uint) ([]*dto.ReservationResponse, error)
}

type reservationAppServiceImpl struct {
	resources    repository.ResourceRepository
	reservations repository.ReservationRepository
	availability *service.AvailabilityService
	publisher    service.EventPublisher
	metrics      service.Metrics
	logger       logger.Logger
}

// NewReservationAppService creates a new instance of ReservationAppService.
func NewReservationAppService(
	resources repository.ResourceRepository,
	reservations repository.ReservationRepository,
	publisher service.EventPublisher,
	metrics service.Metrics,
	log logger.Logger,
) ReservationAppService {
	if metrics == nil {
		metrics = service.NewNoopMetrics()
	}
	return &reservationAppServiceImpl{
		resources:    resources,
		reservations: reservations,
		availability: service.NewAvailabilityService(resources, reservations),
		publisher:    publisher,
		metrics:      metrics,
		logger:       log.WithComponent("reservation_app_service"),
	}
}

func (s *reservationAppServiceImpl) CreateResource(ctx context.Context, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	kind, err := models.ParseResourceKind(req.Kind)
	if err != nil {
		return nil, err
	}
	resource := &models.Resource{
		Name:     strings.TrimSpace(req.Name),
		Kind:     kind,
		Capacity: req.Capacity,
		IsActive: true,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, errors.Wrap(err, "failed to create resource")
	}
	s.logger.Info(ctx, "Resource created", logger.Uint("resource_id", resource.ID), logger.String("kind", string(kind)))
	return dto.NewResourceResponse(resource), nil
}

func (s *reservationAppServiceImpl) Reserve(ctx context.Context, userID uint, req *dto.ReserveRequest) (*dto.ReservationResponse, error) {
	slot, err := models.NewTimeSlot(req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}

	reservation := models.NewReservation(req.ResourceID, userID, slot, req.Purpose)
	if err := s.availability.Book(ctx, reservation); err != nil {
		if errors.IsConflict(err) {
			s.metrics.RecordReservationConflict()
			s.logger.Info(ctx, "Reservation conflict", logger.Uint("resource_id", req.ResourceID))
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to create reservation")
	}

	resp := dto.NewReservationResponse(reservation)
	s.publish(ctx, constants.EventReservationCreated, reservation.ID, resp)
	s.logger.Info(ctx, "Reservation created", logger.Uint("reservation_id", reservation.ID), logger.Uint("resource_id", req.ResourceID))
	return resp, nil
}

func (s *reservationAppServiceImpl) Confirm(ctx context.Context, reservationID uint) (*dto.ReservationResponse, error) {
	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := reservation.Confirm(); err != nil {
		return nil, err
	}
	if err := s.reservations.Update(ctx, reservation); err != nil {
		return nil, errors.Wrap(err, "failed to confirm reservation")
	}
	s.logger.Info(ctx, "Reservation confirmed", logger.Uint("reservation_id", reservationID))
	return dto.NewReservationResponse(reservation), nil
}

func (s *reservationAppServiceImpl) Cancel(ctx context.Context, reservationID uint, actor *models.Claims) (*dto.ReservationResponse, error) {
	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if actor == nil || (actor.UserID != reservation.UserID && !actor.HasRole(models.RoleAdmin)) {
		return nil, errors.ErrForbidden("only the owner or an admin can cancel a reservation")
	}
	if err := reservation.Cancel(); err != nil {
		return nil, err
	}
	if err := s.reservations.Update(ctx, reservation); err != nil {
		return nil, errors.Wrap(err, "failed to cancel reservation")
	}

	resp := dto.NewReservationResponse(reservation)
	s.publish(ctx, constants.EventReservationCanceled, reservation.ID, resp)
	s.logger.Info(ctx, "Reservation cancelled", logger.Uint("reservation_id", reservationID), logger.Uint("by", actor.UserID))
	return resp, nil
}

func (s *reservationAppServiceImpl) ListForResource(ctx context.Context, resourceID uint) ([]*dto.ReservationResponse, error) {
	if _, err := s.resources.FindByID(ctx, resourceID); err != nil {
		return nil, err
	}
	reservations, err := s.reservations.ListForResource(ctx, resourceID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reservations")
	}
	out := make([]*dto.ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, dto.NewReservationResponse(r))
	}
	return out, nil
}

func (s *reservationAppServiceImpl) publish(ctx context.Context, eventType string, id uint, payload interface{}) {
	if s.publisher == nil {
		return
	}
	event := models.NewDomainEvent(eventType, strconv.FormatUint(uint64(id), 10), payload)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "Failed to publish reservation event",
			logger.String("type", eventType), logger.String("error", err.Error()))
	}
}
