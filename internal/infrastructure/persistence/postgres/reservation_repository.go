package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/repository"
	"github.com/turtacn/acadmin/pkg/logger"
)

var (
	_ repository.ResourceRepository    = (*ResourceRepository)(nil)
	_ repository.ReservationRepository = (*ReservationRepository)(nil)
)

// ResourceRepository stores bookable rooms, labs and equipment.
type ResourceRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewResourceRepository(db *gorm.DB, log logger.Logger) *ResourceRepository {
	return &ResourceRepository{db: db, logger: log.WithComponent("resource_repository")}
}

func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	m := &resourceDBM{
		Name:     resource.Name,
		Kind:     string(resource.Kind),
		Capacity: resource.Capacity,
		IsActive: resource.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error(ctx, "Failed to create resource", err, logger.String("name", resource.Name))
		return translateError(err, "resource", resource.Name)
	}
	resource.ID = m.ID
	return nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uint) (*models.Resource, error) {
	var m resourceDBM
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err, "resource", id)
	}
	return m.toDomain(), nil
}

// ReservationRepository stores reservations.
type ReservationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewReservationRepository(db *gorm.DB, log logger.Logger) *ReservationRepository {
	return &ReservationRepository{db: db, logger: log.WithComponent("reservation_repository")}
}

func (r *ReservationRepository) CreateGuarded(ctx context.Context, reservation *models.Reservation, guard repository.ReservationGuard) error {
	m := reservationFromDomain(reservation)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resource resourceDBM
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&resource, reservation.ResourceID).Error; err != nil {
			return translateError(err, "resource", reservation.ResourceID)
		}
		overlapping, err := findOverlapping(tx, reservation.ResourceID, reservation.Slot)
		if err != nil {
			return translateError(err, "reservation", reservation.ResourceID)
		}
		if err := guard(resource.toDomain(), overlapping); err != nil {
			return err
		}
		if err := tx.Create(m).Error; err != nil {
			r.logger.Error(ctx, "Failed to create reservation", err, logger.Uint("resource_id", reservation.ResourceID))
			return translateError(err, "reservation", reservation.ResourceID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	reservation.ID = m.ID
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	result := r.db.WithContext(ctx).Model(&reservationDBM{}).
		Where("id = ?", reservation.ID).
		Updates(map[string]interface{}{
			"status":    string(reservation.Status),
			"purpose":   reservation.Purpose,
			"starts_at": reservation.Slot.Start,
			"ends_at":   reservation.Slot.End,
		})
	if result.Error != nil {
		return translateError(result.Error, "reservation", reservation.ID)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "reservation", reservation.ID)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var m reservationDBM
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err, "reservation", id)
	}
	return m.toDomain(), nil
}

// FindOverlapping uses half-open intervals: a reservation ending exactly when
// the slot starts does not overlap it.
func (r *ReservationRepository) FindOverlapping(ctx context.Context, resourceID uint, slot models.TimeSlot) ([]*models.Reservation, error) {
	out, err := findOverlapping(r.db.WithContext(ctx), resourceID, slot)
	if err != nil {
		return nil, translateError(err, "reservation", resourceID)
	}
	return out, nil
}

func findOverlapping(db *gorm.DB, resourceID uint, slot models.TimeSlot) ([]*models.Reservation, error) {
	var rows []reservationDBM
	err := db.
		Where("resource_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?",
			resourceID, string(models.ReservationCancelled), slot.End.UTC(), slot.Start.UTC()).
		Order("starts_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toReservations(rows), nil
}

func (r *ReservationRepository) ListForResource(ctx context.Context, resourceID uint) ([]*models.Reservation, error) {
	var rows []reservationDBM
	err := r.db.WithContext(ctx).Where("resource_id = ?", resourceID).Order("starts_at, id").Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "reservation", resourceID)
	}
	return toReservations(rows), nil
}

func toReservations(rows []reservationDBM) []*models.Reservation {
	out := make([]*models.Reservation, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}
