// Package audit stores the trail of state-changing API calls in the database,
// optionally HMAC-signed so tampered rows can be detected.
package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

var _ service.AuditService = (*GormAuditService)(nil)

type auditEventDBM struct {
	ID         uint      `gorm:"primaryKey"`
	ActorID    uint      `gorm:"not null;index"`
	Action     string    `gorm:"size:200;not null"`
	Path       string    `gorm:"size:500;not null"`
	Status     int       `gorm:"not null"`
	RequestID  string    `gorm:"size:128"`
	OccurredAt time.Time `gorm:"not null;index"`
	Signature  string    `gorm:"size:64"`
}

func (auditEventDBM) TableName() string { return "audit_events" }

func (m *auditEventDBM) toDomain() *models.AuditEvent {
	return &models.AuditEvent{
		ID:         m.ID,
		ActorID:    m.ActorID,
		Action:     m.Action,
		Path:       m.Path,
		Status:     m.Status,
		RequestID:  m.RequestID,
		OccurredAt: m.OccurredAt.UTC(),
		Signature:  m.Signature,
	}
}

// GormAuditService is the append-only audit store.
type GormAuditService struct {
	db     *gorm.DB
	signer *Signer
	logger logger.Logger
}

// NewGormAuditService creates the store. signer may be nil.
func NewGormAuditService(db *gorm.DB, signer *Signer, log logger.Logger) *GormAuditService {
	return &GormAuditService{db: db, signer: signer, logger: log.WithComponent("audit")}
}

// Migrate creates the audit table.
func (s *GormAuditService) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&auditEventDBM{}); err != nil {
		return errors.ErrInternal("audit migration failed").WithCause(err)
	}
	return nil
}

// Record signs and stores event, filling in its ID.
func (s *GormAuditService) Record(ctx context.Context, event *models.AuditEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	// Postgres keeps microseconds; signing the stored precision keeps rows verifiable.
	event.OccurredAt = event.OccurredAt.UTC().Truncate(time.Microsecond)
	if s.signer != nil {
		sig, err := s.signer.Sign(event)
		if err != nil {
			return errors.ErrInternal("failed to sign audit event").WithCause(err)
		}
		event.Signature = sig
	}

	dbm := &auditEventDBM{
		ActorID:    event.ActorID,
		Action:     event.Action,
		Path:       event.Path,
		Status:     event.Status,
		RequestID:  event.RequestID,
		OccurredAt: event.OccurredAt,
		Signature:  event.Signature,
	}
	if err := s.db.WithContext(ctx).Create(dbm).Error; err != nil {
		s.logger.Error(ctx, "Failed to store audit event", err, logger.String("action", event.Action))
		return errors.Wrap(err, "failed to store audit event")
	}
	event.ID = dbm.ID
	return nil
}

// List returns the most recent events, newest first.
func (s *GormAuditService) List(ctx context.Context, limit int) ([]*models.AuditEvent, error) {
	var rows []auditEventDBM
	if err := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list audit events")
	}
	events := make([]*models.AuditEvent, 0, len(rows))
	for i := range rows {
		events = append(events, rows[i].toDomain())
	}
	return events, nil
}

// Verify reports whether event is signed with the configured key.
func (s *GormAuditService) Verify(event *models.AuditEvent) bool {
	return s.signer.Verify(event)
}

// Signed reports whether new events get a signature.
func (s *GormAuditService) Signed() bool {
	return s.signer != nil
}
