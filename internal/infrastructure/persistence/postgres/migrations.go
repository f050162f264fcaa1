package postgres

import (
	"context"
	goerrors "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

// allModels lists every table owned by acadmin, in dependency order.
func allModels() []interface{} {
	return []interface{}{
		&roleDBM{},
		&userDBM{},
		&subjectDBM{},
		&groupDBM{},
		&enrollmentDBM{},
		&attendanceDBM{},
		&gradeDBM{},
		&submissionDBM{},
		&resourceDBM{},
		&reservationDBM{},
		&internshipDBM{},
		&applicationDBM{},
		&riskAssessmentDBM{},
	}
}

// Migrate creates or updates the schema and seeds the fixed role table.
// It is idempotent.
func Migrate(ctx context.Context, db *gorm.DB, log logger.Logger) error {
	log.Info(ctx, "Running database migrations", logger.Int("tables", len(allModels())))

	if err := db.WithContext(ctx).AutoMigrate(allModels()...); err != nil {
		log.Error(ctx, "Schema migration failed", err)
		return errors.ErrInternal("schema migration failed").WithCause(err)
	}

	for _, name := range models.AllRoles {
		role := roleDBM{Name: string(name)}
		err := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
			Create(&role).Error
		if err != nil {
			log.Error(ctx, "Seeding role failed", err, logger.String("role", string(name)))
			return errors.ErrInternal("seeding roles failed").WithCause(err)
		}
	}

	log.Info(ctx, "Database migrations completed")
	return nil
}

// translateError maps gorm errors onto the application error taxonomy.
func translateError(err error, resource string, id interface{}) error {
	switch {
	case err == nil:
		return nil
	case goerrors.Is(err, gorm.ErrRecordNotFound):
		return errors.ErrNotFound(resource, id)
	case goerrors.Is(err, gorm.ErrDuplicatedKey):
		return errors.ErrConflict(resource + " already exists").WithCause(err)
	case goerrors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.ErrInvalidRequest(resource + " references a missing record").WithCause(err)
	}
	return errors.Wrap(err, "database error on "+resource)
}
