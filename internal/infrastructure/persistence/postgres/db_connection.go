// Package postgres provides the relational persistence layer of acadmin.
// Production runs on PostgreSQL through a pgx connection pool; the same gorm
// repositories also run on SQLite for local development and tests.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/turtacn/acadmin/internal/config"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

const slowPingThreshold = 100 * time.Millisecond

// DBConnection owns the database handle shared by all repositories.
type DBConnection struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	pool   *pgxpool.Pool
	config *config.DatabaseConfig
	logger logger.Logger
}

// NewDBConnection opens the configured database and verifies it answers.
func NewDBConnection(ctx context.Context, cfg *config.DatabaseConfig, log logger.Logger) (*DBConnection, error) {
	if cfg == nil {
		return nil, errors.ErrInternal("database configuration is missing")
	}
	log = log.WithComponent("database")

	conn := &DBConnection{config: cfg, logger: log}
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}

	var err error
	switch cfg.Driver {
	case "sqlite":
		log.Info(ctx, "Opening SQLite database", logger.String("path", cfg.SQLitePath))
		conn.db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
		if err != nil {
			return nil, errors.ErrServiceUnavailable("database is unavailable").WithCause(err)
		}
	default:
		log.Info(ctx, "Initializing PostgreSQL connection pool",
			logger.String("host", cfg.Host),
			logger.Int("port", cfg.Port),
			logger.String("database", cfg.Database),
			logger.Int("max_conns", cfg.MaxConns),
		)
		poolConfig, perr := pgxpool.ParseConfig(cfg.GetDSN())
		if perr != nil {
			return nil, errors.ErrInternal("invalid database connection settings").WithCause(perr)
		}
		if cfg.MaxConns > 0 {
			poolConfig.MaxConns = int32(cfg.MaxConns)
		}
		if cfg.MinConns > 0 {
			poolConfig.MinConns = int32(cfg.MinConns)
		}
		if cfg.MaxConnLifetime > 0 {
			poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Minute
		}

		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		conn.pool, err = pgxpool.NewWithConfig(connectCtx, poolConfig)
		if err != nil {
			return nil, errors.ErrServiceUnavailable("database is unavailable").WithCause(err)
		}
		conn.db, err = gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(conn.pool)}), gormCfg)
		if err != nil {
			conn.pool.Close()
			return nil, errors.ErrServiceUnavailable("database is unavailable").WithCause(err)
		}
	}

	conn.sqlDB, err = conn.db.DB()
	if err != nil {
		conn.Close()
		return nil, errors.ErrInternal("failed to access database handle").WithCause(err)
	}
	if cfg.Driver == "sqlite" {
		// SQLite serializes writers; a single connection avoids "database is locked".
		conn.sqlDB.SetMaxOpenConns(1)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// DB returns the gorm handle used by repositories.
func (c *DBConnection) DB() *gorm.DB {
	return c.db
}

// Ping verifies the database answers, warning on slow round trips.
func (c *DBConnection) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := c.sqlDB.PingContext(pingCtx); err != nil {
		c.logger.Error(ctx, "Database ping failed", err)
		return errors.ErrServiceUnavailable("database is unavailable").WithCause(err)
	}
	latency := time.Since(start)
	if latency > slowPingThreshold {
		c.logger.Warn(ctx, "High database latency detected",
			logger.Int64("latency_ms", latency.Milliseconds()),
			logger.Int64("threshold_ms", slowPingThreshold.Milliseconds()),
		)
	}
	return nil
}

// HealthCheck pings the database and reports connection statistics.
func (c *DBConnection) HealthCheck(ctx context.Context) (map[string]interface{}, error) {
	if err := c.Ping(ctx); err != nil {
		return nil, err
	}

	info := map[string]interface{}{
		"status": "healthy",
		"driver": c.driverName(),
	}
	if c.pool != nil {
		stats := c.pool.Stat()
		info["total_connections"] = stats.TotalConns()
		info["idle_connections"] = stats.IdleConns()
		info["acquired_connections"] = stats.AcquiredConns()
		info["max_connections"] = stats.MaxConns()
		if stats.IdleConns() == 0 && stats.TotalConns() >= stats.MaxConns() {
			c.logger.Warn(ctx, "Connection pool exhausted",
				logger.Int("total_conns", int(stats.TotalConns())),
				logger.Int("max_conns", int(stats.MaxConns())),
			)
			info["warning"] = "connection_pool_near_limit"
		}
	} else {
		stats := c.sqlDB.Stats()
		info["open_connections"] = stats.OpenConnections
		info["in_use"] = stats.InUse
	}
	return info, nil
}

// Close releases the database handle and the pool behind it.
func (c *DBConnection) Close() {
	if c.sqlDB != nil {
		if err := c.sqlDB.Close(); err != nil {
			c.logger.Warn(context.Background(), "Error closing database handle", logger.String("error", err.Error()))
		}
	}
	if c.pool != nil {
		c.pool.Close()
	}
	c.logger.Info(context.Background(), "Database connection closed", logger.String("driver", c.driverName()))
}

func (c *DBConnection) driverName() string {
	if c.config.Driver == "sqlite" {
		return "sqlite"
	}
	return fmt.Sprintf("postgres://%s:%d/%s", c.config.Host, c.config.Port, c.config.Database)
}
