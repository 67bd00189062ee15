// Package postgres opens the GORM connection shared by the design and meeting repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Pool sizes the database/sql connection pool. Zero fields keep the driver defaults.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type options struct {
	pool        Pool
	pingTimeout time.Duration
	logLevel    gormlogger.LogLevel
}

// Option adjusts Connect.
type Option func(*options)

// WithPool applies connection pool limits.
func WithPool(pool Pool) Option {
	return func(o *options) { o.pool = pool }
}

// WithPingTimeout bounds the connectivity check.
func WithPingTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pingTimeout = d
		}
	}
}

// WithSQLLogging prints every statement GORM issues.
func WithSQLLogging() Option {
	return func(o *options) { o.logLevel = gormlogger.Info }
}

// Connect opens PostgreSQL through GORM and verifies connectivity.
// Driver errors are translated so adapters can match gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func Connect(ctx context.Context, dsn string, opts ...Option) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres DSN is empty")
	}
	o := options{pingTimeout: 5 * time.Second, logLevel: gormlogger.Warn}
	for _, opt := range opts {
		opt(&o)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(o.logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if o.pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(o.pool.MaxOpenConns)
	}
	if o.pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.pool.MaxIdleConns)
	}
	if o.pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(o.pool.ConnMaxLifetime)
	}
	pingCtx, cancel := context.WithTimeout(ctx, o.pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// PoolFromEnv reads POSTGRES_MAX_OPEN_CONNS, POSTGRES_MAX_IDLE_CONNS and POSTGRES_CONN_MAX_LIFETIME.
// Unparsable values are ignored.
func PoolFromEnv() Pool {
	var pool Pool
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("POSTGRES_MAX_OPEN_CONNS"))); err == nil && n > 0 {
		pool.MaxOpenConns = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("POSTGRES_MAX_IDLE_CONNS"))); err == nil && n > 0 {
		pool.MaxIdleConns = n
	}
	if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("POSTGRES_CONN_MAX_LIFETIME"))); err == nil && d > 0 {
		pool.ConnMaxLifetime = d
	}
	return pool
}

// ConnectFromEnv dials POSTGRES_DSN and returns the DB plus a cleanup function.
// When POSTGRES_DSN is missing or the connection fails it logs and returns nil with a no-op cleanup.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	if logger == nil {
		logger = slog.Default()
	}
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := Connect(ctx, dsn, WithPool(PoolFromEnv()))
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}
