package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Pool names for the two database targets.
const (
	PoolProduction = "PRODUCTION"
	PoolSimulation = "SIMULATION"
)

// hard fallback when neither the DSN nor the environment bounds the pool
const defaultMaxConns = 10

// ConnectionConfig holds connection pool tuning applied to every pool.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
// MaxOpenConns resolution order: explicit DSN override (?max=), the
// DB_MAX_CONNS environment variable, then the hard fallback of 10.
func DefaultConnectionConfig() ConnectionConfig {
	maxConns := defaultMaxConns
	if v := os.Getenv("DB_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxConns = parsed
		}
	}
	return ConnectionConfig{
		MaxOpenConns:    maxConns,
		MaxIdleConns:    maxConns / 2,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Open creates and configures a named connection pool from a connection
// string. Pool construction failure is fatal for that pool: the caller must
// not fall back to the other target.
func Open(ctx context.Context, connString, poolName string, logger *slog.Logger) (*sql.DB, error) {
	dsn, err := ParseDSN(connString)
	if err != nil {
		return nil, fmt.Errorf("open %s pool: %w", poolName, err)
	}

	pool, err := sql.Open("pgx", dsn.ConnString())
	if err != nil {
		return nil, fmt.Errorf("open %s pool: %w", poolName, err)
	}

	cfg := DefaultConnectionConfig()
	if dsn.MaxConns > 0 {
		cfg.MaxOpenConns = dsn.MaxConns
		cfg.MaxIdleConns = dsn.MaxConns / 2
	}
	if cfg.MaxIdleConns < 1 {
		cfg.MaxIdleConns = 1
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping %s pool: %w", poolName, err)
	}

	logger.Info("database pool configured",
		slog.String("pool", poolName),
		slog.String("host", dsn.Host),
		slog.String("database", dsn.Database),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime))

	return pool, nil
}
