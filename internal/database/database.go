package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spaceminer/spaceminer-server/internal/config"
)

// Pool is the part of the pgx pool the health checks and shutdown need
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolConfig sizes the connection pool shared by every repository
type PoolConfig struct {
	ConnString      string
	MaxConns        int
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration
}

// PoolConfigFrom takes the pool settings from the process configuration
func PoolConfigFrom(cfg *config.Config) PoolConfig {
	return PoolConfig{
		ConnString:      cfg.GetDBConnString(),
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	}
}

func (c PoolConfig) pgxConfig() (*pgxpool.Config, error) {
	if c.MaxConns <= 0 {
		return nil, errors.New(ErrMsgInvalidMaxConns)
	}

	pc, err := pgxpool.ParseConfig(c.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	maxConns := min(c.MaxConns, math.MaxInt32)
	pc.MaxConns = int32(maxConns)
	pc.MinConns = int32(min(DefaultMinConnections, maxConns))
	pc.MaxConnIdleTime = c.MaxConnIdleTime
	pc.MaxConnLifetime = c.MaxConnLifetime
	return pc, nil
}

// NewPool creates the pool and pings the database once, giving up after ConnectTimeout
func NewPool(ctx context.Context, c PoolConfig) (*pgxpool.Pool, error) {
	pc, err := c.pgxConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase,
		"host", pc.ConnConfig.Host,
		"database", pc.ConnConfig.Database,
		"max_conns", pc.MaxConns)
	return pool, nil
}
