package pgvector

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

// Logger is the minimal logging surface this package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}

// Client implements the engine contract on a PostgreSQL table with a
// pgvector embedding column. Documents live as jsonb with the identifier
// as primary key.
type Client struct {
	pool *pgxpool.Pool
	cfg  *Config
	log  Logger
}

// NewClient constructs a Client from Config. Pool connections are opened
// lazily, so no round trip happens here; readiness is the caller's concern
// via Ping. pgvector types are registered on every new connection so vector
// columns bind directly to pgvector.Vector values.
func NewClient(cfg *Config, log Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pgvector: invalid config: %w", err)
	}
	if log == nil {
		log = nopLogger{}
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgvector: parse dsn: %w", err)
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		// Best effort: the vector extension may not exist until
		// CreateIndex has run on a fresh database.
		_ = pgxvec.RegisterTypes(ctx, conn)
		return nil
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgvector: create pool: %w", err)
	}

	return &Client{pool: pool, cfg: cfg, log: log}, nil
}

// Name identifies the engine in logs and metrics.
func (c *Client) Name() string { return "pgvector" }

// Ping verifies database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgvector: ping: %w", err)
	}
	return nil
}

// Close releases all connections held by the pool.
func (c *Client) Close() {
	c.pool.Close()
}

// tableIdent returns the configured table name quoted for interpolation
// into DDL and DML, since table names cannot be bound as parameters.
func (c *Client) tableIdent() string {
	return pgx.Identifier{c.cfg.Table}.Sanitize()
}
