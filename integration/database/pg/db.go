package pg

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/singleflight"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is a lazily connected database handle. No connection is made until the
// first call to Pool.
type DB struct {
	cfg     Config
	connect func(context.Context, Config) (*pgxpool.Pool, error)

	dial singleflight.Group
	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewDB creates a handle for cfg without connecting.
func NewDB(cfg Config) *DB {
	return &DB{cfg: cfg, connect: Connect}
}

// Config returns the configuration the handle connects with.
func (d *DB) Config() Config {
	return d.cfg
}

// Pool returns the connection pool, connecting on first use.
// Concurrent callers share one dial, each waiting no longer than its own ctx.
// A failed attempt is not cached.
func (d *DB) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	if pool := d.current(); pool != nil {
		return pool, nil
	}

	// the dial outlives any single caller, retries are bounded by cfg.RetryAttempts
	dialCtx := context.WithoutCancel(ctx)
	ch := d.dial.DoChan("pool", func() (any, error) {
		if pool := d.current(); pool != nil {
			return pool, nil
		}
		pool, err := d.connect(dialCtx, d.cfg)
		if err != nil {
			return nil, err
		}
		d.mu.Lock()
		d.pool = pool
		d.mu.Unlock()
		return pool, nil
	})

	select {
	case <-ctx.Done():
		return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*pgxpool.Pool), nil
	}
}

func (d *DB) current() *pgxpool.Pool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pool
}

// Connected reports whether a pool has been established.
func (d *DB) Connected() bool {
	return d.current() != nil
}

// Querier returns the transaction stored in ctx if any, otherwise the pool.
func (d *DB) Querier(ctx context.Context) (Querier, error) {
	if tx, ok := TxFromContext(ctx); ok {
		return tx, nil
	}
	return d.Pool(ctx)
}

// Close closes the pool if it was opened.
func (d *DB) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
	}
}
