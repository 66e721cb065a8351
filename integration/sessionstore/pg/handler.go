package pg

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/engine/core/session"
	"github.com/dmitrymomot/engine/integration/database/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationsTable records the versions applied by Migrate.
const MigrationsTable = "sessions_schema_migrations"

const (
	queryRead = `SELECT data, expires_at FROM users_sessions WHERE session = $1`

	queryWrite = `INSERT INTO users_sessions (session, ts, expires_at, data)
VALUES ($1, $2, $3, $4)
ON CONFLICT (session) DO UPDATE SET ts = EXCLUDED.ts, expires_at = EXCLUDED.expires_at, data = EXCLUDED.data`

	queryDestroy = `DELETE FROM users_sessions WHERE session = $1`

	queryGC = `DELETE FROM users_sessions WHERE ts < $1 OR (expires_at > 0 AND expires_at < $2)`
)

// DB provides the querier for the current context. *pg.DB satisfies it.
type DB interface {
	Querier(ctx context.Context) (pg.Querier, error)
}

// Handler is a session.SaveHandler backed by PostgreSQL.
type Handler struct {
	db  DB
	now func() time.Time
}

// New creates a Handler.
func New(db DB) *Handler {
	return &Handler{db: db, now: time.Now}
}

// Migrate creates the sessions table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	return pg.MigrateFS(ctx, pool, sub, MigrationsTable, log)
}

// Read loads the data stored for id.
func (h *Handler) Read(ctx context.Context, id string) (map[string]any, error) {
	if id == "" {
		return nil, session.ErrInvalidID
	}
	q, err := h.db.Querier(ctx)
	if err != nil {
		return nil, err
	}

	var (
		raw     []byte
		expires int64
	)
	if err := q.QueryRow(ctx, queryRead, id).Scan(&raw, &expires); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if expires > 0 && h.now().Unix() > expires {
		return nil, session.ErrNotFound
	}

	data := make(map[string]any)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session: %w", err)
		}
	}
	return data, nil
}

// Write upserts the row for id.
func (h *Handler) Write(ctx context.Context, id string, data map[string]any, ttl time.Duration) error {
	if id == "" {
		return session.ErrInvalidID
	}
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	q, err := h.db.Querier(ctx)
	if err != nil {
		return err
	}

	now := h.now()
	var expires int64
	if ttl > 0 {
		expires = now.Add(ttl).Unix()
	}
	if _, err := q.Exec(ctx, queryWrite, id, now.Unix(), expires, raw); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Destroy deletes the row for id.
func (h *Handler) Destroy(ctx context.Context, id string) error {
	q, err := h.db.Querier(ctx)
	if err != nil {
		return err
	}
	if _, err := q.Exec(ctx, queryDestroy, id); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// GC deletes rows idle for longer than maxLifetime or past their expiry.
func (h *Handler) GC(ctx context.Context, maxLifetime time.Duration) (int64, error) {
	if maxLifetime < 0 {
		return 0, errors.New("negative session lifetime")
	}
	q, err := h.db.Querier(ctx)
	if err != nil {
		return 0, err
	}

	now := h.now()
	cutoff := now.Add(-maxLifetime).Unix()
	if maxLifetime == 0 {
		cutoff = 0
	}
	tag, err := q.Exec(ctx, queryGC, cutoff, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to collect sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
