package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/engine/core/config"
	"github.com/dmitrymomot/engine/core/logger"
	"github.com/dmitrymomot/engine/core/server"
	"github.com/dmitrymomot/engine/integration/database/pg"
	sessionpg "github.com/dmitrymomot/engine/integration/sessionstore/pg"
)

// Run serves HTTP and collects expired sessions until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	srv, err := server.NewFromConfig(a.config.Server, server.WithLogger(a.logger))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.collectLoop(ctx)
	}()

	err = srv.Run(ctx, a.Handler())
	cancel()
	<-done
	return err
}

func (a *App) collectLoop(ctx context.Context) {
	interval := a.config.Session.GCInterval
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.CollectSessions(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.ErrorContext(ctx, "session gc failed", logger.Component("session"), logger.Error(err))
			}
		}
	}
}

// CollectSessions removes sessions idle for longer than the session TTL.
func (a *App) CollectSessions(ctx context.Context) (int64, error) {
	n, err := a.saveHandler.GC(ctx, a.config.Session.TTL)
	if err != nil {
		return 0, err
	}
	a.logger.InfoContext(ctx, "sessions collected", logger.Component("session"), logger.Count("removed", int(n)))
	return n, nil
}

// DestroySession deletes the persisted data of one session.
func (a *App) DestroySession(ctx context.Context, id string) error {
	return a.saveHandler.Destroy(ctx, id)
}

// Migrate applies the application migrations and the session schema.
func Migrate(ctx context.Context, log *slog.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := sessionpg.Migrate(ctx, pool, log); err != nil {
		return err
	}
	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
		if errors.Is(err, pg.ErrMigrationsDirNotFound) {
			log.InfoContext(ctx, "no application migrations found", logger.Component("pg"), slog.String("path", cfg.MigrationsPath))
			return nil
		}
		return err
	}
	return nil
}
