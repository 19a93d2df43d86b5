// Package app wires the application's components together.
//
// App is the composition root: it owns the configuration, logger, database
// pool, and the domain components built on them. Commands construct an App
// once and reach everything through it instead of assembling dependencies
// ad hoc.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/easelhq/easel/internal/artifact"
	"github.com/easelhq/easel/internal/config"
	"github.com/easelhq/easel/internal/database"
	"github.com/easelhq/easel/internal/detect"
	"github.com/easelhq/easel/internal/observability"
	"github.com/easelhq/easel/internal/session"
	"github.com/easelhq/easel/internal/sqlc"
)

// App holds the wired application components.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Pool     *pgxpool.Pool
	Store    *artifact.Store
	Detector *detect.Detector
	Sessions *session.Manager

	traceShutdown func(context.Context) error
}

// New builds the full component graph from cfg. The database must be
// reachable; commands that do not need storage should not construct an App.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		Config:   cfg,
		Logger:   logger,
		Detector: detect.New(cfg.DetectConfig()),
		Sessions: session.NewManager(cfg.SessionCapacity, logger.With("component", "session")),
	}

	if cfg.TracingEnabled {
		shutdown, err := observability.Setup(ctx, observability.Config{
			Endpoint:    cfg.OTLPEndpoint,
			ServiceName: cfg.ServiceName,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to set up tracing: %w", err)
		}
		a.traceShutdown = shutdown
	}

	pool, err := database.Connect(ctx, cfg.PostgresConnectionString())
	if err != nil {
		a.shutdownTracing(ctx)
		return nil, err
	}
	a.Pool = pool
	a.Store = artifact.New(sqlc.New(pool), pool, logger.With("component", "artifact"))

	return a, nil
}

// Close releases the App's resources: the pool immediately, then a trace
// flush bounded by ctx.
func (a *App) Close(ctx context.Context) {
	if a.Pool != nil {
		a.Pool.Close()
	}
	a.shutdownTracing(ctx)
}

func (a *App) shutdownTracing(ctx context.Context) {
	if a.traceShutdown == nil {
		return
	}
	if err := a.traceShutdown(ctx); err != nil {
		a.Logger.Warn("failed to flush traces", "error", err)
	}
}
