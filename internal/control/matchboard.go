// Package control wires the application together and manages its
// lifecycle.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pressly/goose/v3"

	"github.com/vietddude/matchboard/internal/api"
	"github.com/vietddude/matchboard/internal/core/config"
	"github.com/vietddude/matchboard/internal/core/domain"
	"github.com/vietddude/matchboard/internal/datastore"
	"github.com/vietddude/matchboard/internal/datastore/httpapi"
	"github.com/vietddude/matchboard/internal/datastore/memory"
	"github.com/vietddude/matchboard/internal/datastore/postgres"
	"github.com/vietddude/matchboard/internal/resilience/cache"
	"github.com/vietddude/matchboard/internal/resilience/connectivity"
	"github.com/vietddude/matchboard/internal/resilience/fetch"
	"github.com/vietddude/matchboard/internal/service"
)

// Config holds the application configuration.
type Config struct {
	Port      int
	Datastore config.DatastoreConfig
	Cache     cache.Config
	Retry     config.RetryConfig
}

// Matchboard is the main application struct that manages the matching
// service lifecycle.
type Matchboard struct {
	cfg        Config
	store      datastore.DataStore
	db         *postgres.DB
	redisCache *cache.RedisStore
	monitor    *connectivity.Monitor
	svc        *service.MatchService
	apiServer  *api.Server
	unsubNet   func()
}

// NewMatchboard creates a Matchboard instance with all dependencies
// initialized. Backend selection: Postgres when configured, then the
// remote HTTP datastore, then in-memory.
func NewMatchboard(cfg Config) (*Matchboard, error) {
	app := &Matchboard{cfg: cfg}

	// 1. Datastore + matching reachability prober
	var prober connectivity.Prober
	switch {
	case cfg.Datastore.Postgres.URL != "":
		db, err := postgres.NewDB(context.Background(), cfg.Datastore.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}

		// Run migrations
		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		if err := goose.Up(db.DB.DB, "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}

		app.db = db
		app.store = postgres.NewStore(db)
		prober = connectivity.NewPingProber(db)
		slog.Info("Using PostgreSQL datastore")

	case cfg.Datastore.HTTP.BaseURL != "":
		app.store = httpapi.NewClient(cfg.Datastore.HTTP)
		prober = connectivity.NewHTTPProber(cfg.Datastore.HTTP.BaseURL + "/health")
		slog.Info("Using remote HTTP datastore", "base_url", cfg.Datastore.HTTP.BaseURL)

	default:
		app.store = memory.NewStore()
		prober = connectivity.StaticProber{}
		slog.Warn("No datastore configured, using in-memory store")
	}

	// 2. Snapshot cache
	var snapshots cache.Store
	if cfg.Cache.URL != "" {
		redisCache, err := cache.NewRedisStore(cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed to init snapshot cache: %w", err)
		}
		app.redisCache = redisCache
		snapshots = redisCache
		slog.Info("Using Redis snapshot cache")
	} else {
		snapshots = cache.NewMemoryStore()
	}

	// 3. Connectivity, fetch, service, API
	app.monitor = connectivity.NewMonitor(prober)
	fetcher := fetch.NewFetcher(snapshots, app.monitor, fetch.Config{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialDelay:    cfg.Retry.InitialDelay,
		BackoffMultiple: cfg.Retry.BackoffMultiple,
	})
	app.svc = service.NewMatchService(app.store, fetcher, app.monitor)
	app.apiServer = api.NewServer(app.svc, cfg.Port)

	return app, nil
}

// Service exposes the match service, e.g. for embedding callers.
func (m *Matchboard) Service() *service.MatchService {
	return m.svc
}

// Start runs the initial reachability probe and starts the API server.
func (m *Matchboard) Start(ctx context.Context) error {
	m.unsubNet = m.monitor.Subscribe(func(s domain.NetworkState) {
		slog.Info("Network state changed",
			"online", s.IsOnline,
			"service_reachable", s.IsServiceReachable,
		)
	})

	m.monitor.Refresh(ctx)

	go func() {
		slog.Info("API server listening", "port", m.cfg.Port)
		if err := m.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("API server stopped", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts everything down.
func (m *Matchboard) Stop(ctx context.Context) error {
	if m.unsubNet != nil {
		m.unsubNet()
	}
	if err := m.apiServer.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop API server: %w", err)
	}
	if m.redisCache != nil {
		if err := m.redisCache.Close(); err != nil {
			slog.Warn("Failed to close redis cache", "error", err)
		}
	}
	if m.db != nil {
		if err := m.db.Close(); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}
	return nil
}
