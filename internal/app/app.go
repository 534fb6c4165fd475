// Package app provides the unified application lifecycle management for Priceboard.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	httpapi "github.com/priceboard/priceboard/internal/api/http"
	"github.com/priceboard/priceboard/internal/config"
	"github.com/priceboard/priceboard/internal/dashboard"
	"github.com/priceboard/priceboard/internal/dataset"
	"github.com/priceboard/priceboard/internal/observability"
	"github.com/priceboard/priceboard/internal/server"
	"github.com/priceboard/priceboard/internal/storage"
)

// statsWindow bounds how long an unused filter dimension stays in the stats.
const statsWindow = time.Hour

// statsPruneInterval is how often stale filter dimensions are pruned.
const statsPruneInterval = 5 * time.Minute

// App manages the Priceboard service lifecycle.
type App struct {
	cfg *config.Config

	// Shared resources
	storage  storage.DatasetStorage
	loader   *dataset.Loader
	service  *dashboard.Service
	stats    *observability.FilterStats
	shutdown *server.ShutdownManager

	httpServer *http.Server

	// Lifecycle
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a new App with the given configuration.
func New(cfg *config.Config) (*App, error) {
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return &App{
		cfg: cfg,
	}, nil
}

// Start initializes storage, loads the dataset, and starts the HTTP server.
// The dataset is loaded eagerly: a missing or malformed source fails startup
// rather than every later request.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("app is already running")
	}
	a.running = true
	a.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if err := a.initStorage(ctx); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	a.loader = dataset.NewLoader(a.storage, a.cfg.Dataset, a.cfg.ScratchDir())
	table, err := a.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	log.Printf("Dataset loaded: %d listings from %s (%s)",
		len(table), a.cfg.Dataset.Object, a.cfg.Dataset.Source)

	a.service = dashboard.NewService(table, a.cfg.Dashboard.TableLimit, a.cfg.Dashboard.CacheSize)
	a.stats = observability.NewFilterStats(statsWindow)
	a.shutdown = server.NewShutdownManager(server.ShutdownConfig{})

	a.startHTTPServer(len(table))
	a.startStatsPruner(ctx)
	log.Printf("Priceboard started")
	return nil
}

// startStatsPruner drops stale filter dimensions on a fixed interval.
func (a *App) startStatsPruner(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ticker := time.NewTicker(statsPruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.stats.Prune()
			}
		}
	}()
}

// initStorage builds the dataset storage backend from configuration.
func (a *App) initStorage(ctx context.Context) error {
	var err error

	switch a.cfg.Storage.Type {
	case "local":
		a.storage, err = storage.NewLocalStorage(a.cfg.Storage.Path)
	case "s3":
		s3Cfg := storage.DefaultS3Config()
		if a.cfg.Storage.S3.Region != "" {
			s3Cfg.Region = a.cfg.Storage.S3.Region
		}
		if a.cfg.Storage.S3.Endpoint != "" {
			s3Cfg.Endpoint = a.cfg.Storage.S3.Endpoint
		}
		a.storage, err = storage.NewS3Storage(ctx, a.cfg.Storage.S3.Bucket, s3Cfg)
	default:
		return fmt.Errorf("unsupported storage type: %s", a.cfg.Storage.Type)
	}
	if err != nil {
		return err
	}

	log.Printf("Storage initialized: type=%s", a.cfg.Storage.Type)
	if a.cfg.Storage.Type == "s3" {
		log.Printf("S3 config: bucket=%s, region=%s, endpoint=%s",
			a.cfg.Storage.S3.Bucket, a.cfg.Storage.S3.Region, a.cfg.Storage.S3.Endpoint)
	}
	return nil
}

// startHTTPServer wires routes and middleware and starts serving.
func (a *App) startHTTPServer(listings int) {
	middleware := httpapi.ChainMiddleware(
		server.ShutdownMiddleware(a.shutdown),
		httpapi.RecoveryMiddleware,
		httpapi.RequestIDMiddleware,
		httpapi.ContentTypeMiddleware,
	)

	mux := http.NewServeMux()
	mux.Handle("/v1/dashboard", middleware(httpapi.NewDashboardHandler(a.service, a.stats)))
	mux.Handle("/v1/dashboard/options", middleware(httpapi.NewOptionsHandler(a.service)))
	mux.Handle("/v1/stats", middleware(httpapi.NewStatsHandler(a.service, a.stats)))
	mux.Handle("/health", httpapi.NewHealthHandler(listings))

	a.httpServer = &http.Server{
		Addr:         a.cfg.HTTP.Addr,
		Handler:      mux,
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
		IdleTimeout:  a.cfg.HTTP.IdleTimeout,
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		log.Printf("Dashboard HTTP server listening on %s", a.cfg.HTTP.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Dashboard HTTP server error: %v", err)
		}
	}()
}

// Stop gracefully stops the HTTP server and releases resources.
func (a *App) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return nil
	}
	a.running = false
	a.mu.Unlock()

	log.Printf("Initiating graceful shutdown...")

	if a.cancel != nil {
		a.cancel()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Dashboard server shutdown error: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Printf("Shutdown timeout, some goroutines may not have finished")
	}

	log.Printf("Priceboard stopped")
	return nil
}

// WaitForShutdown blocks until a shutdown signal is received.
func (a *App) WaitForShutdown(ctx context.Context) error {
	return a.shutdown.ListenForSignals(ctx)
}
