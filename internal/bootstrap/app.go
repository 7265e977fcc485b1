package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/primalpath/report-engine/internal/infra/config"
)

// App owns the report service's HTTP server lifecycle. Besides the server it
// carries a cleanup hook so background workers (the queue consumer) are
// stopped once the server has drained.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	cleanup func()
}

// NewApp is used by Wire to build the runnable app. cleanup may be nil.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, cleanup func()) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, cleanup: cleanup}
}

// Run starts the HTTP server and blocks until shutdown. On a shutdown signal
// the server drains in-flight requests first, then background workers stop.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		err := a.server.Shutdown(shutdownCtx)
		a.stopWorkers()
		return err
	case err := <-errCh:
		a.stopWorkers()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) stopWorkers() {
	if a.cleanup == nil {
		return
	}
	a.logger.Info("stopping background workers")
	a.cleanup()
}
