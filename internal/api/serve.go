package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/navgest/internal/config"
	"github.com/dgallion1/navgest/internal/pipeline"
)

// ListenAndServe runs the pipeline and HTTP server until ctx is cancelled,
// then drains both.
func ListenAndServe(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	orch := pipeline.NewOrchestrator(cfg, log)
	orch.Start(ctx)
	defer orch.Stop()

	srv := NewServer(orch, log, cfg)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting navgest", "port", cfg.Port, "workers", cfg.WorkerCount)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return httpServer.Shutdown(shutdownCtx)
}
