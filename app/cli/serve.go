package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/rss-digest/app/api"
	"github.com/lysyi3m/rss-digest/app/cfg"
	"github.com/lysyi3m/rss-digest/app/digest"
)

type serveCmd struct {
	app *App
}

func (c *serveCmd) Execute(args []string) error {
	appCfg := cfg.Get()

	m, err := c.app.manager()
	if err != nil {
		return err
	}

	renderer := c.app.renderer(m)
	assembler := digest.NewAssembler(renderer, c.app.senders(), slog.Default())
	handler := api.NewHandler(m, assembler, renderer, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler, appCfg.APIAccessKey),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.app.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port, "version", appCfg.Version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	slog.Info("HTTP server stopped")
	return nil
}
