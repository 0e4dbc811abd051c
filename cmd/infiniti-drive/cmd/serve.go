package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/infinitidrive/infiniti-drive/internal/config"
	"github.com/infinitidrive/infiniti-drive/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and refresh scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	a, err := newApp(cfg, newSource(&cfg.CMS, log), log)
	if err != nil {
		return err
	}

	a.dispatcher.Start()
	a.scheduler.Start()

	// The server answers while the first load is in flight; readiness stays
	// 503 until it completes.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.CMS.FetchTimeout)
		defer cancel()
		if err := a.inventory.Refresh(ctx); err != nil {
			log.Error("initial inventory load failed", "error", err)
		}
	}()

	addr := cfg.Server.Addr()
	log.Info("starting server", "addr", addr, "version", Version)

	go func() {
		if err := a.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	select {
	case <-a.scheduler.Stop().Done():
	case <-ctx.Done():
		log.Warn("scheduler did not stop before shutdown deadline")
	}

	if err := a.dispatcher.Stop(ctx); err != nil {
		log.Warn("enquiry queue not drained", "error", err)
	}

	log.Info("server stopped")
	return nil
}
