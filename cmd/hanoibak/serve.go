package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hanoibak/internal/config"
	"hanoibak/internal/handlers"
	"hanoibak/internal/logging"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backup daemon",
	Long: `Run the scheduler and the HTTP API. The scheduler fires the daily backup
at the configured time; the API exposes health, status, and a manual
trigger endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		app, err := buildApp(cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		app.services.Scheduler.Start()
		defer app.services.Scheduler.Stop()

		handler := handlers.New(app.services.Backup, cfg.APIToken)

		mux := http.NewServeMux()
		handler.RegisterRoutes(mux)

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: mux,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := logging.GetLogger("server")

		errChan := make(chan error, 1)
		go func() {
			logger.Info().Str("port", cfg.Port).Msg("server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

		select {
		case err := <-errChan:
			return fmt.Errorf("failed to start server: %w", err)
		case <-ctx.Done():
			logger.Info().Msg("shutdown signal received")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	},
}
