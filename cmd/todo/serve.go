package main

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

	"github.com/spf13/cobra"

	"github.com/parniiyan/To-do-list/adapters/auth"
	"github.com/parniiyan/To-do-list/adapters/rest/handlers"
	"github.com/parniiyan/To-do-list/config"
	"github.com/parniiyan/To-do-list/core"
)

func serveCmd(configPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}
			if err := run(cmd.Context(), cfg, log, migrate); err != nil {
				log.Error("server failed", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply migrations before serving")
	return cmd
}

func run(parent context.Context, cfg config.Config, log *slog.Logger, migrate bool) error {
	log.Info("starting todo api server")

	// graceful shutdown
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// database adapter
	storage, err := openStorage(cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage(storage, log)

	if migrate {
		if err := storage.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate db: %w", err)
		}
	}

	// services
	tasksService := core.NewService(storage)
	authService := auth.NewService(storage, cfg.Auth.Secret, cfg.Auth.TokenTTL)

	handler := handlers.New(log, handlers.Deps{
		Tasks:    tasksService,
		Accounts: authService,
	}, handlers.Options{
		Timeout:        cfg.HTTP.Timeout,
		AllowAnonymous: !cfg.Auth.RequireAuth,
	})

	server := http.Server{
		Addr:              cfg.HTTP.Address,
		ReadHeaderTimeout: cfg.HTTP.Timeout,
		Handler:           handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("todo api http server is running", "address", server.Addr, "require_auth", cfg.Auth.RequireAuth)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped unexpectedly: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
