package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnhub/learnhub-client/internal/api"
)

// newServeCmd creates the serve subcommand.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the browser-facing gateway",
		Long: `Start the gateway that serves the session API, the guarded page routes,
health probes and metrics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	// Restore any persisted session before the first navigation arrives.
	if err := a.session.LoadFromStorage(ctx); err != nil {
		a.log.Warn().Err(err).Msg("session restore at startup failed")
	}

	e := api.NewRouter(api.Dependencies{
		Session: a.session,
		API:     a.client,
		Storage: a.storage,
		Guard:   a.guard,
		Remote:  a.client,
		Log:     a.log,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + a.cfg.Port)
	}()
	a.log.Info().Str("port", a.cfg.Port).Str("env", a.cfg.Env).Msg("gateway listening")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
