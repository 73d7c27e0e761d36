package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/adapters/httpapi"
	"github.com/andrescamacho/homestead-go/internal/adapters/metrics"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve farms over HTTP",
		Long: `Start the HTTP API. Farms are kept in memory between requests and
persisted when a SAVE action is dispatched.

Routes:
  GET  /farms/{id}                                   snapshot
  POST /farms/{id}/actions                           dispatch an action
  GET  /farms/{id}/stream                            websocket of snapshot updates
  GET  /farms/{id}/buildings/{name}/{buildingId}/queue
  GET  /farms/{id}/seeds/{seed}/price?amount=N
  GET  /farms/{id}/faction/kitchen | /faction/pet
  POST /farms/{id}/faction/refresh
  POST /marketplace/offers/accept
  GET  /metrics                                      when metrics are enabled

When server.auth.secret is set, farm routes need a token from
'homestead farm token' (Authorization: Bearer, or ?access_token= for streams).

Example:
  homestead serve --address :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if address != "" {
				a.cfg.Server.Address = address
			}

			pf := pidfile.New(a.cfg.Server.PIDFile)
			if err := pf.Acquire(); err != nil {
				return err
			}
			defer func() {
				if err := pf.Release(); err != nil {
					a.logger.Log(logging.LevelWarn, "failed to release PID file", map[string]interface{}{"error": err.Error()})
				}
			}()

			return runServer(ctx, a)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address (default: server.address from config)")
	return cmd
}

func runServer(ctx context.Context, a *app) error {
	hub := httpapi.NewHub(a.logger)
	a.store.AddListener(hub.Publish)

	api, err := httpapi.NewServer(a.mediator, hub, a.logger)
	if err != nil {
		return err
	}
	if a.cfg.Server.Auth.Enabled() {
		api.RequireTokens(a.tokenConfig())
	}

	var metricsHandler http.Handler
	if metrics.IsEnabled() {
		metricsHandler = promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
	}

	server := &http.Server{
		Addr:    a.cfg.Server.Address,
		Handler: api.Handler(metricsHandler),
	}
	server.RegisterOnShutdown(hub.Close)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Log(logging.LevelInfo, "server listening", map[string]interface{}{
			"address": server.Addr,
			"metrics": metrics.IsEnabled(),
			"auth":    a.cfg.Server.Auth.Enabled(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Log(logging.LevelInfo, "shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
