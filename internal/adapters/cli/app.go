package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/adapters/auth"
	"github.com/andrescamacho/homestead-go/internal/adapters/chain"
	"github.com/andrescamacho/homestead-go/internal/adapters/metrics"
	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/adapters/tracing"
	"github.com/andrescamacho/homestead-go/internal/application/farm"
	farmCommands "github.com/andrescamacho/homestead-go/internal/application/farm/commands"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/setup"
	"github.com/andrescamacho/homestead-go/internal/domain/marketplace"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/database"
)

// app is everything a command needs, wired from configuration
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	logger   logging.GameLogger
	farms    *persistence.GormFarmRepository
	txHashes *persistence.GormTxHashRepository
	store    *farm.Store
	mediator mediator.Mediator

	closers []func(context.Context) error
}

// newApp loads configuration, opens the database and registers every handler.
// Logs go to stderr for interactive commands so stdout stays readable.
func newApp(ctx context.Context, interactive bool) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	a := &app{cfg: cfg}

	logger, closeLog, err := newLogger(cfg.Logging, interactive)
	if err != nil {
		return nil, err
	}
	a.logger = logger
	a.closers = append(a.closers, closeLog)

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}
	commandMetrics := metrics.NewCommandMetricsCollector()
	gameMetrics := metrics.NewGameMetricsCollector()
	relayMetrics := metrics.NewRelayMetricsCollector()
	for _, register := range []func() error{commandMetrics.Register, gameMetrics.Register, relayMetrics.Register} {
		if err := register(); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	a.closers = append(a.closers, shutdownTracing)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db
	a.closers = append(a.closers, func(context.Context) error { return database.Close(db) })

	if err := database.AutoMigrate(db); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	clock := shared.NewRealClock()
	a.farms = persistence.NewGormFarmRepository(db, clock)
	a.txHashes = persistence.NewGormTxHashRepository(db)
	a.store = farm.NewStore(a.farms, clock, gameMetrics)

	relay := chain.NewRelayClient(cfg.Marketplace.RelayURL, chain.RelayOptions{
		Timeout:      cfg.Marketplace.Timeout,
		PollInterval: cfg.Marketplace.PollInterval,
		Requests:     cfg.Marketplace.RateLimit.Requests,
		Burst:        cfg.Marketplace.RateLimit.Burst,
		Clock:        clock,
		Recorder:     relayMetrics,
	})
	marketChain := &marketplace.Chain{
		Address:   cfg.Marketplace.ContractAddress,
		Contracts: relay,
		Receipts:  relay,
		Sessions:  relay,
		TxHashes:  a.txHashes,
	}

	a.mediator = mediator.NewMediator()
	a.mediator.RegisterMiddleware(tracing.Middleware(nil))
	a.mediator.RegisterMiddleware(logging.Middleware(logger))
	a.mediator.RegisterMiddleware(metrics.PrometheusMiddleware(commandMetrics))

	if err := setup.NewHandlerRegistry(a.store, marketChain).RegisterAll(a.mediator); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	return a, nil
}

// Close releases resources in reverse order of acquisition
func (a *app) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// send dispatches a request with the app logger in context
func (a *app) send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return a.mediator.Send(logging.WithLogger(ctx, a.logger), request)
}

// apply dispatches one action and saves the farm. Each CLI run has its own
// session, so an unsaved change would be lost when the process exits.
func (a *app) apply(ctx context.Context, farmID int, action farm.Action) (*farmCommands.DispatchActionResponse, error) {
	resp, err := a.send(ctx, &farmCommands.DispatchActionCommand{FarmID: farmID, Action: action})
	if err != nil {
		return nil, err
	}
	if _, err := a.send(ctx, &farmCommands.DispatchActionCommand{FarmID: farmID, Action: farm.Save{}}); err != nil {
		return nil, err
	}
	return resp.(*farmCommands.DispatchActionResponse), nil
}

// tokenConfig builds the access token settings from configuration
func (a *app) tokenConfig() auth.Config {
	return auth.Config{
		Secret: []byte(a.cfg.Server.Auth.Secret),
		Issuer: a.cfg.Server.Auth.Issuer,
		TTL:    a.cfg.Server.Auth.TokenTTL,
	}
}

func newLogger(cfg config.LoggingConfig, interactive bool) (logging.GameLogger, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	var out io.Writer
	switch cfg.Output {
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open log file: %w", err)
		}
		return logging.NewStdLogger(f, cfg.Level, cfg.Format), func(context.Context) error { return f.Close() }, nil
	case "stderr":
		out = os.Stderr
	default:
		out = os.Stdout
		if interactive {
			out = os.Stderr
		}
	}
	return logging.NewStdLogger(out, cfg.Level, cfg.Format), noop, nil
}
