package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	ledgerservice "peerraise/contexts/crowdfunding/ledger-service"
	"peerraise/internal/platform/config"
	"peerraise/internal/platform/httpserver"
	"peerraise/internal/platform/messaging"
	"peerraise/internal/platform/telemetry"

	"golang.org/x/sync/errgroup"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	cfg       config.Config
	server    *httpserver.Server
	ledger    ledgerservice.Module
	telemetry telemetry.ShutdownFunc
	logger    *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return BuildAPIWithConfig(ctx, cfg, nil)
}

// BuildAPIWithConfig wires the API from an already parsed config. A nil
// logger gets a JSON logger on stdout at the configured level.
func BuildAPIWithConfig(ctx context.Context, cfg config.Config, logger *slog.Logger) (*APIApp, error) {
	if logger == nil {
		level, err := config.ParseLogLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	logger = logger.With("service", cfg.ServiceName, "process", "api")

	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}

	var bus ledgerservice.EventBus
	if cfg.EnableEvents {
		bus = messaging.NewBus(logger)
	}
	ledger := ledgerservice.NewInMemoryModule(bus, logger)

	identity, err := httpserver.NewIdentityResolver(cfg.Auth)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("build identity resolver: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Warn("caller identity taken from X-User-Id header",
			"event", "bootstrap_header_identity",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"allow_anonymous", cfg.Auth.AllowAnonymous,
		)
	}

	server := httpserver.New(ledger, httpserver.Options{
		Addr:        cfg.HTTPAddr(),
		ServiceName: cfg.ServiceName,
		Identity:    identity,
		Logger:      logger,
	})

	return &APIApp{
		cfg:       cfg,
		server:    server,
		ledger:    ledger,
		telemetry: shutdownTracing,
		logger:    logger,
	}, nil
}

// Server is exposed for tests that drive the wired handler directly.
func (a *APIApp) Server() *httpserver.Server {
	return a.server
}

// Run serves HTTP and consumes ledger events until ctx is cancelled or one of
// them fails, then shuts the server down within the configured timeout.
func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"addr", a.cfg.HTTPAddr(),
		"events_enabled", a.cfg.EnableEvents,
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.server.Start()
	})
	group.Go(func() error {
		if err := a.ledger.Activity.Start(groupCtx); err != nil {
			return fmt.Errorf("start activity consumer: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.ShutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	err := group.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	a.logger.Info("api app stopped",
		"event", "bootstrap_api_stopped",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return err
}

// Close flushes pending trace spans.
func (a *APIApp) Close(ctx context.Context) error {
	if a.telemetry == nil {
		return nil
	}
	return a.telemetry(ctx)
}
