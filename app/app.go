package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	cosmopay "github.com/cosmopay/cosmopay-go"
	"github.com/cosmopay/cosmopay-go/internal/config"
	"github.com/cosmopay/cosmopay-go/internal/handlers"
	"github.com/cosmopay/cosmopay-go/internal/logging"
	"github.com/cosmopay/cosmopay-go/internal/notify"
	"github.com/cosmopay/cosmopay-go/internal/observability"
	"github.com/cosmopay/cosmopay-go/internal/relay"
)

type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Client   *cosmopay.Client
	Handlers *handlers.Handlers

	flushObservability func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	flush, err := observability.Init(cfg.SentryDSN, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	clientOpts := []cosmopay.Option{
		cosmopay.WithHTTPClient(observability.NewHTTPClient(30 * time.Second)),
		cosmopay.WithLogger(logger.With("component", "cosmopay_client")),
	}
	if cfg.APIBaseURL != "" {
		clientOpts = append(clientOpts, cosmopay.WithBaseURL(cfg.APIBaseURL))
	}
	client, err := cosmopay.NewClient(cfg.APIKey, clientOpts...)
	if err != nil {
		flush()
		return nil, fmt.Errorf("failed to initialize Cosmo Pay client: %w", err)
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Round-trips the API key before accepting traffic. A relay with a bad
	// key would silently reject every delivery it receives.
	info, err := client.AppInfo(startupCtx)
	if err != nil {
		flush()
		return nil, fmt.Errorf("failed to verify Cosmo Pay credentials: %w", err)
	}
	logger.Info("connected to Cosmo Pay", "app", info.Name, "fee_percent", info.FeePercent)

	var forwarder *relay.Forwarder
	if cfg.TargetsFile != "" {
		targets, err := relay.LoadTargets(cfg.TargetsFile)
		if err != nil {
			flush()
			return nil, fmt.Errorf("failed to load relay targets: %w", err)
		}
		forwarder = relay.NewForwarder(
			targets,
			observability.NewHTTPClient(10*time.Second),
			logger.With("component", "forwarder"),
		)
		logger.Info("relay targets loaded", "count", len(targets), "file", cfg.TargetsFile)
	}

	var notifier notify.Notifier
	if cfg.EmailEnabled() {
		resendNotifier := notify.NewResendNotifier(cfg.ResendAPIKey, cfg.NotifyEmailFrom, cfg.NotifyEmailTo)
		if err := resendNotifier.ValidateAPIKey(startupCtx); err != nil {
			flush()
			return nil, fmt.Errorf("failed to verify Resend credentials: %w", err)
		}
		notifier = resendNotifier
		logger.Info("paid-invoice email notifications enabled", "to", cfg.NotifyEmailTo)
	} else {
		notifier = notify.NewLogNotifier(logger.With("component", "notifier"))
	}

	router := handlers.NewEventRouter(forwarder, notifier, logger.With("component", "cosmopay_router"))

	h, err := handlers.New(handlers.Dependencies{
		Config: cfg,
		Router: router,
		Logger: logger,
	})
	if err != nil {
		flush()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return &App{
		Config:             cfg,
		Logger:             logger,
		Client:             client,
		Handlers:           h,
		flushObservability: flush,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.flushObservability != nil {
		a.flushObservability()
	}
}
