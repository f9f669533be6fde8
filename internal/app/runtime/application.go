package runtime

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/plateful/backend/internal/app"
	"github.com/plateful/backend/internal/app/httpapi"
	"github.com/plateful/backend/internal/app/metrics"
	"github.com/plateful/backend/internal/app/services/mailer"
	"github.com/plateful/backend/internal/app/services/payment"
	"github.com/plateful/backend/internal/app/storage/filestore"
	"github.com/plateful/backend/internal/config"
	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/pkg/logger"
)

// Application wires core dependencies and manages the HTTP server lifecycle.
type Application struct {
	cfg        *config.Config
	log        *logger.Logger
	app        *app.Application
	httpServer *http.Server
}

// NewApplication constructs a new application instance with default wiring.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.LoggingConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	store, err := filestore.New(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open data directory: %w", err)
	}

	upstream := &http.Client{Timeout: time.Duration(cfg.Server.UpstreamTimeoutS) * time.Second}

	charger, err := payment.NewStripeClient(upstream, payment.StripeConfig{
		Host:       cfg.Stripe.Host,
		ChargePath: cfg.Stripe.ChargePath,
		APIKey:     cfg.Stripe.APIKey,
	}, log.WithField("component", "stripe"))
	if err != nil {
		return nil, fmt.Errorf("configure stripe client: %w", err)
	}

	mail, err := mailer.NewMailgunClient(upstream, mailer.MailgunConfig{
		Host:   cfg.Mailgun.Host,
		Domain: cfg.Mailgun.Domain,
		APIKey: cfg.Mailgun.APIKey,
		From:   cfg.Mailgun.From,
	}, log.WithField("component", "mailgun"))
	if err != nil {
		return nil, fmt.Errorf("configure mailgun client: %w", err)
	}

	application, err := app.New(app.Options{
		Store:      store,
		Charger:    charger,
		Mailer:     mail,
		Menu:       config.LoadMenuOrDefault(cfg.Menu.Path),
		HashSecret: cfg.Auth.HashSecret,
		Source:     cfg.Stripe.Source,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("build application: %w", err)
	}

	dispatcher := httpapi.NewDispatcher(application.Router, log.WithField("component", "http"))
	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitPerSec, cfg.Server.RateLimitBurst, log.WithField("component", "ratelimit"))

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/", limiter.Handler(metrics.InstrumentHandler(dispatcher)))

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Application{
		cfg:        cfg,
		log:        log,
		app:        application,
		httpServer: httpSrv,
	}, nil
}

// Run starts background services and the HTTP server, blocking until the
// context is cancelled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("HTTP server listening on %s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully shuts down the HTTP server and background services.
func (a *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.Server.ShutdownTimeoutS)*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return a.app.Stop(shutdownCtx)
}
