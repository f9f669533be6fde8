package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/plateful/backend/internal/app/domain/menu"
	"github.com/plateful/backend/internal/app/httpapi"
	"github.com/plateful/backend/internal/app/services/auth"
	"github.com/plateful/backend/internal/app/services/checkout"
	"github.com/plateful/backend/internal/app/services/mailer"
	"github.com/plateful/backend/internal/app/services/payment"
	"github.com/plateful/backend/internal/app/services/reaper"
	"github.com/plateful/backend/internal/app/storage"
	"github.com/plateful/backend/internal/app/storage/memory"
	"github.com/plateful/backend/internal/app/system"
	"github.com/plateful/backend/pkg/logger"
)

// Options configures the application wiring. A nil Store defaults to the
// in-memory implementation.
type Options struct {
	Store      storage.Store
	Charger    payment.Charger
	Mailer     mailer.Mailer
	Menu       []menu.Item
	HashSecret string
	// Source is the opaque payment source charged at checkout.
	Source string
}

// Application ties the domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Store    storage.Store
	Auth     *auth.Service
	Checkout *checkout.Service
	Reaper   *reaper.Reaper
	Router   *httpapi.Router
}

// New builds a fully initialised application and seeds the menu catalogue.
func New(opts Options, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}
	if opts.Store == nil {
		opts.Store = memory.New()
	}
	if opts.Charger == nil {
		return nil, fmt.Errorf("payment charger is required")
	}
	if opts.Mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}

	if len(opts.Menu) > 0 {
		if err := seedMenu(context.Background(), opts.Store, opts.Menu); err != nil {
			return nil, fmt.Errorf("seed menu: %w", err)
		}
	}

	authSvc := auth.New(opts.Store, opts.HashSecret, log.WithField("component", "auth"))
	checkoutSvc := checkout.New(opts.Store, opts.Charger, opts.Mailer, opts.Source, log.WithField("component", "checkout"))
	reaperSvc := reaper.New(opts.Store, log.WithField("component", "reaper"))

	router := httpapi.NewRouter(
		httpapi.NewUserHandler(opts.Store, authSvc, log.WithField("component", "users")),
		httpapi.NewTokenHandler(authSvc, log.WithField("component", "tokens")),
		httpapi.NewMenuHandler(opts.Store, authSvc, log.WithField("component", "menu")),
		httpapi.NewCartHandler(opts.Store, authSvc, log.WithField("component", "cart")),
		httpapi.NewOrderHandler(authSvc, checkoutSvc, log.WithField("component", "orders")),
	)

	manager := system.NewManager()
	if err := manager.Register(reaperSvc); err != nil {
		return nil, fmt.Errorf("register reaper: %w", err)
	}

	return &Application{
		manager:  manager,
		log:      log,
		Store:    opts.Store,
		Auth:     authSvc,
		Checkout: checkoutSvc,
		Reaper:   reaperSvc,
		Router:   router,
	}, nil
}

// seedMenu writes the configured catalogue into the menu collection so the
// handlers and the inspection CLI read the same record.
func seedMenu(ctx context.Context, store storage.Store, items []menu.Item) error {
	err := store.Create(ctx, storage.Menu, storage.MenuKey, items)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return store.Update(ctx, storage.Menu, storage.MenuKey, items)
	}
	return err
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered background services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all background services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
