// Package reaper removes expired tokens and their shopping carts on a fixed
// schedule.
package reaper

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/plateful/backend/internal/app/domain/cart"
	"github.com/plateful/backend/internal/app/domain/token"
	"github.com/plateful/backend/internal/app/metrics"
	"github.com/plateful/backend/internal/app/storage"
	"github.com/plateful/backend/internal/app/system"
	"github.com/plateful/backend/pkg/logger"
)

// DefaultSchedule runs the sweep once per minute.
const DefaultSchedule = "@every 1m"

// Reaper is a lifecycle-managed background sweep. A fault on one record is
// logged and skipped; it never halts the sweep or the process.
type Reaper struct {
	store    storage.Store
	log      *logger.Logger
	schedule string
	now      func() time.Time

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

var _ system.Service = (*Reaper)(nil)

// New creates a reaper over the given store with the default schedule.
func New(store storage.Store, log *logger.Logger) *Reaper {
	if log == nil {
		log = logger.NewDefault("reaper")
	}
	return &Reaper{
		store:    store,
		log:      log,
		schedule: DefaultSchedule,
		now:      time.Now,
	}
}

// WithSchedule overrides the cron schedule. Call before Start.
func (r *Reaper) WithSchedule(schedule string) *Reaper {
	r.schedule = schedule
	return r
}

// WithClock overrides the time source. Intended for tests.
func (r *Reaper) WithClock(now func() time.Time) *Reaper {
	r.now = now
	return r
}

func (r *Reaper) Name() string { return "token-reaper" }

// Start runs one sweep immediately, then schedules the recurring sweep.
func (r *Reaper) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil
	}

	r.Sweep(ctx)

	c := cron.New()
	if _, err := c.AddFunc(r.schedule, func() { r.Sweep(context.Background()) }); err != nil {
		return err
	}
	c.Start()

	r.cron = c
	r.running = true
	r.log.Infof("reclamation sweep scheduled (%s)", r.schedule)
	return nil
}

// Stop cancels the schedule and waits for an in-flight sweep to finish.
func (r *Reaper) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return nil
	}

	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	r.running = false
	return nil
}

// Sweep scans every token and deletes the expired ones together with any
// shopping cart keyed by the same id.
func (r *Reaper) Sweep(ctx context.Context) {
	ids, err := r.store.List(ctx, storage.Tokens)
	if err != nil {
		r.log.WithError(err).Warn("list tokens")
		return
	}

	now := r.now()
	for _, id := range ids {
		var tok token.Token
		ok, err := r.store.Read(ctx, storage.Tokens, id, &tok)
		if err != nil || !ok {
			r.log.WithField("token", id).Warn("skipping unreadable token record")
			continue
		}
		if !tok.Expired(now) {
			continue
		}

		r.store.Delete(ctx, storage.Tokens, id)

		var items cart.Cart
		if found, _ := r.store.Read(ctx, storage.Carts, id, &items); found {
			r.store.Delete(ctx, storage.Carts, id)
		}

		metrics.RecordReapedToken()
		r.log.WithField("token", id).Info("cleaned up expired token")
	}
}
