package reaper

import (
	"context"
	"testing"
	"time"

	"github.com/plateful/backend/internal/app/domain/cart"
	"github.com/plateful/backend/internal/app/domain/token"
	"github.com/plateful/backend/internal/app/storage"
	"github.com/plateful/backend/internal/app/storage/memory"
)

func TestSweep(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	now := time.Now()

	expired := token.Token{ID: "expiredexpiredexpire", Email: "old@example.com", Expires: now.Add(-time.Minute)}
	live := token.Token{ID: "livelivelivelivelive", Email: "new@example.com", Expires: now.Add(time.Hour)}

	for _, tok := range []token.Token{expired, live} {
		if err := store.Create(ctx, storage.Tokens, tok.ID, tok); err != nil {
			t.Fatalf("seed token: %v", err)
		}
		if err := store.Create(ctx, storage.Carts, tok.ID, cart.Cart{{ID: 1, Name: "Margherita", Price: 9.99}}); err != nil {
			t.Fatalf("seed cart: %v", err)
		}
	}

	r := New(store, nil).WithClock(func() time.Time { return now })
	r.Sweep(ctx)

	if found, _ := store.Read(ctx, storage.Tokens, expired.ID, &token.Token{}); found {
		t.Fatal("expired token not removed")
	}
	if found, _ := store.Read(ctx, storage.Carts, expired.ID, &cart.Cart{}); found {
		t.Fatal("expired token's cart not removed")
	}

	if found, _ := store.Read(ctx, storage.Tokens, live.ID, &token.Token{}); !found {
		t.Fatal("live token must survive the sweep")
	}
	if found, _ := store.Read(ctx, storage.Carts, live.ID, &cart.Cart{}); !found {
		t.Fatal("live token's cart must survive the sweep")
	}
}

func TestSweepWithoutCart(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	now := time.Now()

	tok := token.Token{ID: "cartlesscartlesscart", Email: "x@example.com", Expires: now.Add(-time.Minute)}
	if err := store.Create(ctx, storage.Tokens, tok.ID, tok); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	r := New(store, nil).WithClock(func() time.Time { return now })
	r.Sweep(ctx)

	if found, _ := store.Read(ctx, storage.Tokens, tok.ID, &token.Token{}); found {
		t.Fatal("expired token not removed")
	}
}

func TestStartStopIdempotent(t *testing.T) {
	store := memory.New()
	r := New(store, nil).WithSchedule("@every 1h")

	ctx := context.Background()
	if err := r.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := r.Start(ctx); err != nil {
		t.Fatalf("second start: %v", err)
	}
	if err := r.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := r.Stop(ctx); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}
