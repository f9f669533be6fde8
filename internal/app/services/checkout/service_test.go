package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/app/domain/cart"
	"github.com/plateful/backend/internal/app/domain/order"
	"github.com/plateful/backend/internal/app/services/mailer"
	"github.com/plateful/backend/internal/app/services/payment"
	"github.com/plateful/backend/internal/app/storage"
	"github.com/plateful/backend/internal/app/storage/memory"
)

const (
	testEmail = "alice@example.com"
	testToken = "abcdefghij1234567890"
)

func okCharger() payment.Charger {
	return payment.ChargerFunc(func(ctx context.Context, amount int64, currency, source, description string) (payment.Result, error) {
		return payment.Result{Success: true, Body: map[string]any{"id": "ch_1", "amount": amount}}, nil
	})
}

func okMailer() mailer.Mailer {
	return mailer.MailerFunc(func(ctx context.Context, to, subject, text string) (mailer.Result, error) {
		return mailer.Result{Success: true, Body: map[string]any{"message": "Queued"}}, nil
	})
}

func seedCart(t *testing.T, store storage.Store, items cart.Cart) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), storage.Carts, testToken, items))
}

func TestTotalCents(t *testing.T) {
	cases := []struct {
		name  string
		items cart.Cart
		want  int64
	}{
		{"single item", cart.Cart{{ID: 1, Name: "Margherita", Price: 9.99}}, 999},
		{"duplicates summed", cart.Cart{{ID: 1, Price: 9.99}, {ID: 1, Price: 9.99}}, 1998},
		{"sum before converting", cart.Cart{{Price: 0.1}, {Price: 0.2}}, 30},
		{"empty", cart.Cart{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, order.TotalCents(tc.items))
		})
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	store := memory.New()
	seedCart(t, store, cart.Cart{{ID: 1, Name: "Margherita", Price: 9.99}})

	var sentTo, sentSubject, sentText string
	mail := mailer.MailerFunc(func(ctx context.Context, to, subject, text string) (mailer.Result, error) {
		sentTo, sentSubject, sentText = to, subject, text
		return mailer.Result{Success: true}, nil
	})

	svc := New(store, okCharger(), mail, "tok_mastercard", nil)
	ord, body, err := svc.PlaceOrder(context.Background(), testEmail, testToken)
	require.NoError(t, err)

	assert.Equal(t, order.StatusPaid, ord.Status)
	assert.Equal(t, int64(999), ord.Total)
	assert.True(t, strings.HasPrefix(ord.ID, testEmail+"_"+testToken+"_"))
	assert.Len(t, ord.ID, len(testEmail)+len(testToken)+2+8)
	assert.Equal(t, "ch_1", body["id"])

	// The persisted order is marked paid.
	var stored order.Order
	found, err := store.Read(context.Background(), storage.Orders, ord.ID, &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, order.StatusPaid, stored.Status)

	// The cart is cleared but still exists for the session.
	var items cart.Cart
	found, err = store.Read(context.Background(), storage.Carts, testToken, &items)
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, items)

	assert.Equal(t, testEmail, sentTo)
	assert.Equal(t, fmt.Sprintf("Order %s processed", ord.ID), sentSubject)
	assert.Contains(t, sentText, "We have charged $9.99 on your card for order "+ord.ID)
	assert.Contains(t, sentText, "delivered within 30 minutes")
}

func TestPlaceOrder_MissingOrEmptyCart(t *testing.T) {
	store := memory.New()
	svc := New(store, okCharger(), okMailer(), "tok_mastercard", nil)

	_, _, err := svc.PlaceOrder(context.Background(), testEmail, testToken)
	assert.ErrorIs(t, err, ErrNoCart)

	seedCart(t, store, cart.Cart{})
	_, _, err = svc.PlaceOrder(context.Background(), testEmail, testToken)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_ChargeDeclined(t *testing.T) {
	store := memory.New()
	seedCart(t, store, cart.Cart{{ID: 1, Name: "Margherita", Price: 9.99}})

	declined := payment.ChargerFunc(func(ctx context.Context, amount int64, currency, source, description string) (payment.Result, error) {
		return payment.Result{Success: false, Body: map[string]any{"error": map[string]any{"code": "card_declined"}}}, nil
	})
	mailed := false
	mail := mailer.MailerFunc(func(ctx context.Context, to, subject, text string) (mailer.Result, error) {
		mailed = true
		return mailer.Result{Success: true}, nil
	})

	svc := New(store, declined, mail, "tok_mastercard", nil)
	ord, _, err := svc.PlaceOrder(context.Background(), testEmail, testToken)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "charge", upstream.Stage)
	assert.Contains(t, upstream.Body, "error")
	assert.False(t, mailed, "no receipt email after a declined charge")

	// The pending order survives as the audit trail of the attempt.
	var stored order.Order
	found, readErr := store.Read(context.Background(), storage.Orders, ord.ID, &stored)
	require.NoError(t, readErr)
	require.True(t, found)
	assert.Equal(t, order.StatusPending, stored.Status)

	// The cart is untouched so the user can retry.
	var items cart.Cart
	found, readErr = store.Read(context.Background(), storage.Carts, testToken, &items)
	require.NoError(t, readErr)
	require.True(t, found)
	assert.Len(t, items, 1)
}

func TestPlaceOrder_ChargeTransportError(t *testing.T) {
	store := memory.New()
	seedCart(t, store, cart.Cart{{ID: 1, Name: "Margherita", Price: 9.99}})

	broken := payment.ChargerFunc(func(ctx context.Context, amount int64, currency, source, description string) (payment.Result, error) {
		return payment.Result{}, errors.New("connection refused")
	})

	svc := New(store, broken, okMailer(), "tok_mastercard", nil)
	_, _, err := svc.PlaceOrder(context.Background(), testEmail, testToken)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "charge", upstream.Stage)
	assert.Equal(t, "connection refused", upstream.Body["error"])
}

func TestPlaceOrder_EmailFailureAfterPayment(t *testing.T) {
	store := memory.New()
	seedCart(t, store, cart.Cart{{ID: 1, Name: "Margherita", Price: 9.99}})

	rejecting := mailer.MailerFunc(func(ctx context.Context, to, subject, text string) (mailer.Result, error) {
		return mailer.Result{Success: false, Body: map[string]any{"message": "Forbidden"}}, nil
	})

	svc := New(store, okCharger(), rejecting, "tok_mastercard", nil)
	ord, _, err := svc.PlaceOrder(context.Background(), testEmail, testToken)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "email", upstream.Stage)
	assert.Equal(t, "Forbidden", upstream.Body["message"])

	// The charge already went through, so the order stays paid and the cart
	// stays cleared even though the call reports an error.
	var stored order.Order
	found, readErr := store.Read(context.Background(), storage.Orders, ord.ID, &stored)
	require.NoError(t, readErr)
	require.True(t, found)
	assert.Equal(t, order.StatusPaid, stored.Status)

	var items cart.Cart
	found, readErr = store.Read(context.Background(), storage.Carts, testToken, &items)
	require.NoError(t, readErr)
	require.True(t, found)
	assert.Empty(t, items)
}

func TestPlaceOrder_ChargeRequest(t *testing.T) {
	store := memory.New()
	seedCart(t, store, cart.Cart{
		{ID: 1, Name: "Margherita", Price: 9.99},
		{ID: 6, Name: "Garlic Bread", Price: 4.5},
	})

	var gotAmount int64
	var gotCurrency, gotSource, gotDescription string
	charger := payment.ChargerFunc(func(ctx context.Context, amount int64, currency, source, description string) (payment.Result, error) {
		gotAmount, gotCurrency, gotSource, gotDescription = amount, currency, source, description
		return payment.Result{Success: true}, nil
	})

	svc := New(store, charger, okMailer(), "tok_visa", nil)
	ord, _, err := svc.PlaceOrder(context.Background(), testEmail, testToken)
	require.NoError(t, err)

	assert.Equal(t, int64(1449), gotAmount)
	assert.Equal(t, "usd", gotCurrency)
	assert.Equal(t, "tok_visa", gotSource)
	assert.Equal(t, "capture payment for order "+ord.ID, gotDescription)
}
