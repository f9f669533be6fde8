// Package payment defines the outbound card-charge collaborator and its
// Stripe-backed implementation.
package payment

import "context"

// Result carries the provider's verdict and raw response body. Success is
// false for any non-2xx provider response.
type Result struct {
	Success bool
	Body    map[string]any
}

// Charger charges a payment source. Amount is in the smallest currency unit;
// currency is a three-letter lowercase code.
type Charger interface {
	Charge(ctx context.Context, amountCents int64, currency, source, description string) (Result, error)
}

// ChargerFunc adapts a function to the Charger interface.
type ChargerFunc func(ctx context.Context, amountCents int64, currency, source, description string) (Result, error)

func (f ChargerFunc) Charge(ctx context.Context, amountCents int64, currency, source, description string) (Result, error) {
	return f(ctx, amountCents, currency, source, description)
}
