// Package checkout runs the order-placement workflow: price the cart,
// persist a pending order, charge the card, clear the cart, mark the order
// paid and email the receipt. The steps run strictly in that sequence.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/plateful/backend/internal/app/domain/cart"
	"github.com/plateful/backend/internal/app/domain/order"
	"github.com/plateful/backend/internal/app/metrics"
	"github.com/plateful/backend/internal/app/services/mailer"
	"github.com/plateful/backend/internal/app/services/payment"
	"github.com/plateful/backend/internal/app/services/random"
	"github.com/plateful/backend/internal/app/storage"
	"github.com/plateful/backend/pkg/logger"
)

const (
	chargeCurrency  = "usd"
	orderSuffixSize = 8
)

var (
	// ErrNoCart means no cart exists for the token session.
	ErrNoCart = errors.New("shopping cart does not exist for this token session")
	// ErrEmptyCart means the cart exists but holds no items.
	ErrEmptyCart = errors.New("shopping cart is empty")
)

// UpstreamError reports a payment or email provider failure together with
// the provider's response body, which is surfaced to the caller verbatim.
type UpstreamError struct {
	Stage string // "charge" or "email"
	Body  map[string]any
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s provider reported failure", e.Stage)
}

// Service executes checkouts against the storage, payment and email
// collaborators.
type Service struct {
	store   storage.Store
	charger payment.Charger
	mail    mailer.Mailer
	source  string
	now     func() time.Time
	log     *logger.Logger
}

// New creates a checkout service charging the fixed payment source.
func New(store storage.Store, charger payment.Charger, mail mailer.Mailer, source string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("checkout")
	}
	return &Service{
		store:   store,
		charger: charger,
		mail:    mail,
		source:  source,
		now:     time.Now,
		log:     log,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// PlaceOrder runs the checkout workflow for an authenticated session. On
// success it returns the paid order and the payment provider's response
// body. A charge failure leaves the pending order persisted and the cart
// untouched so the user can retry; an email failure after a successful
// charge still surfaces as an UpstreamError even though the order is
// already paid and the cart already cleared.
func (s *Service) PlaceOrder(ctx context.Context, email, tokenID string) (order.Order, map[string]any, error) {
	var items cart.Cart
	found, err := s.store.Read(ctx, storage.Carts, tokenID, &items)
	if err != nil {
		return order.Order{}, nil, fmt.Errorf("read cart: %w", err)
	}
	if !found {
		return order.Order{}, nil, ErrNoCart
	}
	if len(items) == 0 {
		return order.Order{}, nil, ErrEmptyCart
	}

	total := order.TotalCents(items)

	suffix, err := random.String(orderSuffixSize)
	if err != nil {
		return order.Order{}, nil, fmt.Errorf("generate order id: %w", err)
	}
	ord := order.Order{
		ID:          fmt.Sprintf("%s_%s_%s", email, tokenID, suffix),
		Total:       total,
		Cart:        items,
		Status:      order.StatusPending,
		TimeCreated: s.now(),
	}

	// The pending record is written before charging so a failed charge still
	// leaves an audit trail of the attempt.
	if err := s.store.Create(ctx, storage.Orders, ord.ID, ord); err != nil {
		return order.Order{}, nil, fmt.Errorf("persist order: %w", err)
	}

	description := fmt.Sprintf("capture payment for order %s", ord.ID)
	result, err := s.charger.Charge(ctx, total, chargeCurrency, s.source, description)
	if err != nil {
		s.log.WithError(err).WithField("order_id", ord.ID).Warn("charge transport failure")
		metrics.RecordOrder("charge_failed")
		return ord, nil, &UpstreamError{Stage: "charge", Body: map[string]any{"error": err.Error()}}
	}
	if !result.Success {
		s.log.WithField("order_id", ord.ID).Warn("charge declined")
		metrics.RecordOrder("charge_failed")
		return ord, nil, &UpstreamError{Stage: "charge", Body: result.Body}
	}

	s.clearCart(ctx, tokenID)

	ord.Status = order.StatusPaid
	if err := s.store.Update(ctx, storage.Orders, ord.ID, ord); err != nil {
		return ord, nil, fmt.Errorf("mark order paid: %w", err)
	}

	subject := fmt.Sprintf("Order %s processed", ord.ID)
	dollars := strconv.FormatFloat(float64(total)/100, 'f', -1, 64)
	text := fmt.Sprintf("We have charged $%s on your card for order %s.\n Your Meal will be delivered within 30 minutes.", dollars, ord.ID)

	mailResult, err := s.mail.Send(ctx, email, subject, text)
	if err != nil {
		s.log.WithError(err).WithField("order_id", ord.ID).Warn("receipt email transport failure")
		metrics.RecordOrder("email_failed")
		return ord, nil, &UpstreamError{Stage: "email", Body: map[string]any{"error": err.Error()}}
	}
	if !mailResult.Success {
		s.log.WithField("order_id", ord.ID).Warn("receipt email rejected")
		metrics.RecordOrder("email_failed")
		return ord, nil, &UpstreamError{Stage: "email", Body: mailResult.Body}
	}

	s.log.WithField("order_id", ord.ID).WithField("total_cents", total).Info("order paid")
	metrics.RecordOrder("paid")
	return ord, result.Body, nil
}

// clearCart empties the session's cart. A missing cart at this point means
// it was already logically cleared, so that is a no-op rather than an abort.
func (s *Service) clearCart(ctx context.Context, tokenID string) {
	var items cart.Cart
	found, err := s.store.Read(ctx, storage.Carts, tokenID, &items)
	if err != nil || !found {
		return
	}
	if err := s.store.Update(ctx, storage.Carts, tokenID, cart.Cart{}); err != nil {
		s.log.WithError(err).WithField("token", tokenID).Warn("clear cart failed")
	}
}
