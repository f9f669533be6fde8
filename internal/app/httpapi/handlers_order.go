package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/plateful/backend/internal/app/services/auth"
	"github.com/plateful/backend/internal/app/services/checkout"
	"github.com/plateful/backend/pkg/logger"
)

// OrderHandler triggers the checkout workflow. Orders are placed with POST
// only; the append-only order log has no other wire surface.
type OrderHandler struct {
	auth     *auth.Service
	checkout *checkout.Service
	log      *logger.Logger
}

// NewOrderHandler creates the orders resource handler.
func NewOrderHandler(authSvc *auth.Service, checkoutSvc *checkout.Service, log *logger.Logger) *OrderHandler {
	if log == nil {
		log = logger.NewDefault("orders")
	}
	return &OrderHandler{auth: authSvc, checkout: checkoutSvc, log: log}
}

func (h *OrderHandler) Handle(ctx context.Context, req *Request) *Response {
	if req.Method != "post" {
		return methodNotAllowed()
	}

	var payload struct {
		Email string `json:"email"`
	}
	req.DecodeBody(&payload)

	email, ok := emailField(payload.Email)
	if !ok {
		return Err(http.StatusBadRequest, "missing required fields")
	}
	if !h.auth.Verify(ctx, req.Token, email) {
		return unauthorized()
	}

	_, chargeBody, err := h.checkout.PlaceOrder(ctx, email, req.Token)

	var upstream *checkout.UpstreamError
	switch {
	case errors.Is(err, checkout.ErrNoCart):
		return Err(http.StatusBadRequest, "shopping cart does not exist for this token session")
	case errors.Is(err, checkout.ErrEmptyCart):
		return Err(http.StatusBadRequest, "shopping cart is empty")
	case errors.As(err, &upstream):
		// Charge and email failures both surface the provider body with a
		// 400, even when the charge itself already committed.
		return ErrBody(http.StatusBadRequest, upstream.Body)
	case err != nil:
		h.log.WithError(err).Error("orders handler fault")
		return Err(http.StatusInternalServerError, "server error, failed to process the request")
	}
	return OK(chargeBody)
}
