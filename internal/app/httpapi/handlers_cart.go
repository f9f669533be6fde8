package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/plateful/backend/internal/app/domain/cart"
	"github.com/plateful/backend/internal/app/services/auth"
	"github.com/plateful/backend/internal/app/storage"
	"github.com/plateful/backend/pkg/logger"
)

// CartHandler serves the per-session shopping cart, keyed by token id.
type CartHandler struct {
	store storage.Store
	auth  *auth.Service
	log   *logger.Logger
}

// NewCartHandler creates the cart resource handler.
func NewCartHandler(store storage.Store, authSvc *auth.Service, log *logger.Logger) *CartHandler {
	if log == nil {
		log = logger.NewDefault("cart")
	}
	return &CartHandler{store: store, auth: authSvc, log: log}
}

func (h *CartHandler) Handle(ctx context.Context, req *Request) *Response {
	switch req.Method {
	case "post":
		return h.create(ctx, req)
	case "get":
		return h.get(ctx, req)
	case "put":
		return h.replace(ctx, req)
	case "delete":
		return h.delete(ctx, req)
	default:
		return methodNotAllowed()
	}
}

func (h *CartHandler) fail(err error) *Response {
	h.log.WithError(err).Error("cart handler fault")
	return Err(http.StatusInternalServerError, "server error, failed to process the request")
}

// authorize runs the shared token/email gate. Every cart operation requires
// it before any business field is evaluated.
func (h *CartHandler) authorize(ctx context.Context, req *Request, email string) *Response {
	trimmed, ok := emailField(email)
	if !ok {
		return Err(http.StatusBadRequest, "missing required fields")
	}
	if !h.auth.Verify(ctx, req.Token, trimmed) {
		return unauthorized()
	}
	return nil
}

func (h *CartHandler) create(ctx context.Context, req *Request) *Response {
	var payload struct {
		Email string `json:"email"`
	}
	req.DecodeBody(&payload)

	if resp := h.authorize(ctx, req, payload.Email); resp != nil {
		return resp
	}

	// Atomic create guards against double initialisation of the session cart.
	if err := h.store.Create(ctx, storage.Carts, req.Token, cart.Cart{}); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return Err(http.StatusConflict, "shopping cart already exists")
		}
		return h.fail(fmt.Errorf("create cart: %w", err))
	}
	return OK(nil)
}

func (h *CartHandler) get(ctx context.Context, req *Request) *Response {
	if resp := h.authorize(ctx, req, req.QueryParam("email")); resp != nil {
		return resp
	}

	var items cart.Cart
	found, err := h.store.Read(ctx, storage.Carts, req.Token, &items)
	if err != nil {
		return h.fail(err)
	}
	if !found {
		return Err(http.StatusNotFound, "no shopping cart found for this token")
	}
	return OK(items)
}

// replace overwrites the whole cart. The submitted array is accepted only if
// every item matches the current menu; one bad item rejects the lot.
func (h *CartHandler) replace(ctx context.Context, req *Request) *Response {
	var payload struct {
		Email    string     `json:"email"`
		CartData *cart.Cart `json:"cartData"`
	}
	req.DecodeBody(&payload)

	if resp := h.authorize(ctx, req, payload.Email); resp != nil {
		return resp
	}
	if payload.CartData == nil {
		return Err(http.StatusBadRequest, "missing required fields")
	}

	catalogue, _ := readMenu(ctx, h.store)
	if !payload.CartData.Valid(catalogue) {
		return Err(http.StatusBadRequest, "invalid cart data, cannot update")
	}

	var existing cart.Cart
	found, err := h.store.Read(ctx, storage.Carts, req.Token, &existing)
	if err != nil {
		return h.fail(err)
	}
	if !found {
		return Err(http.StatusNotFound, "no shopping cart found for this token")
	}

	if err := h.store.Update(ctx, storage.Carts, req.Token, payload.CartData); err != nil {
		return h.fail(fmt.Errorf("update cart: %w", err))
	}
	return OK(nil)
}

func (h *CartHandler) delete(ctx context.Context, req *Request) *Response {
	if resp := h.authorize(ctx, req, req.QueryParam("email")); resp != nil {
		return resp
	}

	var items cart.Cart
	found, err := h.store.Read(ctx, storage.Carts, req.Token, &items)
	if err != nil {
		return h.fail(err)
	}
	if !found {
		return Err(http.StatusNotFound, "cart does not exist")
	}

	h.store.Delete(ctx, storage.Carts, req.Token)
	return OK(map[string]string{"result": "success"})
}
