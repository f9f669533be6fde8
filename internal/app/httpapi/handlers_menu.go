package httpapi

import (
	"context"
	"net/http"

	"github.com/plateful/backend/internal/app/domain/menu"
	"github.com/plateful/backend/internal/app/services/auth"
	"github.com/plateful/backend/internal/app/storage"
	"github.com/plateful/backend/pkg/logger"
)

// MenuHandler serves the read-only menu catalogue.
type MenuHandler struct {
	store storage.Store
	auth  *auth.Service
	log   *logger.Logger
}

// NewMenuHandler creates the menu resource handler.
func NewMenuHandler(store storage.Store, authSvc *auth.Service, log *logger.Logger) *MenuHandler {
	if log == nil {
		log = logger.NewDefault("menu")
	}
	return &MenuHandler{store: store, auth: authSvc, log: log}
}

func (h *MenuHandler) Handle(ctx context.Context, req *Request) *Response {
	if req.Method != "get" {
		return methodNotAllowed()
	}

	email, ok := emailField(req.QueryParam("email"))
	if !ok {
		return Err(http.StatusBadRequest, "missing required fields")
	}
	if !h.auth.Verify(ctx, req.Token, email) {
		return unauthorized()
	}

	catalogue, found := readMenu(ctx, h.store)
	if !found {
		return Err(http.StatusNotFound, "menu is not available")
	}
	return OK(catalogue)
}

// readMenu loads the single catalogue record shared by the menu handler and
// cart validation.
func readMenu(ctx context.Context, store storage.Store) ([]menu.Item, bool) {
	var catalogue []menu.Item
	found, err := store.Read(ctx, storage.Menu, storage.MenuKey, &catalogue)
	if err != nil || !found {
		return nil, false
	}
	return catalogue, true
}
