package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/plateful/backend/internal/app/services/auth"
	"github.com/plateful/backend/pkg/logger"
)

// TokenHandler serves the token lifecycle: login (POST), read (GET), extend
// (PUT) and revoke (DELETE).
type TokenHandler struct {
	auth *auth.Service
	log  *logger.Logger
}

// NewTokenHandler creates the token resource handler.
func NewTokenHandler(authSvc *auth.Service, log *logger.Logger) *TokenHandler {
	if log == nil {
		log = logger.NewDefault("tokens")
	}
	return &TokenHandler{auth: authSvc, log: log}
}

func (h *TokenHandler) Handle(ctx context.Context, req *Request) *Response {
	switch req.Method {
	case "post":
		return h.issue(ctx, req)
	case "get":
		return h.get(ctx, req)
	case "put":
		return h.extend(ctx, req)
	case "delete":
		return h.revoke(ctx, req)
	default:
		return methodNotAllowed()
	}
}

func (h *TokenHandler) fail(err error) *Response {
	h.log.WithError(err).Error("tokens handler fault")
	return Err(http.StatusInternalServerError, "server error, failed to process the request")
}

func (h *TokenHandler) issue(ctx context.Context, req *Request) *Response {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	req.DecodeBody(&payload)

	email, okEmail := emailField(payload.Email)
	password, okPass := requiredString(payload.Password)
	if !okEmail || !okPass {
		return Err(http.StatusBadRequest, "missing required fields")
	}

	tok, err := h.auth.Issue(ctx, email, password)
	switch {
	case errors.Is(err, auth.ErrNotFound):
		return Err(http.StatusNotFound, "cannot find user")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return Err(http.StatusUnauthorized, "invalid password")
	case err != nil:
		return h.fail(err)
	}
	return OK(tok)
}

func (h *TokenHandler) get(ctx context.Context, req *Request) *Response {
	tokenID, ok := tokenIDField(req.QueryParam("tokenId"))
	if !ok {
		return Err(http.StatusBadRequest, "missing required fields")
	}

	tok, err := h.auth.Lookup(ctx, tokenID)
	switch {
	case errors.Is(err, auth.ErrNotFound), errors.Is(err, auth.ErrExpired):
		return Err(http.StatusNotFound, "token not found or might have expired")
	case err != nil:
		return h.fail(err)
	}
	return OK(tok)
}

func (h *TokenHandler) extend(ctx context.Context, req *Request) *Response {
	var payload struct {
		TokenID string `json:"tokenId"`
		Extend  bool   `json:"extend"`
	}
	req.DecodeBody(&payload)

	tokenID, ok := tokenIDField(payload.TokenID)
	// The extend flag must be literally true; anything else is rejected.
	if !ok || !payload.Extend {
		return Err(http.StatusBadRequest, "missing required fields")
	}

	err := h.auth.Extend(ctx, tokenID)
	switch {
	case errors.Is(err, auth.ErrNotFound):
		return Err(http.StatusNotFound, "token not found")
	case errors.Is(err, auth.ErrExpired):
		return Err(http.StatusBadRequest, "token is expired")
	case err != nil:
		return h.fail(err)
	}
	return OK(nil)
}

func (h *TokenHandler) revoke(ctx context.Context, req *Request) *Response {
	tokenID, ok := tokenIDField(req.QueryParam("tokenId"))
	if !ok {
		return Err(http.StatusBadRequest, "missing required fields")
	}

	err := h.auth.Revoke(ctx, tokenID)
	switch {
	case errors.Is(err, auth.ErrNotFound):
		return Err(http.StatusNotFound, "token not found")
	case err != nil:
		return h.fail(err)
	}
	return OK(map[string]string{"result": "token deleted"})
}
