package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/plateful/backend/internal/app/domain/user"
	"github.com/plateful/backend/internal/app/services/auth"
	"github.com/plateful/backend/internal/app/storage"
	"github.com/plateful/backend/pkg/logger"
)

// UserHandler serves signup and self-service account management.
type UserHandler struct {
	store storage.Store
	auth  *auth.Service
	log   *logger.Logger
}

// NewUserHandler creates the users resource handler.
func NewUserHandler(store storage.Store, authSvc *auth.Service, log *logger.Logger) *UserHandler {
	if log == nil {
		log = logger.NewDefault("users")
	}
	return &UserHandler{store: store, auth: authSvc, log: log}
}

func (h *UserHandler) Handle(ctx context.Context, req *Request) *Response {
	switch req.Method {
	case "post":
		return h.create(ctx, req)
	case "get":
		return h.get(ctx, req)
	case "put":
		return h.update(ctx, req)
	case "delete":
		return h.delete(ctx, req)
	default:
		return methodNotAllowed()
	}
}

type userPayload struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	Address   string `json:"address"`
}

// create handles signup. The atomic create on the users collection is what
// prevents two signups racing on the same email.
func (h *UserHandler) create(ctx context.Context, req *Request) *Response {
	var payload userPayload
	req.DecodeBody(&payload)

	email, okEmail := emailField(payload.Email)
	firstName, okFirst := requiredString(payload.FirstName)
	lastName, okLast := requiredString(payload.LastName)
	password, okPass := requiredString(payload.Password)
	address, okAddr := boundedString(payload.Address, maxAddressLength)
	if !okEmail || !okFirst || !okLast || !okPass || !okAddr {
		return Err(http.StatusBadRequest, "missing required fields")
	}

	record := user.User{
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		HashedPassword: h.auth.HashPassword(password),
		Address:        address,
	}
	if err := h.store.Create(ctx, storage.Users, email, record); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return Err(http.StatusConflict, "this email address is already in use")
		}
		return h.fail(fmt.Errorf("create user: %w", err))
	}

	h.log.WithField("email", email).Info("user created")
	return OK(map[string]string{"result": "success"})
}

func (h *UserHandler) fail(err error) *Response {
	h.log.WithError(err).Error("users handler fault")
	return Err(http.StatusInternalServerError, "server error, failed to process the request")
}

func (h *UserHandler) get(ctx context.Context, req *Request) *Response {
	email, ok := emailField(req.QueryParam("email"))
	if !ok {
		return Err(http.StatusBadRequest, "missing required fields")
	}
	if !h.auth.Verify(ctx, req.Token, email) {
		return unauthorized()
	}

	var record user.User
	found, err := h.store.Read(ctx, storage.Users, email, &record)
	if err != nil {
		return h.fail(err)
	}
	if !found {
		return Err(http.StatusNotFound, "cannot find user with this email address")
	}
	return OK(record.Public())
}

// update applies a partial self-service update. Optional fields that fail
// validation are dropped rather than rejected.
func (h *UserHandler) update(ctx context.Context, req *Request) *Response {
	var payload userPayload
	req.DecodeBody(&payload)

	email, ok := emailField(payload.Email)
	if !ok {
		return Err(http.StatusBadRequest, "missing required fields")
	}
	if !h.auth.Verify(ctx, req.Token, email) {
		return unauthorized()
	}

	var record user.User
	found, err := h.store.Read(ctx, storage.Users, email, &record)
	if err != nil {
		return h.fail(err)
	}
	if !found {
		return Err(http.StatusNotFound, "cannot find user with this email address")
	}

	if v, ok := requiredString(payload.FirstName); ok {
		record.FirstName = v
	}
	if v, ok := requiredString(payload.LastName); ok {
		record.LastName = v
	}
	if v, ok := boundedString(payload.Address, maxAddressLength); ok {
		record.Address = v
	}
	if v, ok := requiredString(payload.Password); ok {
		record.HashedPassword = h.auth.HashPassword(v)
	}

	if err := h.store.Update(ctx, storage.Users, email, record); err != nil {
		return h.fail(fmt.Errorf("update user: %w", err))
	}
	return OK(map[string]string{"result": "success"})
}

func (h *UserHandler) delete(ctx context.Context, req *Request) *Response {
	email, ok := emailField(req.QueryParam("email"))
	if !ok {
		return Err(http.StatusBadRequest, "missing required fields")
	}
	if !h.auth.Verify(ctx, req.Token, email) {
		return unauthorized()
	}

	var record user.User
	found, err := h.store.Read(ctx, storage.Users, email, &record)
	if err != nil {
		return h.fail(err)
	}
	if !found {
		return Err(http.StatusNotFound, "cannot find user with this email address")
	}

	h.store.Delete(ctx, storage.Users, email)
	h.log.WithField("email", email).Info("user deleted")
	return OK(map[string]string{"result": "success"})
}
