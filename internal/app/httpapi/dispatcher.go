package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plateful/backend/pkg/logger"
)

// maxBodyBytes bounds how much request body the dispatcher will buffer.
const maxBodyBytes = 1 << 20

// Dispatcher is the top-level entry point for every inbound request. It
// normalizes the request, selects a handler through the router, and maps the
// structured result onto the wire. An uncaught handler fault becomes a
// generic 500; raw internal errors never reach the client.
type Dispatcher struct {
	router *Router
	log    *logger.Logger
}

var _ http.Handler = (*Dispatcher)(nil)

// NewDispatcher creates the dispatcher over a route table.
func NewDispatcher(router *Router, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.NewDefault("dispatcher")
	}
	return &Dispatcher{router: router, log: log}
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		body = nil
	}

	req := &Request{
		Path:    strings.ToLower(strings.Trim(r.URL.Path, "/")),
		Method:  strings.ToLower(r.Method),
		Query:   r.URL.Query(),
		Headers: r.Header,
		Token:   bearerToken(r.Header.Get("Authorization")),
		Body:    body,
	}

	resp := d.dispatch(req, r)

	writeResponse(w, resp)

	log := d.log.
		WithField("request_id", requestID).
		WithField("method", r.Method).
		WithField("path", "/"+req.Path).
		WithField("status", resp.Status).
		WithField("duration", time.Since(start).String())
	if resp.Status < http.StatusBadRequest {
		log.Info("request handled")
	} else {
		log.Warn("request failed")
	}
}

// dispatch invokes the routed handler, converting a panic into the fixed 500
// response so a single bad request cannot take the process down.
func (d *Dispatcher) dispatch(req *Request, r *http.Request) (resp *Response) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log.WithField("panic", rec).WithField("path", "/"+req.Path).Error("handler fault")
			resp = Err(http.StatusInternalServerError, "server error, failed to process the request")
		}
	}()

	resp = d.router.Route(req.Path).Handle(r.Context(), req)
	if resp == nil {
		resp = Err(http.StatusInternalServerError, "server error, failed to process the request")
	}
	return resp
}

// bearerToken extracts the credential from an "Authorization: Bearer <t>"
// header. A missing or malformed header yields an empty token, not an error.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return ""
	}
	return parts[1]
}

func writeResponse(w http.ResponseWriter, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)

	body := resp.Body
	if body == nil {
		body = map[string]any{}
	}
	_ = json.NewEncoder(w).Encode(body)
}
