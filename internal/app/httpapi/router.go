package httpapi

import (
	"context"
	"fmt"
	"net/http"
)

// Router maps a normalized path segment to exactly one resource handler.
// Unknown paths fall back to a fixed not-found handler.
type Router struct {
	routes   map[string]Handler
	notFound Handler
}

// NewRouter builds the static route table over the resource handlers.
func NewRouter(users *UserHandler, tokens *TokenHandler, menu *MenuHandler, carts *CartHandler, orders *OrderHandler) *Router {
	return &Router{
		routes: map[string]Handler{
			"users":  users,
			"token":  tokens,
			"menu":   menu,
			"cart":   carts,
			"orders": orders,
			"ping": HandlerFunc(func(context.Context, *Request) *Response {
				return &Response{Status: http.StatusOK}
			}),
			"hello": HandlerFunc(func(_ context.Context, req *Request) *Response {
				return OK(map[string]string{"message": fmt.Sprintf("Hello, %s", req.QueryParam("name"))})
			}),
		},
		notFound: HandlerFunc(func(context.Context, *Request) *Response {
			return &Response{Status: http.StatusNotFound}
		}),
	}
}

// Route selects the handler for a normalized path segment.
func (r *Router) Route(path string) Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return r.notFound
}
