// Package httpapi implements the request-routing and handler-dispatch
// pipeline: a router mapping path segments to per-resource handlers, each of
// which dispatches on the HTTP method and enforces the bearer-token
// authorization contract before touching business state.
package httpapi

import "context"

// Handler consumes a normalized request and produces a structured response.
// Expected failures are encoded in the response; only programmer errors are
// allowed to escape (the dispatcher converts those to a 500).
type Handler interface {
	Handle(ctx context.Context, req *Request) *Response
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req *Request) *Response

func (f HandlerFunc) Handle(ctx context.Context, req *Request) *Response {
	return f(ctx, req)
}
