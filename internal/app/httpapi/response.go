package httpapi

import "net/http"

// Response is the structured result a handler hands back to the dispatcher.
// A nil Body serializes as an empty JSON object.
type Response struct {
	Status int
	Body   any
}

// OK wraps a 200 response.
func OK(body any) *Response {
	return &Response{Status: http.StatusOK, Body: body}
}

// Err wraps an error message into the wire error shape.
func Err(status int, msg string) *Response {
	return &Response{Status: status, Body: map[string]string{"error": msg}}
}

// ErrBody wraps a pre-built error body, used to surface upstream provider
// responses verbatim.
func ErrBody(status int, body any) *Response {
	if body == nil {
		body = map[string]any{}
	}
	return &Response{Status: status, Body: body}
}

func methodNotAllowed() *Response {
	return Err(http.StatusMethodNotAllowed, "method not allowed")
}

func unauthorized() *Response {
	return Err(http.StatusUnauthorized, "missing or invalid token for this email")
}
