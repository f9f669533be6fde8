package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

// Request is the normalized form every handler consumes: a slash-trimmed
// lower-cased path, a lower-cased method, parsed query parameters, the raw
// headers, the bearer token (empty when absent or malformed) and the raw
// body bytes.
type Request struct {
	Path    string
	Method  string
	Query   url.Values
	Headers http.Header
	Token   string
	Body    []byte
}

// QueryParam returns the first value of a query parameter.
func (r *Request) QueryParam(name string) string {
	return r.Query.Get(name)
}

// DecodeBody best-effort unmarshals the JSON body into dst. A missing or
// malformed body leaves dst untouched; it is never an error, mirroring the
// tolerant parse at the dispatcher boundary.
func (r *Request) DecodeBody(dst any) {
	if len(r.Body) == 0 || !gjson.ValidBytes(r.Body) {
		return
	}
	_ = json.Unmarshal(r.Body, dst)
}
