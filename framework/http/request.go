package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ErrEmptyBody is returned by Bind when a JSON request has no body.
var ErrEmptyBody = errors.New("empty request body")

// Request wraps *http.Request with input helpers. The body is read at most
// once and cached, so All and Bind can both be used on one request.
type Request struct {
	raw  *http.Request
	body []byte
	read bool
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// Body returns the raw request body.
func (req *Request) Body() ([]byte, error) {
	if req.read {
		return req.body, nil
	}
	req.read = true
	if req.raw.Body == nil {
		return nil, nil
	}
	defer req.raw.Body.Close()
	b, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return nil, err
	}
	req.body = b
	return b, nil
}

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the request body into v.
// Supports JSON and application/x-www-form-urlencoded.
func (req *Request) Bind(v any) error {
	if req.IsJSON() {
		body, err := req.Body()
		if err != nil {
			return err
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return ErrEmptyBody
		}
		return json.Unmarshal(body, v)
	}
	if err := req.raw.ParseForm(); err != nil {
		return err
	}
	return bindForm(req.raw.PostForm, v)
}

// bindForm maps form values onto v through its json tags.
func bindForm(values map[string][]string, v any) error {
	m := make(map[string]any, len(values))
	for k, vals := range values {
		if len(vals) == 1 {
			m[k] = vals[0]
		} else {
			m[k] = vals
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ── Input helpers ────────────────────────────────────────────────────────────

// All returns query and body input as a flat map, the shape validation.Make
// expects. JSON scalars are rendered as their literal text; a malformed JSON
// body contributes nothing and is reported later by Bind.
func (req *Request) All() map[string]string {
	out := make(map[string]string)
	for k, v := range req.raw.URL.Query() {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}

	if !req.IsJSON() {
		_ = req.raw.ParseForm()
		for k, v := range req.raw.PostForm {
			if len(v) > 0 {
				out[k] = v[0]
			}
		}
		return out
	}

	body, err := req.Body()
	if err != nil || len(body) == 0 {
		return out
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return out
	}
	for k, v := range fields {
		if s, ok := scalar(v); ok {
			out[k] = s
		}
	}
	return out
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// Input returns a single input value (query string OR body).
func (req *Request) Input(key string, fallback ...string) string {
	v := req.All()[key]
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// URL returns the full request URL as the client addressed it.
func (req *Request) URL() string {
	scheme := "http"
	if req.raw.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + req.raw.Host + req.raw.URL.RequestURI()
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON returns true when the body is JSON.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.ContentType(), "application/json")
}
