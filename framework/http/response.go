package http

import (
	"encoding/json"
	"net/http"

	"github.com/km-arc/go-beans/framework/http/validation"
)

// Body is the envelope of every JSON reply built by Response. RequestID
// echoes the request scope that served the call.
type Body struct {
	Data      any                 `json:"data,omitempty"`
	Message   string              `json:"message,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
}

// Response writes enveloped JSON replies to a ResponseWriter.
type Response struct {
	w http.ResponseWriter
}

func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the wrapped writer.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// JSON encodes v as is, without the envelope.
//
//	res.JSON(http.StatusOK, map[string]any{"status": "ok"})
func (res *Response) JSON(status int, v any) {
	h := res.w.Header()
	h.Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	enc := json.NewEncoder(res.w)
	_ = enc.Encode(v)
}

func (res *Response) Text(status int, body string) {
	res.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.w.WriteHeader(status)
	_, _ = res.w.Write([]byte(body))
}

func (res *Response) send(status int, b Body) {
	b.RequestID = res.w.Header().Get(RequestIDHeader)
	res.JSON(status, b)
}

// Success replies 200 with v under "data".
func (res *Response) Success(v any) { res.send(http.StatusOK, Body{Data: v}) }

// Created replies 201 with v under "data".
func (res *Response) Created(v any) { res.send(http.StatusCreated, Body{Data: v}) }

// Error replies status with message. An empty message falls back to the
// status text.
func (res *Response) Error(status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	res.send(status, Body{Message: message})
}

func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, optional(message))
}

func (res *Response) ServerError(message ...string) {
	res.Error(http.StatusInternalServerError, optional(message))
}

// ValidationError replies 422 with the failing fields under "errors".
func (res *Response) ValidationError(errs *validation.Errors) {
	res.send(http.StatusUnprocessableEntity, Body{
		Message: "The given data was invalid.",
		Errors:  errs.Bag,
	})
}

func optional(message []string) string {
	if len(message) == 0 {
		return ""
	}
	return message[0]
}
