package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newResponse(t *testing.T) (*gohttp.Response, *httptest.ResponseRecorder) {
	t.Helper()
	rr := httptest.NewRecorder()
	return gohttp.NewResponse(rr), rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&m); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	return m
}

// ── JSON ──────────────────────────────────────────────────────────────────────

func TestResponse_JSON(t *testing.T) {
	res, rr := newResponse(t)
	res.JSON(http.StatusOK, map[string]any{"key": "val"})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q want application/json", ct)
	}
	if m := decodeJSON(t, rr); m["key"] != "val" {
		t.Errorf("body key: got %v want val", m["key"])
	}
}

func TestResponse_Envelopes(t *testing.T) {
	tests := []struct {
		name   string
		send   func(*gohttp.Response)
		status int
		key    string
	}{
		{"success", func(r *gohttp.Response) { r.Success(1) }, http.StatusOK, "data"},
		{"created", func(r *gohttp.Response) { r.Created(1) }, http.StatusCreated, "data"},
		{"error", func(r *gohttp.Response) { r.Error(http.StatusBadRequest, "bad") }, http.StatusBadRequest, "message"},
		{"not found", func(r *gohttp.Response) { r.NotFound() }, http.StatusNotFound, "message"},
		{"server error", func(r *gohttp.Response) { r.ServerError() }, http.StatusInternalServerError, "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			tt.send(res)
			if rr.Code != tt.status {
				t.Errorf("status: got %d want %d", rr.Code, tt.status)
			}
			if _, ok := decodeJSON(t, rr)[tt.key]; !ok {
				t.Errorf("body has no %q key", tt.key)
			}
		})
	}
}

func TestResponse_NotFound_CustomMessage(t *testing.T) {
	res, rr := newResponse(t)
	res.NotFound("member 7 not found")

	if m := decodeJSON(t, rr); m["message"] != "member 7 not found" {
		t.Errorf("message: got %v", m["message"])
	}
}

func TestResponse_Text(t *testing.T) {
	res, rr := newResponse(t)
	res.Text(http.StatusOK, "OK")

	if rr.Body.String() != "OK" {
		t.Errorf("body: got %q want OK", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestResponse_ValidationError(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"itemName": "required"})
	_ = v.Fails()

	res, rr := newResponse(t)
	res.ValidationError(v.Errors())

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d want 422", rr.Code)
	}
	errs, ok := decodeJSON(t, rr)["errors"].(map[string]any)
	if !ok {
		t.Fatal("missing errors bag")
	}
	if _, ok := errs["itemName"]; !ok {
		t.Errorf("errors bag missing itemName: %v", errs)
	}
}

func TestResponse_DefaultMessage(t *testing.T) {
	res, rr := newResponse(t)
	res.ServerError()

	if m := decodeJSON(t, rr); m["message"] != "Internal Server Error" {
		t.Errorf("message: got %v", m["message"])
	}
}

func TestResponse_EchoesRequestID(t *testing.T) {
	res, rr := newResponse(t)
	rr.Header().Set(gohttp.RequestIDHeader, "scope-1")
	res.Success("x")

	if m := decodeJSON(t, rr); m["requestId"] != "scope-1" {
		t.Errorf("requestId: got %v want scope-1", m["requestId"])
	}

	res, rr = newResponse(t)
	res.JSON(http.StatusOK, map[string]int{"n": 1})
	if _, ok := decodeJSON(t, rr)["requestId"]; ok {
		t.Error("plain JSON must not be enveloped")
	}
}
