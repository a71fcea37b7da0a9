package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type readyFunc func() bool

func (f readyFunc) Ready() bool { return f() }

func TestHealthEndpoints(t *testing.T) {
	h := NewHealthHandler(readyFunc(func() bool { return true }))
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	h.Liveness(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rr = httptest.NewRecorder()
	h.Readiness(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestReadinessWithoutDatabase(t *testing.T) {
	h := NewHealthHandler(readyFunc(func() bool { return false }))
	rr := httptest.NewRecorder()
	h.Readiness(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
