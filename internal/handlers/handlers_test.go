package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cosmopay/cosmopay-go/internal/config"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type: %q", got)
	}
	if !strings.Contains(rec.Body.String(), `"status":"healthy"`) {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestNew_RequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := New(Dependencies{Router: NewEventRouter(nil, nil, nil)})
	if err == nil {
		t.Fatal("expected an error when config is missing")
	}
	if !strings.Contains(err.Error(), "config is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_RequiresRouter(t *testing.T) {
	t.Parallel()

	_, err := New(Dependencies{Config: &config.Config{}})
	if err == nil {
		t.Fatal("expected an error when router is missing")
	}
	if !strings.Contains(err.Error(), "router is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}
