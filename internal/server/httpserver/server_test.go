package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/microspring-go/internal/core/route"
	"github.com/yndnr/microspring-go/internal/telemetry/logger"
)

func testTable() *route.Table {
	t := route.NewTable()
	t.MustRegister(route.MethodGet, "/hola", func([]string) (string, error) { return "Hola", nil })
	t.MustRegister(route.MethodGet, "/greeting", func(a []string) (string, error) { return "Hola " + a[0], nil },
		route.ParamDefault("name", "World"))
	return t
}

func TestNew(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s := New(":8080", handler)
	if s.httpServer == nil {
		t.Error("httpServer is nil")
	}
	if s.handler == nil {
		t.Error("handler is nil")
	}
	if s.Addr() != nil {
		t.Error("Addr() before Listen should be nil")
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	s := New("127.0.0.1:0", NewRouter(&RouterConfig{Logger: logger.Discard()}))
	if err := s.Listen(); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve()
	}()

	resp, err := http.Get("http://" + s.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown error: %v", err)
	}

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("Serve returned unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("timeout waiting for Serve to return")
	}
}

func TestServer_ServeBeforeListen(t *testing.T) {
	if err := New(":0", http.NotFoundHandler()).Serve(); err == nil {
		t.Error("Serve() before Listen should fail")
	}
}

func TestRouter_Health(t *testing.T) {
	h := NewRouter(&RouterConfig{Logger: logger.Discard()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	var body healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "healthy" || body.Version == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestRouter_Routes(t *testing.T) {
	h := NewRouter(&RouterConfig{Routes: testTable(), Logger: logger.Discard()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/routes", nil))

	var entries []routeEntry
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Path != "/greeting" || entries[1].Path != "/hola" {
		t.Errorf("routes not sorted by path: %+v", entries)
	}
	if len(entries[0].Params) != 1 || entries[0].Params[0].Default != "World" {
		t.Errorf("greeting params = %+v", entries[0].Params)
	}
}

func TestRouter_OptionalEndpoints(t *testing.T) {
	h := NewRouter(&RouterConfig{Logger: logger.Discard()})

	for _, p := range []string{"/metrics", "/routes"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404 when not configured", p, rec.Code)
		}
	}
}

func TestRouter_Metrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "microspring_requests_total 1\n")
	})
	h := NewRouter(&RouterConfig{Metrics: metrics, Logger: logger.Discard()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "microspring_requests_total") {
		t.Errorf("body = %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /metrics = %d, want 405", rec.Code)
	}
}
