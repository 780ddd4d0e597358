package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouter_RegisterHandler(t *testing.T) {
	t.Parallel()

	router := NewRouter()

	handlerCalled := false
	router.Handle("/test", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if !handlerCalled {
		t.Error("Registered handler was not called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Status = %v, want 200", w.Code)
	}
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	router := NewRouter()

	router.Handle("/exists", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/not-exists", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Unmatched path status = %v, want 404", w.Code)
	}
}

func TestRouter_MethodPattern(t *testing.T) {
	t.Parallel()

	router := NewRouter()

	router.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/token", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("POST status = %v, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/token", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %v, want 405", w.Code)
	}
}

func TestRouter_MiddlewareChain(t *testing.T) {
	t.Parallel()

	router := NewRouter()

	order := []string{}

	middleware1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m1-before")
			next.ServeHTTP(w, r)
			order = append(order, "m1-after")
		})
	}

	middleware2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m2-before")
			next.ServeHTTP(w, r)
			order = append(order, "m2-after")
		})
	}

	router.Use(middleware1)
	router.Use(middleware2)

	router.Handle("/test", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Middleware executes in registration order on the way in.
	expectedOrder := []string{"m1-before", "m2-before", "handler", "m2-after", "m1-after"}
	if len(order) != len(expectedOrder) {
		t.Fatalf("Order length = %v, want %v", len(order), len(expectedOrder))
	}
	for i, expected := range expectedOrder {
		if order[i] != expected {
			t.Errorf("Order[%d] = %v, want %v", i, order[i], expected)
		}
	}
}

func TestRouter_PathValue(t *testing.T) {
	t.Parallel()

	router := NewRouter()

	var got string
	router.HandleFunc("GET /register/{client_id}", func(w http.ResponseWriter, r *http.Request) {
		got = r.PathValue("client_id")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/register/abc-123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got != "abc-123" {
		t.Errorf("PathValue = %q, want %q", got, "abc-123")
	}
}
