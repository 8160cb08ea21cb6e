package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidateJSONContentType(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := ValidateJSONContentType(discardLogger())(next)

	// GET passes without a content type
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET: expected 200, got %d", rec.Code)
	}

	// POST with JSON passes
	req := httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST json: expected 200, got %d", rec.Code)
	}

	// POST with a body but the wrong content type is rejected
	req = httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("POST form: expected 415, got %d", rec.Code)
	}

	// An empty body does not require a content type
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/properties", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST empty: expected 200, got %d", rec.Code)
	}
}
