package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yourorg/homenest/internal/security/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&nopWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestRequireAuthAttachesPrincipal(t *testing.T) {
	v := auth.NewVerifier("test-secret", "homenest")
	token, err := v.GenerateToken("alice@example.com", "Alice", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	var gotEmail string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFromContext(r.Context())
		if p != nil {
			gotEmail = p.Email
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	RequireAuth(v, discardLogger())(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotEmail != "alice@example.com" {
		t.Fatalf("expected principal in context, got %q", gotEmail)
	}
}

func TestRequireAuthRejections(t *testing.T) {
	v := auth.NewVerifier("test-secret", "homenest")
	guard := RequireAuth(v, discardLogger())

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run without a verified principal")
	})

	cases := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Unauthorized access - No token provided"},
		{"malformed header", "nonsense", "Unauthorized access - No token provided"},
		{"bad token", "Bearer not-a-token", "Unauthorized access - Invalid token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			guard(inner).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			var body struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, body.Message)
			}
		})
	}
}

func TestPrincipalFromContextAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if p := PrincipalFromContext(req.Context()); p != nil {
		t.Fatalf("expected nil principal on bare context, got %+v", p)
	}
}
