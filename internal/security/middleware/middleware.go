package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/yourorg/homenest/internal/domain"
	"github.com/yourorg/homenest/internal/security/auth"
)

type principalContextKey struct{}

// RequireAuth gates a handler on a successfully verified principal.
// A missing or invalid credential stops the request with 401 before
// the wrapped handler runs; on success the principal is attached to
// the request context.
func RequireAuth(verifier *auth.Verifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Unauthorized access - No token provided")
				return
			}

			tokenString, err := auth.ExtractToken(authHeader)
			if err != nil {
				unauthorized(w, "Unauthorized access - No token provided")
				return
			}

			principal, err := verifier.Verify(tokenString)
			if err != nil {
				log.Info("token verification failed", slog.String("error", err.Error()))
				unauthorized(w, "Unauthorized access - Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the verified principal attached by
// RequireAuth, or nil on an unprotected route.
func PrincipalFromContext(ctx context.Context) *domain.Principal {
	if p, ok := ctx.Value(principalContextKey{}).(*domain.Principal); ok {
		return p
	}
	return nil
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"` + message + `"}`))
}
