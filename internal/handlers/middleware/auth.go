package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/dkotelnikov/contacts/internal/apperrors"
	"github.com/dkotelnikov/contacts/internal/handlers/render"
	"github.com/dkotelnikov/contacts/internal/handlers/userctx"
	"github.com/dkotelnikov/contacts/internal/models"
)

type authService interface {
	Authenticate(ctx context.Context, r *http.Request) (models.User, error)
}

// AuthMiddleware guards protected routes
// Every authentication failure renders the same 401 body: missing, malformed,
// expired and revoked tokens must look identical from outside.
// Only an unreachable auth dependency is different, it renders 503 instead of
// silently letting the request through
func AuthMiddleware(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := as.Authenticate(r.Context(), r)
			if err != nil {
				if errors.Is(err, apperrors.ErrAuthUnavailable) {
					render.Error(w, "Service unavailable", http.StatusServiceUnavailable)
					return
				}

				render.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := userctx.New(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
