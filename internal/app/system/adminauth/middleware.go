package adminauth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bhavyaverma/portfolio/internal/app/system/jsonutil"
	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"go.uber.org/zap"
)

type contextKey string

const (
	adminContextKey contextKey = "admin"
	tokenContextKey contextKey = "admin_token"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is missing or not Bearer-formed.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAdmin returns middleware that verifies the bearer token on
// every request and injects the verified admin identity and raw token
// into the request context. Requests failing verification get a 401
// with a message naming which verification stage failed.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			jsonutil.Unauthorized(w, "Authentication required")
			return
		}

		verified, err := s.Verify(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidToken):
				jsonutil.Unauthorized(w, "Invalid token")
			case errors.Is(err, ErrSessionExpired):
				jsonutil.Unauthorized(w, "Session expired or logged out")
			case errors.Is(err, ErrAccountDeactivated):
				jsonutil.Unauthorized(w, "Account deactivated")
			default:
				s.log.Error("token verification failed",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				jsonutil.InternalError(w, "Authentication check failed")
			}
			return
		}

		ctx := context.WithValue(r.Context(), adminContextKey, verified.Admin)
		ctx = context.WithValue(ctx, tokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminFromContext returns the verified admin identity stored by
// RequireAdmin, or nil outside an authenticated request.
func AdminFromContext(ctx context.Context) *models.AdminIdentity {
	admin, _ := ctx.Value(adminContextKey).(*models.AdminIdentity)
	return admin
}

// TokenFromContext returns the raw bearer token stored by RequireAdmin.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}
