package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/google/uuid"
)

type contextKey uuid.UUID

var principalKey = contextKey(uuid.New())

// AuthMiddleware admits requests carrying a bearer token. With a jwtKey the
// token must be an HMAC JWT signed with it; without one any token is admitted
// and isolated in its own session.
type AuthMiddleware struct {
	jwtKey []byte
	now    func() time.Time
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey, now: time.Now}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// Token is of format : "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		token := strings.TrimSpace(tokenParts[1])
		if token == "" {
			logger.Warn("Empty bearer token")
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		principal, err := m.principal(token)
		if err != nil {
			logger.Warn("JWT parsing failed", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		if principal.Expired(m.now()) {
			logger.Warn("Expired token", slog.String("session", principal.SessionKey))
			response.Error(w, errors.UnauthorizedError("Token expired"))
			return
		}

		ctx := WithPrincipal(r.Context(), principal)

		requestScopedLogger := logger.With(slog.String("session", principal.SessionKey))
		if principal.UserID != "" {
			requestScopedLogger = requestScopedLogger.With(slog.String("userId", principal.UserID))
		}
		ctx = WithLogger(ctx, requestScopedLogger)

		requestScopedLogger.Debug("Caller authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (m *AuthMiddleware) principal(token string) (*models.Principal, error) {
	if len(m.jwtKey) == 0 {
		return models.NewPrincipal(token), nil
	}

	return models.NewVerifiedPrincipal(token, m.jwtKey)
}

func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the caller set by Authenticate.
func PrincipalFromContext(ctx context.Context) (*models.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*models.Principal)
	return p, ok && p != nil
}
