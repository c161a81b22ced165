// Package testutils builds requests the way the middleware chain leaves them.
package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

// TestPrincipal is a signed-in shopper with a JWT-style session key.
func TestPrincipal() *models.Principal {
	return &models.Principal{
		Token:      "token-123",
		SessionKey: "user:u1",
		UserID:     "u1",
		Email:      "test@example.com",
	}
}

func CreateTestRequestWithContext(method, target string, body io.Reader, principal *models.Principal, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, pathParams)

	return req.WithContext(middleware.WithPrincipal(req.Context(), principal))
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return req.WithContext(middleware.WithLogger(req.Context(), logger))
}
