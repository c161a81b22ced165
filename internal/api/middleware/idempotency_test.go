package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
	"github.com/stretchr/testify/assert"
)

func serveIdempotency(t *testing.T, handler func(http.Handler) http.Handler, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()

	var key string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = shopapi.IdempotencyKeyFrom(r.Context())
	})
	rr := httptest.NewRecorder()

	handler(next).ServeHTTP(rr, req)

	return key, rr
}

func behindLogging(next http.Handler) http.Handler {
	return middleware.Logging(middleware.Idempotency(next))
}

func TestIdempotency(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		requestID string
		expected  string
	}{
		{name: "Success - Client key wins over request ID", header: "client-key", requestID: "req-1", expected: "client-key"},
		{name: "Success - Client key is trimmed", header: "  client-key  ", requestID: "req-1", expected: "client-key"},
		{name: "Success - Falls back to request ID", requestID: "req-1", expected: "req-1"},
		{name: "Success - Blank key falls back to request ID", header: "   ", requestID: "req-1", expected: "req-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil)
			req.Header.Set(middleware.RequestIDHeader, tc.requestID)
			if tc.header != "" {
				req.Header.Set(middleware.IdempotencyKeyHeader, tc.header)
			}

			// Act
			key, _ := serveIdempotency(t, behindLogging, req)

			// Assert
			assert.Equal(t, tc.expected, key)
		})
	}

	t.Run("Success - Generated correlation ID is the key", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil)

		// Act
		key, rr := serveIdempotency(t, behindLogging, req)

		// Assert
		assert.NotEmpty(t, key)
		assert.Equal(t, rr.Header().Get(middleware.RequestIDHeader), key)
	})

	t.Run("Success - Every request behind Logging carries a key", func(t *testing.T) {
		first, _ := serveIdempotency(t, behindLogging, httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil))
		second, _ := serveIdempotency(t, behindLogging, httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil))

		assert.NotEmpty(t, first)
		assert.NotEmpty(t, second)
		assert.NotEqual(t, first, second)
	})

	t.Run("Success - No key outside Logging", func(t *testing.T) {
		key, _ := serveIdempotency(t, middleware.Idempotency, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Empty(t, key)
	})

	t.Run("Success - Client key without Logging", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(middleware.IdempotencyKeyHeader, "client-key")

		key, _ := serveIdempotency(t, middleware.Idempotency, req)

		assert.Equal(t, "client-key", key)
	})
}
