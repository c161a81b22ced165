package middleware

import (
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// Idempotency puts the client's retry key in the request context, where the
// shop service journals it and the commerce client forwards it. Without one
// the correlation ID is used, so a replayed X-Request-ID is also deduplicated.
func Idempotency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
		if key == "" {
			key = CorrelationIDFromContext(r.Context())
		}

		if key != "" {
			r = r.WithContext(shopapi.WithIdempotencyKey(r.Context(), key))
		}

		next.ServeHTTP(w, r)
	})
}
