package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	// Arrange
	handler := metrics.Middleware("GET /api/v1/products/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	// Act
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil))

	// Assert
	assert.Equal(t, http.StatusTeapot, rr.Code)

	body := scrape(t)
	assert.Contains(t, body, `http_requests_total{code="418",method="GET",path="GET /api/v1/products/{id}"} 1`)
	assert.NotContains(t, body, `path="/api/v1/products/42"`)
}

func TestInstrumentTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := &http.Client{Transport: metrics.InstrumentTransport(nil)}

	req, err := http.NewRequest(http.MethodDelete, server.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Contains(t, scrape(t), `shopapi_requests_total{code="204",method="delete"} 1`)
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(metrics.CartMutationsTotal.WithLabelValues("cart.add", "confirmed"))

	metrics.CartMutationsTotal.WithLabelValues("cart.add", "confirmed").Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CartMutationsTotal.WithLabelValues("cart.add", "confirmed")))
}

func scrape(t *testing.T) string {
	t.Helper()

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	return rr.Body.String()
}
