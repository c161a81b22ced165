package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/stretchr/testify/require"
)

// createAuthenticatedRequest -> creates a request carrying a principal and logger
func createAuthenticatedRequest(method, url string, body []byte) (*http.Request, *models.Principal) {
	principal := testutils.TestPrincipal()
	return testutils.CreateTestRequestWithContext(method, url, bytes.NewReader(body), principal, nil), principal
}

func createRequest(method, url string, body []byte) *http.Request {
	return testutils.CreateTestRequestWithoutContext(method, url, bytes.NewReader(body), nil)
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) *response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))

	return &resp
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return data
}
