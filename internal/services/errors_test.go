package service

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
	"github.com/stretchr/testify/assert"
)

func TestUpstreamError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		status  int
		message string
	}{
		{
			name:   "Unauthorized",
			err:    &shopapi.Error{StatusCode: http.StatusUnauthorized, Message: "jwt expired"},
			code:   appErrors.ErrCodeUnauthorized,
			status: http.StatusUnauthorized, message: "Session expired, please log in again",
		},
		{
			name:   "Transport failure",
			err:    fmt.Errorf("%w: GET /carts: dial tcp: refused", shopapi.ErrUnavailable),
			code:   appErrors.ErrCodeUpstream,
			status: http.StatusServiceUnavailable, message: "Shop is unavailable, please try again",
		},
		{
			name:   "Not found",
			err:    &shopapi.Error{StatusCode: http.StatusNotFound},
			code:   appErrors.ErrCodeNotFound,
			status: http.StatusNotFound, message: "Resource not found",
		},
		{
			name:   "Client error keeps backend message",
			err:    &shopapi.Error{StatusCode: http.StatusBadRequest, Message: "Product out of stock"},
			code:   appErrors.ErrCodeBadRequest,
			status: http.StatusBadRequest, message: "Product out of stock",
		},
		{
			name:   "Rate limited",
			err:    &shopapi.Error{StatusCode: http.StatusTooManyRequests},
			code:   appErrors.ErrCodeTooManyRequests,
			status: http.StatusTooManyRequests, message: "Too many requests, please slow down",
		},
		{
			name:   "Server error",
			err:    &shopapi.Error{StatusCode: http.StatusInternalServerError, Message: "boom"},
			code:   appErrors.ErrCodeThirdPartyError,
			status: http.StatusBadGateway, message: "Failed to update cart",
		},
		{
			name:   "Unknown error",
			err:    errors.New("decode: unexpected EOF"),
			code:   appErrors.ErrCodeThirdPartyError,
			status: http.StatusBadGateway, message: "Failed to update cart",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			appErr := upstreamError(tc.err, "Failed to update cart")

			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.status, appErr.StatusCode)
			assert.Equal(t, tc.message, appErr.Message)
			assert.ErrorIs(t, appErr, tc.err)
		})
	}
}
