package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("connection refused")

	err := appErrors.UpstreamError("Shop backend unavailable").WithError(cause).WithDetail("GET /products")

	assert.Equal(t, "Shop backend unavailable", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, err.StatusCode)
	assert.Equal(t, "GET /products", err.Detail)
	assert.ErrorIs(t, err, cause)
}

func TestIsAppError(t *testing.T) {
	t.Run("Wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", appErrors.NotFoundError("Product not found"))

		appErr, ok := appErrors.IsAppError(wrapped)

		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Plain error", func(t *testing.T) {
		appErr, ok := appErrors.IsAppError(errors.New("boom"))

		assert.False(t, ok)
		assert.Nil(t, appErr)
	})
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err    *appErrors.AppError
		code   string
		status int
	}{
		{appErrors.ValidationError("x"), appErrors.ErrCodeValidation, http.StatusBadRequest},
		{appErrors.UnauthorizedError("x"), appErrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{appErrors.ThirdPartyError("x"), appErrors.ErrCodeThirdPartyError, http.StatusBadGateway},
		{appErrors.TooManyRequestsError("x"), appErrors.ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{appErrors.ConflictError("x"), appErrors.ErrCodeConflict, http.StatusConflict},
		{appErrors.AddValidationError("email", "required"), appErrors.ErrCodeValidation, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.status, tc.err.StatusCode)
		})
	}
}
