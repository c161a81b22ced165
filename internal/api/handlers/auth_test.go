package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) (*mocks.AuthService, *handlers.AuthHandler) {
	mockAuthService := mocks.NewAuthService(t)
	return mockAuthService, handlers.NewAuthHandler(mockAuthService)
}

func TestRegister(t *testing.T) {
	t.Run("Success - Account created", func(t *testing.T) {
		// Arrange
		mockAuthService, authHandler := setupAuthTest(t)
		body := mustJSON(t, models.RegisterRequest{
			Name: "Jane", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1",
		})
		recorder := httptest.NewRecorder()

		mockAuthService.On("Register", mock.Anything, mock.MatchedBy(func(req *models.RegisterRequest) bool {
			return req.Email == "jane@example.com"
		})).Return(&models.LoginResponse{Success: true, Token: "tok"}, nil).Once()

		// Act
		authHandler.Register()(recorder, createRequest(http.MethodPost, "/api/v1/auth/register", body))

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.True(t, decodeResponse(t, recorder).Success)
	})

	t.Run("Failure - Passwords differ", func(t *testing.T) {
		_, authHandler := setupAuthTest(t)
		body := mustJSON(t, models.RegisterRequest{
			Name: "Jane", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret2",
		})
		recorder := httptest.NewRecorder()

		authHandler.Register()(recorder, createRequest(http.MethodPost, "/api/v1/auth/register", body))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("Failure - Email taken", func(t *testing.T) {
		mockAuthService, authHandler := setupAuthTest(t)
		body := mustJSON(t, models.RegisterRequest{
			Name: "Jane", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1",
		})
		recorder := httptest.NewRecorder()

		mockAuthService.On("Register", mock.Anything, mock.Anything).
			Return(nil, appErrors.ConflictError("Email already registered")).Once()

		authHandler.Register()(recorder, createRequest(http.MethodPost, "/api/v1/auth/register", body))

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestLogin(t *testing.T) {
	credentials := models.LoginRequest{Email: "jane@example.com", Password: "secret1"}

	tests := []struct {
		name           string
		resp           *models.LoginResponse
		err            error
		expectedStatus int
	}{
		{
			name:           "Success - Signed in",
			resp:           &models.LoginResponse{Success: true, Token: "tok"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Failure - Wrong password",
			resp:           &models.LoginResponse{Success: false, Message: "Invalid email or password", RemainingTries: 3},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Failure - Rate limited",
			resp:           &models.LoginResponse{Success: false, RetryAfter: 600},
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "Failure - Backend down",
			err:            appErrors.UpstreamError("Shop is unavailable, please try again"),
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockAuthService, authHandler := setupAuthTest(t)
			recorder := httptest.NewRecorder()

			if tc.err != nil {
				mockAuthService.On("Login", mock.Anything, mock.Anything).Return(nil, tc.err).Once()
			} else {
				mockAuthService.On("Login", mock.Anything, mock.Anything).Return(tc.resp, nil).Once()
			}

			// Act
			authHandler.Login()(recorder, createRequest(http.MethodPost, "/api/v1/auth/login", mustJSON(t, credentials)))

			// Assert
			assert.Equal(t, tc.expectedStatus, recorder.Code)
		})
	}

	t.Run("Failure - Rejected login body", func(t *testing.T) {
		mockAuthService, authHandler := setupAuthTest(t)
		recorder := httptest.NewRecorder()
		mockAuthService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: false, Message: "Invalid email or password", RemainingTries: 2}, nil).Once()

		authHandler.Login()(recorder, createRequest(http.MethodPost, "/api/v1/auth/login", mustJSON(t, credentials)))

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, 2, resp.RemainingTries)
	})
}

func TestLogout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockAuthService, authHandler := setupAuthTest(t)
		req, principal := createAuthenticatedRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		recorder := httptest.NewRecorder()
		mockAuthService.On("Logout", mock.Anything, principal).Return(nil).Once()

		authHandler.Logout()(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		_, authHandler := setupAuthTest(t)
		recorder := httptest.NewRecorder()

		authHandler.Logout()(recorder, createRequest(http.MethodPost, "/api/v1/auth/logout", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, decodeResponse(t, recorder).Error.Message, "Authentication required")
	})
}

func TestForgotPassword(t *testing.T) {
	t.Run("Success - Accepted", func(t *testing.T) {
		mockAuthService, authHandler := setupAuthTest(t)
		recorder := httptest.NewRecorder()
		mockAuthService.On("ForgotPassword", mock.Anything, "jane@example.com").Return(nil).Once()

		authHandler.ForgotPassword()(recorder, createRequest(http.MethodPost, "/api/v1/auth/forgot-password",
			[]byte(`{"email":"jane@example.com"}`)))

		assert.Equal(t, http.StatusAccepted, recorder.Code)
	})

	t.Run("Failure - Invalid email", func(t *testing.T) {
		_, authHandler := setupAuthTest(t)
		recorder := httptest.NewRecorder()

		authHandler.ForgotPassword()(recorder, createRequest(http.MethodPost, "/api/v1/auth/forgot-password",
			[]byte(`{"email":"not-an-email"}`)))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockAuthService, authHandler := setupAuthTest(t)
		recorder := httptest.NewRecorder()
		req := createRequest(http.MethodPut, "/api/v1/auth/reset-password/abc", []byte(`{"password":"secret1","confirm_password":"secret1"}`))
		req.SetPathValue("token", "abc")

		mockAuthService.On("ResetPassword", mock.Anything, "abc", mock.AnythingOfType("*models.ResetPasswordRequest")).Return(nil).Once()

		// Act
		authHandler.ResetPassword()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Expired link", func(t *testing.T) {
		mockAuthService, authHandler := setupAuthTest(t)
		recorder := httptest.NewRecorder()
		req := createRequest(http.MethodPut, "/api/v1/auth/reset-password/abc", []byte(`{"password":"secret1","confirm_password":"secret1"}`))
		req.SetPathValue("token", "abc")

		mockAuthService.On("ResetPassword", mock.Anything, "abc", mock.Anything).
			Return(appErrors.BadRequestError("Reset link is invalid or has expired").WithError(errors.New("410"))).Once()

		authHandler.ResetPassword()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "Reset link is invalid or has expired", decodeResponse(t, recorder).Error.Message)
	})
}
