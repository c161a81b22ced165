package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService service.AuthService
	validator   *validator.Validate
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService, validator: validator.New()}
}

// Register godoc
//	@Summary		Create an account
//	@Description	Registers a customer with the commerce backend. When the backend returns a token the caller is also signed in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.RegisterRequest	true	"Account details"
//	@Success		201		{object}	models.LoginResponse	"Account created"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Email already registered"
//	@Failure		502		{object}	response.ErrorResponse	"Commerce backend error"
//	@Router			/auth/register [post]
func (h *AuthHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid register input")
			return
		}

		resp, err := h.authService.Register(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to register user", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User registered")
		response.Success(w, http.StatusCreated, resp)
	}
}

// Login godoc
//	@Summary		Sign in
//	@Description	Exchanges credentials for a bearer token. Repeated failures for one email are rate limited.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Credentials"
//	@Success		200			{object}	models.LoginResponse	"Signed in"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		401			{object}	models.LoginResponse	"Invalid email or password"
//	@Failure		429			{object}	models.LoginResponse	"Too many attempts"
//	@Failure		502			{object}	response.ErrorResponse	"Commerce backend error"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		resp, err := h.authService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			status := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			logger.Warn("Login rejected", slog.Int("status", status))
			if err := response.WriteJson(w, status, resp); err != nil {
				logger.Error("Failed to write response", slog.Any("error", err))
			}
			return
		}

		logger.Info("User logged in")
		response.Success(w, http.StatusOK, resp)
	}
}

// Logout godoc
//	@Summary		Sign out
//	@Description	Drops the locally held cart and favorites for the caller. The token itself is not revoked.
//	@Tags			Auth
//	@Success		204
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		if err := h.authService.Logout(r.Context(), p); err != nil {
			logger.Error("Logout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ForgotPassword godoc
//	@Summary		Request a password reset
//	@Description	Always answers 202 for well-formed addresses so accounts cannot be enumerated.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.ForgotPasswordRequest	true	"Account email"
//	@Success		202		{object}	response.APIResponse
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		502		{object}	response.ErrorResponse	"Commerce backend error"
//	@Router			/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ForgotPasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.authService.ForgotPassword(r.Context(), req.Email); err != nil {
			logger.Error("Forgot password failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusAccepted, map[string]string{
			"message": "If the address is registered, reset instructions are on their way",
		})
	}
}

// ResetPassword godoc
//	@Summary		Reset a password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string						true	"Reset token from the e-mail link"
//	@Param			request	body		models.ResetPasswordRequest	true	"New password"
//	@Success		200		{object}	response.APIResponse
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or expired link"
//	@Failure		502		{object}	response.ErrorResponse	"Commerce backend error"
//	@Router			/auth/reset-password/{token} [put]
func (h *AuthHandler) ResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ResetPasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.authService.ResetPassword(r.Context(), r.PathValue("token"), &req); err != nil {
			logger.Warn("Password reset failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Password reset")
		response.Success(w, http.StatusOK, map[string]string{"message": "Password updated"})
	}
}
