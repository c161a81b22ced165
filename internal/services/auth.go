package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, p *models.Principal) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken string, req *models.ResetPasswordRequest) error
}

type authService struct {
	api       shopapi.API
	rateLimit repository.RateLimitRepository
	shop      ShopService
}

func NewAuthService(api shopapi.API, rateLimit repository.RateLimitRepository, shop ShopService) AuthService {
	return &authService{api: api, rateLimit: rateLimit, shop: shop}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, error) {

	req.Name = utils.Sanitize(req.Name)
	req.Email = normalizeEmail(req.Email)

	result, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, upstreamError(err, "Failed to create account")
	}

	resp := &models.LoginResponse{Success: true, User: &result.User, Message: "Account created"}

	if result.Token != "" {
		resp.Token = result.Token
		s.seed(ctx, result.Token)
	}

	return resp, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	req.Email = normalizeEmail(req.Email)

	// check rate limit
	allowed, remaining, retryAfter, err := s.rateLimit.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		metrics.LoginsRateLimited.Inc()

		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	result, err := s.api.Login(ctx, req)
	if err != nil {
		if rejectedCredentials(err) {
			return &models.LoginResponse{
				Success:        false,
				Message:        "Invalid email or password",
				RemainingTries: remaining,
			}, nil
		}

		return nil, upstreamError(err, "Login failed")
	}

	if err := s.rateLimit.ResetLoginAttempts(ctx, req.Email); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to reset login attempts", "error", err)
	}

	s.seed(ctx, result.Token)

	return &models.LoginResponse{
		Success: true,
		Token:   result.Token,
		User:    &result.User,
	}, nil
}

func (s *authService) Logout(ctx context.Context, p *models.Principal) error {
	return s.shop.Forget(ctx, p)
}

// ForgotPassword succeeds for unknown addresses so accounts cannot be enumerated.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {

	err := s.api.ForgotPassword(ctx, normalizeEmail(email))
	if err != nil && !shopapi.IsNotFound(err) {
		return upstreamError(err, "Failed to send reset instructions")
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, resetToken string, req *models.ResetPasswordRequest) error {

	if strings.TrimSpace(resetToken) == "" {
		return appErrors.BadRequestError("Reset token is required")
	}

	if err := s.api.ResetPassword(ctx, resetToken, req); err != nil {
		if shopapi.IsClientError(err) && !isStatus(err, http.StatusTooManyRequests) {
			return appErrors.BadRequestError("Reset link is invalid or has expired").WithError(err)
		}

		return upstreamError(err, "Failed to reset password")
	}

	return nil
}

// seed warms the session so the first cart read after login is local.
func (s *authService) seed(ctx context.Context, token string) {
	if _, err := s.shop.LoadSession(ctx, models.NewPrincipal(token)); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to load session after login", "error", err)
	}
}

func rejectedCredentials(err error) bool {
	return isStatus(err, http.StatusBadRequest) || isStatus(err, http.StatusUnauthorized) || isStatus(err, http.StatusNotFound)
}

func isStatus(err error, code int) bool {
	var apiErr *shopapi.Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
