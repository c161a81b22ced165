package service

import (
	"context"
	"errors"
	"net/http"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
)

// upstreamError maps a commerce backend failure to an AppError. message is
// used when the failure is on the backend's side.
func upstreamError(err error, message string) *appErrors.AppError {
	if errors.Is(err, shopapi.ErrUnauthorized) {
		return appErrors.UnauthorizedError("Session expired, please log in again").WithError(err)
	}

	if errors.Is(err, shopapi.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return appErrors.UpstreamError("Shop is unavailable, please try again").WithError(err)
	}

	var apiErr *shopapi.Error
	if !errors.As(err, &apiErr) {
		return appErrors.ThirdPartyError(message).WithError(err)
	}

	switch {
	case apiErr.StatusCode == http.StatusNotFound:
		return appErrors.NotFoundError(messageOr(apiErr.Message, "Resource not found")).WithError(err)
	case apiErr.StatusCode == http.StatusConflict:
		return appErrors.ConflictError(messageOr(apiErr.Message, message)).WithError(err)
	case apiErr.StatusCode == http.StatusTooManyRequests:
		return appErrors.TooManyRequestsError("Too many requests, please slow down").WithError(err)
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return appErrors.BadRequestError(messageOr(apiErr.Message, message)).WithError(err)
	}

	return appErrors.ThirdPartyError(message).WithError(err)
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}

	return msg
}
