package shopapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetBody struct {
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResult, error) {
	var result models.AuthResult

	body := registerBody{Name: req.Name, Email: req.Email, Password: req.Password}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: body}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResult, error) {
	var result models.AuthResult

	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: req}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := models.ForgotPasswordRequest{Email: email}

	return c.do(ctx, request{method: http.MethodPost, path: "/auth/forgot-password", body: body}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, resetToken string, req *models.ResetPasswordRequest) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		path:   "/auth/reset-password/" + url.PathEscape(resetToken),
		body:   resetBody{Password: req.Password},
	}, nil)
}
