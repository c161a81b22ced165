// Package shopapi is the typed client for the remote commerce REST backend
// that owns products, carts, favorites, orders and payments.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

const maxResponseBytes = 4 << 20

// API is every backend call the storefront makes.
type API interface {
	ListProducts(ctx context.Context, query models.ProductQuery) (*ProductPage, error)
	FeaturedProducts(ctx context.Context) ([]models.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	SearchProducts(ctx context.Context, term string) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)

	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken string, req *models.ResetPasswordRequest) error

	GetCart(ctx context.Context, token string) ([]models.CartItem, error)
	AddToCart(ctx context.Context, token string, productID string) error
	RemoveFromCart(ctx context.Context, token string, productID string) error
	ClearCart(ctx context.Context, token string) error

	GetFavorites(ctx context.Context, token string) ([]models.Product, error)
	AddFavorite(ctx context.Context, token string, productID string) error
	RemoveFavorite(ctx context.Context, token string, productID string) error

	ListOrders(ctx context.Context, token string) ([]models.Order, error)
	CancelOrder(ctx context.Context, token string, orderID string) (*models.Order, error)

	CreateCheckoutSession(ctx context.Context, token string, req *CardCheckoutRequest) (*CheckoutSession, error)
	PayMobile(ctx context.Context, token string, req *MobilePaymentRequest) (*PaymentAck, error)
	PayCash(ctx context.Context, token string, req *CashPaymentRequest) (*PaymentAck, error)

	Countries(ctx context.Context) ([]models.Country, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client rooted at baseURL, e.g. https://shop.example.com/api/v1.
// A nil httpClient gets a plain client with the given timeout.
func NewClient(baseURL string, httpClient *http.Client, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid shop api base url: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid shop api base url %q: scheme and host are required", baseURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

type idempotencyKey struct{}

// WithIdempotencyKey attaches the key sent on the next mutating call made with ctx.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey{}, key)
}

// IdempotencyKeyFrom returns the key set by WithIdempotencyKey, or "".
func IdempotencyKeyFrom(ctx context.Context) string {
	key, _ := ctx.Value(idempotencyKey{}).(string)
	return key
}

// request describes one call. path is already escaped; query and body are optional.
type request struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

func (c *Client) do(ctx context.Context, req request, dest any) error {

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("shopapi: encode %s %s: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return fmt.Errorf("shopapi: build %s %s: %w", req.method, req.path, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	if req.method != http.MethodGet {
		if key := IdempotencyKeyFrom(ctx); key != "" {
			httpReq.Header.Set("Idempotency-Key", key)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, req.method, req.path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %w", ErrUnavailable, req.method, req.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(payload, resp.Status),
			Method:     req.method,
			Path:       req.path,
		}
	}

	if dest == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}

	if err := decode(payload, dest); err != nil {
		return fmt.Errorf("shopapi: decode %s %s: %w", req.method, req.path, err)
	}

	return nil
}

// envelope is the wrapped form some backend routes answer with.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// decode accepts either a bare JSON value or an object carrying it under "data".
func decode(payload []byte, dest any) error {
	trimmed := bytes.TrimSpace(payload)

	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
			return json.Unmarshal(env.Data, dest)
		}
	}

	return json.Unmarshal(trimmed, dest)
}

func errorMessage(payload []byte, fallback string) string {
	var env envelope
	if err := json.Unmarshal(payload, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}

	return fallback
}

var _ API = (*Client)(nil)
