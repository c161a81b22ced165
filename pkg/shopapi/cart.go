package shopapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type cartItemBody struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type favoriteBody struct {
	ProductID string `json:"productId"`
}

func (c *Client) GetCart(ctx context.Context, token string) ([]models.CartItem, error) {
	var raw rawList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/carts", token: token}, &raw); err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := raw.into("items", &items); err != nil {
		return nil, err
	}

	return items, nil
}

// AddToCart adds one unit of the product, matching the store's increment.
func (c *Client) AddToCart(ctx context.Context, token string, productID string) error {
	body := cartItemBody{ProductID: productID, Quantity: 1}

	return c.do(ctx, request{method: http.MethodPost, path: "/carts", token: token, body: body}, nil)
}

// RemoveFromCart drops the whole line for the product.
func (c *Client) RemoveFromCart(ctx context.Context, token string, productID string) error {
	q := url.Values{"productId": {productID}}

	return c.do(ctx, request{method: http.MethodDelete, path: "/carts", query: q, token: token}, nil)
}

func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/carts", token: token}, nil)
}

func (c *Client) GetFavorites(ctx context.Context, token string) ([]models.Product, error) {
	var raw rawList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/favorites", token: token}, &raw); err != nil {
		return nil, err
	}

	var products []models.Product
	if err := raw.into("favorites", &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *Client) AddFavorite(ctx context.Context, token string, productID string) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/favorites", token: token, body: favoriteBody{ProductID: productID}}, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, token string, productID string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/favorites/" + url.PathEscape(productID), token: token}, nil)
}
