package shopapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var raw rawList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/orders", token: token}, &raw); err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := raw.into("orders", &orders); err != nil {
		return nil, err
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return orders, nil
}

func (c *Client) CancelOrder(ctx context.Context, token string, orderID string) (*models.Order, error) {
	var order models.Order

	path := "/orders/" + url.PathEscape(orderID) + "/cancel"
	if err := c.do(ctx, request{method: http.MethodPut, path: path, token: token}, &order); err != nil {
		return nil, err
	}

	if order.ID == "" {
		order.ID = orderID
		order.Status = models.OrderStatusCancelled
	}

	return &order, nil
}

func (c *Client) Countries(ctx context.Context) ([]models.Country, error) {
	var raw rawList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/countries"}, &raw); err != nil {
		return nil, err
	}

	var countries []models.Country
	if err := raw.into("countries", &countries); err != nil {
		return nil, err
	}

	return countries, nil
}
