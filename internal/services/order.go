package service

import (
	"context"
	"slices"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
)

type OrderService interface {
	ListOrders(ctx context.Context, p *models.Principal) ([]models.Order, error)
	CancelOrder(ctx context.Context, p *models.Principal, orderID string) (*models.Order, error)
}

type orderService struct {
	api shopapi.API
}

func NewOrderService(api shopapi.API) OrderService {
	return &orderService{api: api}
}

func (s *orderService) ListOrders(ctx context.Context, p *models.Principal) ([]models.Order, error) {

	orders, err := s.api.ListOrders(ctx, p.Token)
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch orders")
	}

	return nonNil(orders), nil
}

// CancelOrder only asks the backend to cancel orders that are still pending or confirmed.
func (s *orderService) CancelOrder(ctx context.Context, p *models.Principal, orderID string) (*models.Order, error) {

	orders, err := s.ListOrders(ctx, p)
	if err != nil {
		return nil, err
	}

	i := slices.IndexFunc(orders, func(o models.Order) bool { return o.ID == orderID })
	if i < 0 {
		return nil, errors.NotFoundError("Order not found")
	}

	if !orders[i].Cancellable() {
		return nil, errors.ConflictError("Order can no longer be cancelled").WithDetail(string(orders[i].Status))
	}

	order, err := s.api.CancelOrder(ctx, p.Token, orderID)
	if err != nil {
		return nil, upstreamError(err, "Failed to cancel order")
	}

	return order, nil
}
