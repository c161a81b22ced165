// Package mocks holds testify mocks of the shopapi client.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
	"github.com/stretchr/testify/mock"
)

type API struct {
	mock.Mock
}

// NewAPI registers AssertExpectations as a test cleanup.
func NewAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *API {
	m := &API{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *API) ListProducts(ctx context.Context, query models.ProductQuery) (*shopapi.ProductPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*shopapi.ProductPage), args.Error(1)
}

func (m *API) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return products(args.Get(0)), args.Error(1)
}

func (m *API) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	args := m.Called(ctx, category)
	return products(args.Get(0)), args.Error(1)
}

func (m *API) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	args := m.Called(ctx, term)
	return products(args.Get(0)), args.Error(1)
}

func (m *API) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *API) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.AuthResult), args.Error(1)
}

func (m *API) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.AuthResult), args.Error(1)
}

func (m *API) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *API) ResetPassword(ctx context.Context, resetToken string, req *models.ResetPasswordRequest) error {
	return m.Called(ctx, resetToken, req).Error(0)
}

func (m *API) GetCart(ctx context.Context, token string) ([]models.CartItem, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *API) AddToCart(ctx context.Context, token string, productID string) error {
	return m.Called(ctx, token, productID).Error(0)
}

func (m *API) RemoveFromCart(ctx context.Context, token string, productID string) error {
	return m.Called(ctx, token, productID).Error(0)
}

func (m *API) ClearCart(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *API) GetFavorites(ctx context.Context, token string) ([]models.Product, error) {
	args := m.Called(ctx, token)
	return products(args.Get(0)), args.Error(1)
}

func (m *API) AddFavorite(ctx context.Context, token string, productID string) error {
	return m.Called(ctx, token, productID).Error(0)
}

func (m *API) RemoveFavorite(ctx context.Context, token string, productID string) error {
	return m.Called(ctx, token, productID).Error(0)
}

func (m *API) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *API) CancelOrder(ctx context.Context, token string, orderID string) (*models.Order, error) {
	args := m.Called(ctx, token, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *API) CreateCheckoutSession(ctx context.Context, token string, req *shopapi.CardCheckoutRequest) (*shopapi.CheckoutSession, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*shopapi.CheckoutSession), args.Error(1)
}

func (m *API) PayMobile(ctx context.Context, token string, req *shopapi.MobilePaymentRequest) (*shopapi.PaymentAck, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*shopapi.PaymentAck), args.Error(1)
}

func (m *API) PayCash(ctx context.Context, token string, req *shopapi.CashPaymentRequest) (*shopapi.PaymentAck, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*shopapi.PaymentAck), args.Error(1)
}

func (m *API) Countries(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Country), args.Error(1)
}

func products(v any) []models.Product {
	if v == nil {
		return nil
	}

	return v.([]models.Product)
}

var _ shopapi.API = (*API)(nil)
