// Package mocks holds testify mocks of the service interfaces for handler tests.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

type ShopService struct {
	mock.Mock
}

func NewShopService(t testingT) *ShopService {
	m := &ShopService{}
	register(t, &m.Mock)

	return m
}

func (m *ShopService) LoadSession(ctx context.Context, p *models.Principal) (*models.Session, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *ShopService) GetCart(ctx context.Context, p *models.Principal) (*models.CartView, error) {
	return cartView(m.Called(ctx, p))
}

func (m *ShopService) AddToCart(ctx context.Context, p *models.Principal, productID string) (*models.CartView, error) {
	return cartView(m.Called(ctx, p, productID))
}

func (m *ShopService) RemoveFromCart(ctx context.Context, p *models.Principal, productID string) (*models.CartView, error) {
	return cartView(m.Called(ctx, p, productID))
}

func (m *ShopService) ClearCart(ctx context.Context, p *models.Principal) (*models.CartView, error) {
	return cartView(m.Called(ctx, p))
}

func (m *ShopService) GetFavorites(ctx context.Context, p *models.Principal) (*models.FavoritesView, error) {
	return favoritesView(m.Called(ctx, p))
}

func (m *ShopService) AddToFavorites(ctx context.Context, p *models.Principal, productID string) (*models.FavoritesView, error) {
	return favoritesView(m.Called(ctx, p, productID))
}

func (m *ShopService) RemoveFromFavorites(ctx context.Context, p *models.Principal, productID string) (*models.FavoritesView, error) {
	return favoritesView(m.Called(ctx, p, productID))
}

func (m *ShopService) ListMutations(ctx context.Context, p *models.Principal, limit int) ([]*models.Mutation, error) {
	args := m.Called(ctx, p, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Mutation), args.Error(1)
}

func (m *ShopService) Forget(ctx context.Context, p *models.Principal) error {
	return m.Called(ctx, p).Error(0)
}

func cartView(args mock.Arguments) (*models.CartView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartView), args.Error(1)
}

func favoritesView(args mock.Arguments) (*models.FavoritesView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.FavoritesView), args.Error(1)
}

type CatalogService struct {
	mock.Mock
}

func NewCatalogService(t testingT) *CatalogService {
	m := &CatalogService{}
	register(t, &m.Mock)

	return m
}

func (m *CatalogService) ListProducts(ctx context.Context, query models.ProductQuery) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.PaginatedResponse), args.Error(1)
}

func (m *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *CatalogService) Section(ctx context.Context, name string, start, size, step int) (*models.SectionResponse, error) {
	args := m.Called(ctx, name, start, size, step)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.SectionResponse), args.Error(1)
}

func (m *CatalogService) FlashSale(ctx context.Context, start, size, step int) (*models.FlashSaleResponse, error) {
	args := m.Called(ctx, start, size, step)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.FlashSaleResponse), args.Error(1)
}

func (m *CatalogService) Countries(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Country), args.Error(1)
}

type AuthService struct {
	mock.Mock
}

func NewAuthService(t testingT) *AuthService {
	m := &AuthService{}
	register(t, &m.Mock)

	return m
}

func (m *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, error) {
	return loginResponse(m.Called(ctx, req))
}

func (m *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	return loginResponse(m.Called(ctx, req))
}

func (m *AuthService) Logout(ctx context.Context, p *models.Principal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *AuthService) ResetPassword(ctx context.Context, resetToken string, req *models.ResetPasswordRequest) error {
	return m.Called(ctx, resetToken, req).Error(0)
}

func loginResponse(args mock.Arguments) (*models.LoginResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

type CheckoutService struct {
	mock.Mock
}

func NewCheckoutService(t testingT) *CheckoutService {
	m := &CheckoutService{}
	register(t, &m.Mock)

	return m
}

func (m *CheckoutService) SubmitShipping(ctx context.Context, p *models.Principal, info *models.ShippingInfo) (*models.CheckoutDraft, error) {
	args := m.Called(ctx, p, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CheckoutDraft), args.Error(1)
}

func (m *CheckoutService) SubmitPayment(ctx context.Context, p *models.Principal, sel *models.PaymentSelection) (*models.CheckoutResponse, error) {
	args := m.Called(ctx, p, sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CheckoutResponse), args.Error(1)
}

func (m *CheckoutService) GetCheckout(ctx context.Context, p *models.Principal, id string) (*models.Checkout, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Checkout), args.Error(1)
}

func (m *CheckoutService) HandleStripeEvent(ctx context.Context, payload []byte, signature string) error {
	return m.Called(ctx, payload, signature).Error(0)
}

type OrderService struct {
	mock.Mock
}

func NewOrderService(t testingT) *OrderService {
	m := &OrderService{}
	register(t, &m.Mock)

	return m
}

func (m *OrderService) ListOrders(ctx context.Context, p *models.Principal) ([]models.Order, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *OrderService) CancelOrder(ctx context.Context, p *models.Principal, orderID string) (*models.Order, error) {
	args := m.Called(ctx, p, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}
