// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MutationRepository struct {
	mock.Mock
}

func NewMutationRepository(t testingT) *MutationRepository {
	m := &MutationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MutationRepository) CreateMutation(ctx context.Context, mutation *models.Mutation) error {
	return m.Called(ctx, mutation).Error(0)
}

func (m *MutationRepository) UpdateMutationStatus(ctx context.Context, id string, status models.MutationStatus, errMsg string) error {
	return m.Called(ctx, id, status, errMsg).Error(0)
}

func (m *MutationRepository) ListMutations(ctx context.Context, sessionKey string, limit int) ([]*models.Mutation, error) {
	args := m.Called(ctx, sessionKey, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Mutation), args.Error(1)
}

func (m *MutationRepository) FindConfirmedMutation(ctx context.Context, sessionKey, key string) (*models.Mutation, error) {
	args := m.Called(ctx, sessionKey, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Mutation), args.Error(1)
}

type CheckoutRepository struct {
	mock.Mock
}

func NewCheckoutRepository(t testingT) *CheckoutRepository {
	m := &CheckoutRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CheckoutRepository) CreateCheckout(ctx context.Context, checkout *models.Checkout) error {
	return m.Called(ctx, checkout).Error(0)
}

func (m *CheckoutRepository) GetCheckoutByID(ctx context.Context, id string) (*models.Checkout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Checkout), args.Error(1)
}

func (m *CheckoutRepository) GetCheckoutByReference(ctx context.Context, reference string) (*models.Checkout, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Checkout), args.Error(1)
}

func (m *CheckoutRepository) UpdateCheckoutReference(ctx context.Context, id, reference, redirectURL string) error {
	return m.Called(ctx, id, reference, redirectURL).Error(0)
}

func (m *CheckoutRepository) UpdateCheckoutStatus(ctx context.Context, id string, status models.CheckoutStatus, errMsg string) error {
	return m.Called(ctx, id, status, errMsg).Error(0)
}

type SessionRepository struct {
	mock.Mock
}

func NewSessionRepository(t testingT) *SessionRepository {
	m := &SessionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *SessionRepository) GetSession(ctx context.Context, key string) (*models.Session, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *SessionRepository) SaveSession(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionRepository) DeleteSession(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type RateLimitRepository struct {
	mock.Mock
}

func NewRateLimitRepository(t testingT) *RateLimitRepository {
	m := &RateLimitRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

func (m *RateLimitRepository) ResetLoginAttempts(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

var (
	_ repository.MutationRepository  = (*MutationRepository)(nil)
	_ repository.CheckoutRepository  = (*CheckoutRepository)(nil)
	_ repository.SessionRepository   = (*SessionRepository)(nil)
	_ repository.RateLimitRepository = (*RateLimitRepository)(nil)
)
