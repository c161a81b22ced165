package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	repoMocks "github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	serviceMocks "github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
	apiMocks "github.com/aaravmahajanofficial/storefront/pkg/shopapi/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type shopTestDeps struct {
	sessions  *repoMocks.SessionRepository
	mutations *repoMocks.MutationRepository
	api       *apiMocks.API
	catalog   *serviceMocks.CatalogService
}

func setupShopServiceTest(t *testing.T) (service.ShopService, *shopTestDeps) {
	t.Helper()

	deps := &shopTestDeps{
		sessions:  repoMocks.NewSessionRepository(t),
		mutations: repoMocks.NewMutationRepository(t),
		api:       apiMocks.NewAPI(t),
		catalog:   serviceMocks.NewCatalogService(t),
	}

	svc := service.NewShopService(deps.sessions, deps.mutations, deps.api, deps.catalog, service.NewSessionLocks())

	return svc, deps
}

func product(id int64, price string) models.Product {
	return models.Product{ID: id, Name: "Product", Price: decimal.RequireFromString(price)}
}

func hasIdempotencyKey(ctx context.Context) bool {
	return shopapi.IdempotencyKeyFrom(ctx) != ""
}

func assertAppError(t *testing.T, err error, code string) *appErrors.AppError {
	t.Helper()

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)

	return appErr
}

func TestShopService_GetCart(t *testing.T) {
	principal := models.NewPrincipal("opaque-token")

	t.Run("Success - Existing session", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		session := &models.Session{
			Key:   principal.SessionKey,
			State: models.ShopState{Cart: []models.CartItem{{Product: product(1, "10"), Quantity: 2}}},
		}
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(session, nil).Once()

		// Act
		view, err := svc.GetCart(t.Context(), principal)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, view.Quantity)
		assert.Equal(t, "20.00", view.Subtotal.StringFixed(2))
	})

	t.Run("Success - Seeds from backend", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(nil, repository.ErrSessionNotFound).Once()
		deps.api.On("GetCart", mock.Anything, principal.Token).Return([]models.CartItem{
			{Product: product(1, "10"), Quantity: 1},
			{Product: product(1, "10"), Quantity: 1},
			{Product: product(2, "5"), Quantity: 1},
		}, nil).Once()
		deps.api.On("GetFavorites", mock.Anything, principal.Token).Return([]models.Product{product(3, "7")}, nil).Once()
		deps.sessions.On("SaveSession", mock.Anything, mock.MatchedBy(func(s *models.Session) bool {
			return s.Key == principal.SessionKey && len(s.State.Cart) == 2 && len(s.State.Favorites) == 1
		})).Return(nil).Once()

		// Act
		view, err := svc.GetCart(t.Context(), principal)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, view.Quantity)
		assert.Equal(t, "25.00", view.Subtotal.StringFixed(2))
	})

	t.Run("Failure - Backend rejects token", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(nil, repository.ErrSessionNotFound).Once()
		deps.api.On("GetCart", mock.Anything, principal.Token).Return(nil, &shopapi.Error{StatusCode: 401}).Once()

		// Act
		view, err := svc.GetCart(t.Context(), principal)

		// Assert
		assert.Nil(t, view)
		assertAppError(t, err, appErrors.ErrCodeUnauthorized)
	})

	t.Run("Failure - Session store down", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		redisErr := errors.New("connection refused")
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(nil, redisErr).Once()

		// Act
		_, err := svc.GetCart(t.Context(), principal)

		// Assert
		assertAppError(t, err, appErrors.ErrCodeInternal)
		assert.ErrorIs(t, err, redisErr)
	})
}

func TestShopService_AddToCart(t *testing.T) {
	principal := models.NewPrincipal("opaque-token")
	widget := product(42, "12.50")

	t.Run("Success - Applied after acknowledgement", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		deps.catalog.On("GetProduct", mock.Anything, "42").Return(&widget, nil).Once()
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(&models.Session{Key: principal.SessionKey}, nil).Once()
		deps.mutations.On("CreateMutation", mock.Anything, mock.MatchedBy(func(m *models.Mutation) bool {
			return m.Kind == models.MutationAddToCart && m.ProductID == "42" && m.Status == models.MutationPending &&
				m.ID != "" && m.IdempotencyKey == m.ID
		})).Return(nil).Once()
		deps.api.On("AddToCart", mock.MatchedBy(hasIdempotencyKey), principal.Token, "42").Return(nil).Once()
		deps.sessions.On("SaveSession", mock.Anything, mock.MatchedBy(func(s *models.Session) bool {
			return len(s.State.Cart) == 1 && s.State.Cart[0].Quantity == 1
		})).Return(nil).Once()
		deps.mutations.On("UpdateMutationStatus", mock.Anything, mock.AnythingOfType("string"), models.MutationConfirmed, "").Return(nil).Once()

		// Act
		view, err := svc.AddToCart(t.Context(), principal, "42")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, view.Quantity)
		assert.Equal(t, "12.50", view.Subtotal.StringFixed(2))
	})

	t.Run("Success - Client idempotency key is kept", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		ctx := shopapi.WithIdempotencyKey(t.Context(), "client-key")
		deps.catalog.On("GetProduct", mock.Anything, "42").Return(&widget, nil).Once()
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(&models.Session{Key: principal.SessionKey}, nil).Once()
		deps.mutations.On("FindConfirmedMutation", mock.Anything, principal.SessionKey, "client-key").Return(nil, sql.ErrNoRows).Once()
		deps.mutations.On("CreateMutation", mock.Anything, mock.MatchedBy(func(m *models.Mutation) bool {
			return m.IdempotencyKey == "client-key"
		})).Return(nil).Once()
		deps.api.On("AddToCart", mock.MatchedBy(func(ctx context.Context) bool {
			return shopapi.IdempotencyKeyFrom(ctx) == "client-key"
		}), principal.Token, "42").Return(nil).Once()
		deps.sessions.On("SaveSession", mock.Anything, mock.Anything).Return(nil).Once()
		deps.mutations.On("UpdateMutationStatus", mock.Anything, mock.Anything, models.MutationConfirmed, "").Return(nil).Once()

		// Act
		_, err := svc.AddToCart(ctx, principal, "42")

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Success - Retry with the same key is applied once", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		ctx := shopapi.WithIdempotencyKey(t.Context(), "retry-1")
		session := &models.Session{
			Key:   principal.SessionKey,
			State: models.ShopState{Cart: []models.CartItem{{Product: widget, Quantity: 1}}},
		}
		deps.catalog.On("GetProduct", mock.Anything, "42").Return(&widget, nil).Once()
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(session, nil).Once()
		deps.mutations.On("FindConfirmedMutation", mock.Anything, principal.SessionKey, "retry-1").
			Return(&models.Mutation{ID: "m1", Kind: models.MutationAddToCart, ProductID: "42", Status: models.MutationConfirmed}, nil).Once()

		// Act
		view, err := svc.AddToCart(ctx, principal, "42")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, view.Quantity)
		deps.api.AssertNotCalled(t, "AddToCart", mock.Anything, mock.Anything, mock.Anything)
		deps.mutations.AssertNotCalled(t, "CreateMutation", mock.Anything, mock.Anything)
		deps.sessions.AssertNotCalled(t, "SaveSession", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Key reused for another change", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		ctx := shopapi.WithIdempotencyKey(t.Context(), "retry-1")
		deps.catalog.On("GetProduct", mock.Anything, "42").Return(&widget, nil).Once()
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(&models.Session{Key: principal.SessionKey}, nil).Once()
		deps.mutations.On("FindConfirmedMutation", mock.Anything, principal.SessionKey, "retry-1").
			Return(&models.Mutation{ID: "m1", Kind: models.MutationClearCart, Status: models.MutationConfirmed}, nil).Once()

		// Act
		view, err := svc.AddToCart(ctx, principal, "42")

		// Assert
		assert.Nil(t, view)
		assertAppError(t, err, appErrors.ErrCodeConflict)
		deps.api.AssertNotCalled(t, "AddToCart", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Journal lookup fails", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		ctx := shopapi.WithIdempotencyKey(t.Context(), "retry-1")
		deps.catalog.On("GetProduct", mock.Anything, "42").Return(&widget, nil).Once()
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(&models.Session{Key: principal.SessionKey}, nil).Once()
		deps.mutations.On("FindConfirmedMutation", mock.Anything, principal.SessionKey, "retry-1").Return(nil, errors.New("database is closed")).Once()

		// Act
		_, err := svc.AddToCart(ctx, principal, "42")

		// Assert
		assertAppError(t, err, appErrors.ErrCodeDatabaseError)
	})

	t.Run("Failure - Backend rejects, local cart untouched", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		apiErr := &shopapi.Error{StatusCode: 400, Message: "Product out of stock"}
		deps.catalog.On("GetProduct", mock.Anything, "42").Return(&widget, nil).Once()
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(&models.Session{Key: principal.SessionKey}, nil).Once()
		deps.mutations.On("CreateMutation", mock.Anything, mock.Anything).Return(nil).Once()
		deps.api.On("AddToCart", mock.Anything, principal.Token, "42").Return(apiErr).Once()
		deps.mutations.On("UpdateMutationStatus", mock.Anything, mock.Anything, models.MutationFailed, apiErr.Error()).Return(nil).Once()

		// Act
		view, err := svc.AddToCart(t.Context(), principal, "42")

		// Assert
		assert.Nil(t, view)
		appErr := assertAppError(t, err, appErrors.ErrCodeBadRequest)
		assert.Equal(t, "Product out of stock", appErr.Message)
		deps.sessions.AssertNotCalled(t, "SaveSession", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown product", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		deps.catalog.On("GetProduct", mock.Anything, "missing").Return(nil, appErrors.NotFoundError("Product not found")).Once()

		// Act
		_, err := svc.AddToCart(t.Context(), principal, "missing")

		// Assert
		assertAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Failure - Journal unavailable", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		dbErr := errors.New("database is closed")
		deps.catalog.On("GetProduct", mock.Anything, "42").Return(&widget, nil).Once()
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(&models.Session{Key: principal.SessionKey}, nil).Once()
		deps.mutations.On("CreateMutation", mock.Anything, mock.Anything).Return(dbErr).Once()

		// Act
		_, err := svc.AddToCart(t.Context(), principal, "42")

		// Assert
		assertAppError(t, err, appErrors.ErrCodeDatabaseError)
		deps.api.AssertNotCalled(t, "AddToCart", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Session write lost after acknowledgement", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		deps.catalog.On("GetProduct", mock.Anything, "42").Return(&widget, nil).Once()
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(&models.Session{Key: principal.SessionKey}, nil).Once()
		deps.mutations.On("CreateMutation", mock.Anything, mock.Anything).Return(nil).Once()
		deps.api.On("AddToCart", mock.Anything, principal.Token, "42").Return(nil).Once()
		deps.sessions.On("SaveSession", mock.Anything, mock.Anything).Return(errors.New("OOM")).Once()
		deps.sessions.On("DeleteSession", mock.Anything, principal.SessionKey).Return(nil).Once()
		deps.mutations.On("UpdateMutationStatus", mock.Anything, mock.Anything, models.MutationConfirmed, "").Return(nil).Once()

		// Act
		_, err := svc.AddToCart(t.Context(), principal, "42")

		// Assert
		assertAppError(t, err, appErrors.ErrCodeInternal)
	})
}

func TestShopService_RemoveAndClear(t *testing.T) {
	principal := models.NewPrincipal("opaque-token")

	cartOf := func() *models.Session {
		return &models.Session{
			Key: principal.SessionKey,
			State: models.ShopState{Cart: []models.CartItem{
				{Product: product(1, "10"), Quantity: 2},
				{Product: product(2, "5"), Quantity: 1},
			}},
		}
	}

	t.Run("Success - Remove item", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(cartOf(), nil).Once()
		deps.mutations.On("CreateMutation", mock.Anything, mock.MatchedBy(func(m *models.Mutation) bool {
			return m.Kind == models.MutationRemoveFromCart && m.ProductID == "1"
		})).Return(nil).Once()
		deps.api.On("RemoveFromCart", mock.Anything, principal.Token, "1").Return(nil).Once()
		deps.sessions.On("SaveSession", mock.Anything, mock.Anything).Return(nil).Once()
		deps.mutations.On("UpdateMutationStatus", mock.Anything, mock.Anything, models.MutationConfirmed, "").Return(nil).Once()

		// Act
		view, err := svc.RemoveFromCart(t.Context(), principal, "1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, view.Quantity)
		assert.Equal(t, "5.00", view.Subtotal.StringFixed(2))
	})

	t.Run("Success - Remove by numeric id of a line keyed by object id", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		gadget := models.Product{ID: 1, ObjectID: "abc", Name: "Gadget", Price: decimal.RequireFromString("99")}
		session := &models.Session{
			Key:   principal.SessionKey,
			State: models.ShopState{Cart: []models.CartItem{{Product: gadget, Quantity: 1}}},
		}
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(session, nil).Once()
		deps.mutations.On("CreateMutation", mock.Anything, mock.MatchedBy(func(m *models.Mutation) bool {
			return m.Kind == models.MutationRemoveFromCart && m.ProductID == "abc"
		})).Return(nil).Once()
		deps.api.On("RemoveFromCart", mock.Anything, principal.Token, "abc").Return(nil).Once()
		deps.sessions.On("SaveSession", mock.Anything, mock.MatchedBy(func(s *models.Session) bool {
			return len(s.State.Cart) == 0
		})).Return(nil).Once()
		deps.mutations.On("UpdateMutationStatus", mock.Anything, mock.Anything, models.MutationConfirmed, "").Return(nil).Once()

		// Act
		view, err := svc.RemoveFromCart(t.Context(), principal, "1")

		// Assert
		require.NoError(t, err)
		assert.Zero(t, view.Quantity)
		assert.Empty(t, view.Items)
	})

	t.Run("Success - Removing an absent item skips the backend", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(cartOf(), nil).Once()

		// Act
		view, err := svc.RemoveFromCart(t.Context(), principal, "99")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, view.Quantity)
	})

	t.Run("Success - Clear cart", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(cartOf(), nil).Once()
		deps.mutations.On("CreateMutation", mock.Anything, mock.Anything).Return(nil).Once()
		deps.api.On("ClearCart", mock.Anything, principal.Token).Return(nil).Once()
		deps.sessions.On("SaveSession", mock.Anything, mock.MatchedBy(func(s *models.Session) bool {
			return len(s.State.Cart) == 0
		})).Return(nil).Once()
		deps.mutations.On("UpdateMutationStatus", mock.Anything, mock.Anything, models.MutationConfirmed, "").Return(nil).Once()

		// Act
		view, err := svc.ClearCart(t.Context(), principal)

		// Assert
		require.NoError(t, err)
		assert.Zero(t, view.Quantity)
		assert.Equal(t, "0.00", view.Subtotal.StringFixed(2))
		assert.NotNil(t, view.Items)
	})

	t.Run("Failure - Backend unreachable", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(cartOf(), nil).Once()
		deps.mutations.On("CreateMutation", mock.Anything, mock.Anything).Return(nil).Once()
		deps.api.On("ClearCart", mock.Anything, principal.Token).Return(shopapi.ErrUnavailable).Once()
		deps.mutations.On("UpdateMutationStatus", mock.Anything, mock.Anything, models.MutationFailed, mock.Anything).Return(nil).Once()

		// Act
		_, err := svc.ClearCart(t.Context(), principal)

		// Assert
		assertAppError(t, err, appErrors.ErrCodeUpstream)
	})
}

func TestShopService_Favorites(t *testing.T) {
	principal := models.NewPrincipal("opaque-token")
	widget := product(7, "3")

	t.Run("Success - Add favorite", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		deps.catalog.On("GetProduct", mock.Anything, "7").Return(&widget, nil).Once()
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(&models.Session{Key: principal.SessionKey}, nil).Once()
		deps.mutations.On("CreateMutation", mock.Anything, mock.MatchedBy(func(m *models.Mutation) bool {
			return m.Kind == models.MutationAddToFavorites
		})).Return(nil).Once()
		deps.api.On("AddFavorite", mock.Anything, principal.Token, "7").Return(nil).Once()
		deps.sessions.On("SaveSession", mock.Anything, mock.Anything).Return(nil).Once()
		deps.mutations.On("UpdateMutationStatus", mock.Anything, mock.Anything, models.MutationConfirmed, "").Return(nil).Once()

		// Act
		view, err := svc.AddToFavorites(t.Context(), principal, "7")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, view.Count)
	})

	t.Run("Success - Existing favorite is a no-op", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		session := &models.Session{
			Key:   principal.SessionKey,
			State: models.ShopState{Favorites: []models.FavoriteEntry{{Product: widget}}},
		}
		deps.catalog.On("GetProduct", mock.Anything, "7").Return(&widget, nil).Once()
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(session, nil).Once()

		// Act
		view, err := svc.AddToFavorites(t.Context(), principal, "7")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, view.Count)
	})

	t.Run("Success - Remove favorite", func(t *testing.T) {
		// Arrange
		svc, deps := setupShopServiceTest(t)
		session := &models.Session{
			Key:   principal.SessionKey,
			State: models.ShopState{Favorites: []models.FavoriteEntry{{Product: widget}}},
		}
		deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(session, nil).Once()
		deps.mutations.On("CreateMutation", mock.Anything, mock.Anything).Return(nil).Once()
		deps.api.On("RemoveFavorite", mock.Anything, principal.Token, "7").Return(nil).Once()
		deps.sessions.On("SaveSession", mock.Anything, mock.Anything).Return(nil).Once()
		deps.mutations.On("UpdateMutationStatus", mock.Anything, mock.Anything, models.MutationConfirmed, "").Return(nil).Once()

		// Act
		view, err := svc.RemoveFromFavorites(t.Context(), principal, "7")

		// Assert
		require.NoError(t, err)
		assert.Zero(t, view.Count)
		assert.NotNil(t, view.Items)
	})
}

func TestShopService_RemoveFavoriteByEitherID(t *testing.T) {
	principal := models.NewPrincipal("opaque-token")
	gadget := models.Product{ID: 1, ObjectID: "abc", Name: "Gadget", Price: decimal.RequireFromString("99")}

	for _, id := range []string{"1", "abc"} {
		t.Run("Success - "+id, func(t *testing.T) {
			// Arrange
			svc, deps := setupShopServiceTest(t)
			session := &models.Session{
				Key:   principal.SessionKey,
				State: models.ShopState{Favorites: []models.FavoriteEntry{{Product: gadget}}},
			}
			deps.sessions.On("GetSession", mock.Anything, principal.SessionKey).Return(session, nil).Once()
			deps.mutations.On("CreateMutation", mock.Anything, mock.Anything).Return(nil).Once()
			deps.api.On("RemoveFavorite", mock.Anything, principal.Token, "abc").Return(nil).Once()
			deps.sessions.On("SaveSession", mock.Anything, mock.Anything).Return(nil).Once()
			deps.mutations.On("UpdateMutationStatus", mock.Anything, mock.Anything, models.MutationConfirmed, "").Return(nil).Once()

			// Act
			view, err := svc.RemoveFromFavorites(t.Context(), principal, id)

			// Assert
			require.NoError(t, err)
			assert.Zero(t, view.Count)
		})
	}
}

func TestShopService_ListMutationsAndForget(t *testing.T) {
	principal := models.NewPrincipal("opaque-token")

	t.Run("Success - History", func(t *testing.T) {
		svc, deps := setupShopServiceTest(t)
		history := []*models.Mutation{{ID: "m1", Kind: models.MutationAddToCart, Status: models.MutationConfirmed}}
		deps.mutations.On("ListMutations", mock.Anything, principal.SessionKey, 20).Return(history, nil).Once()

		got, err := svc.ListMutations(t.Context(), principal, 20)

		require.NoError(t, err)
		assert.Equal(t, history, got)
	})

	t.Run("Failure - History unavailable", func(t *testing.T) {
		svc, deps := setupShopServiceTest(t)
		deps.mutations.On("ListMutations", mock.Anything, principal.SessionKey, 20).Return(nil, errors.New("timeout")).Once()

		_, err := svc.ListMutations(t.Context(), principal, 20)

		assertAppError(t, err, appErrors.ErrCodeDatabaseError)
	})

	t.Run("Success - Forget", func(t *testing.T) {
		svc, deps := setupShopServiceTest(t)
		deps.sessions.On("DeleteSession", mock.Anything, principal.SessionKey).Return(nil).Once()

		assert.NoError(t, svc.Forget(t.Context(), principal))
	})
}
