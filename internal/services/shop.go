package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/store"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
	"github.com/google/uuid"
)

// ShopService owns a shopper's cart and favorites. Local state only changes
// after the backend has accepted the same change.
type ShopService interface {
	LoadSession(ctx context.Context, p *models.Principal) (*models.Session, error)
	GetCart(ctx context.Context, p *models.Principal) (*models.CartView, error)
	AddToCart(ctx context.Context, p *models.Principal, productID string) (*models.CartView, error)
	RemoveFromCart(ctx context.Context, p *models.Principal, productID string) (*models.CartView, error)
	ClearCart(ctx context.Context, p *models.Principal) (*models.CartView, error)
	GetFavorites(ctx context.Context, p *models.Principal) (*models.FavoritesView, error)
	AddToFavorites(ctx context.Context, p *models.Principal, productID string) (*models.FavoritesView, error)
	RemoveFromFavorites(ctx context.Context, p *models.Principal, productID string) (*models.FavoritesView, error)
	ListMutations(ctx context.Context, p *models.Principal, limit int) ([]*models.Mutation, error)
	Forget(ctx context.Context, p *models.Principal) error
}

type shopService struct {
	sessions  sessionLoader
	mutations repository.MutationRepository
	catalog   CatalogService
	api       shopapi.API
	locks     *SessionLocks
}

func NewShopService(sessions repository.SessionRepository, mutations repository.MutationRepository, api shopapi.API, catalog CatalogService, locks *SessionLocks) ShopService {
	return &shopService{
		sessions:  sessionLoader{repo: sessions, api: api},
		mutations: mutations,
		catalog:   catalog,
		api:       api,
		locks:     locks,
	}
}

// change is one cart or favorites mutation.
type change struct {
	kind      models.MutationKind
	productID string
	// resolve maps productID onto the key the session stores it under.
	resolve func(st *store.Store) string
	// noop reports that the change would leave the store untouched.
	noop  func(st *store.Store) bool
	send  func(ctx context.Context) error
	apply func(st *store.Store)
}

func (s *shopService) LoadSession(ctx context.Context, p *models.Principal) (*models.Session, error) {

	unlock := s.locks.Lock(p.SessionKey)
	defer unlock()

	session, err := s.sessions.load(ctx, p)
	if err != nil {
		return nil, sessionError(err)
	}

	return session, nil
}

func (s *shopService) GetCart(ctx context.Context, p *models.Principal) (*models.CartView, error) {

	session, err := s.LoadSession(ctx, p)
	if err != nil {
		return nil, err
	}

	view := store.FromState(session.State).Cart()

	return &view, nil
}

func (s *shopService) AddToCart(ctx context.Context, p *models.Principal, productID string) (*models.CartView, error) {

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	st, err := s.mutate(ctx, p, change{
		kind:      models.MutationAddToCart,
		productID: product.Key(),
		send: func(ctx context.Context) error {
			return s.api.AddToCart(ctx, p.Token, product.Key())
		},
		apply: func(st *store.Store) { st.AddToCart(*product) },
	})
	if err != nil {
		return nil, err
	}

	view := st.Cart()

	return &view, nil
}

func (s *shopService) RemoveFromCart(ctx context.Context, p *models.Principal, productID string) (*models.CartView, error) {

	key := productID
	st, err := s.mutate(ctx, p, change{
		kind:      models.MutationRemoveFromCart,
		productID: productID,
		resolve: func(st *store.Store) string {
			if k, ok := st.CartKey(productID); ok {
				key = k
			}
			return key
		},
		noop: func(st *store.Store) bool { return !st.InCart(key) },
		send: func(ctx context.Context) error {
			return s.api.RemoveFromCart(ctx, p.Token, key)
		},
		apply: func(st *store.Store) { st.RemoveFromCart(key) },
	})
	if err != nil {
		return nil, err
	}

	view := st.Cart()

	return &view, nil
}

func (s *shopService) ClearCart(ctx context.Context, p *models.Principal) (*models.CartView, error) {

	st, err := s.mutate(ctx, p, change{
		kind: models.MutationClearCart,
		noop: func(st *store.Store) bool { return st.CartQuantity() == 0 },
		send: func(ctx context.Context) error {
			return s.api.ClearCart(ctx, p.Token)
		},
		apply: func(st *store.Store) { st.ClearCart() },
	})
	if err != nil {
		return nil, err
	}

	view := st.Cart()

	return &view, nil
}

func (s *shopService) GetFavorites(ctx context.Context, p *models.Principal) (*models.FavoritesView, error) {

	session, err := s.LoadSession(ctx, p)
	if err != nil {
		return nil, err
	}

	view := store.FromState(session.State).FavoritesView()

	return &view, nil
}

func (s *shopService) AddToFavorites(ctx context.Context, p *models.Principal, productID string) (*models.FavoritesView, error) {

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	st, err := s.mutate(ctx, p, change{
		kind:      models.MutationAddToFavorites,
		productID: product.Key(),
		noop:      func(st *store.Store) bool { return st.IsFavorite(product.Key()) },
		send: func(ctx context.Context) error {
			return s.api.AddFavorite(ctx, p.Token, product.Key())
		},
		apply: func(st *store.Store) { st.AddToFavorites(*product) },
	})
	if err != nil {
		return nil, err
	}

	view := st.FavoritesView()

	return &view, nil
}

func (s *shopService) RemoveFromFavorites(ctx context.Context, p *models.Principal, productID string) (*models.FavoritesView, error) {

	key := productID
	st, err := s.mutate(ctx, p, change{
		kind:      models.MutationRemoveFromFavorite,
		productID: productID,
		resolve: func(st *store.Store) string {
			if k, ok := st.FavoriteKey(productID); ok {
				key = k
			}
			return key
		},
		noop: func(st *store.Store) bool { return !st.IsFavorite(key) },
		send: func(ctx context.Context) error {
			return s.api.RemoveFavorite(ctx, p.Token, key)
		},
		apply: func(st *store.Store) { st.RemoveFromFavorites(key) },
	})
	if err != nil {
		return nil, err
	}

	view := st.FavoritesView()

	return &view, nil
}

func (s *shopService) ListMutations(ctx context.Context, p *models.Principal, limit int) ([]*models.Mutation, error) {

	mutations, err := s.mutations.ListMutations(ctx, p.SessionKey, limit)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch cart history").WithError(err)
	}

	return mutations, nil
}

// Forget drops the local session; the backend keeps the shopper's data.
func (s *shopService) Forget(ctx context.Context, p *models.Principal) error {

	unlock := s.locks.Lock(p.SessionKey)
	defer unlock()

	if err := s.sessions.repo.DeleteSession(ctx, p.SessionKey); err != nil {
		return appErrors.InternalError("Failed to end session").WithError(err)
	}

	return nil
}

// mutate journals c as pending, sends it to the backend and applies it to the
// session's store only once the backend has acknowledged it.
func (s *shopService) mutate(ctx context.Context, p *models.Principal, c change) (*store.Store, error) {

	logger := middleware.LoggerFromContext(ctx)

	unlock := s.locks.Lock(p.SessionKey)
	defer unlock()

	session, err := s.sessions.load(ctx, p)
	if err != nil {
		return nil, sessionError(err)
	}

	st := store.FromState(session.State)
	if c.resolve != nil {
		c.productID = c.resolve(st)
	}

	key := shopapi.IdempotencyKeyFrom(ctx)
	if key != "" {
		replayed, err := s.replayed(ctx, p.SessionKey, key, c.kind)
		if err != nil {
			return nil, err
		}
		if replayed {
			logger.Info("Change already applied for idempotency key", "idempotency_key", key, "kind", c.kind)
			return st, nil
		}
	}

	if c.noop != nil && c.noop(st) {
		return st, nil
	}

	mutation := &models.Mutation{
		ID:             uuid.NewString(),
		SessionKey:     p.SessionKey,
		Kind:           c.kind,
		ProductID:      c.productID,
		Status:         models.MutationPending,
		IdempotencyKey: key,
	}

	// Only callers outside the HTTP chain arrive without a key.
	if mutation.IdempotencyKey == "" {
		mutation.IdempotencyKey = mutation.ID
		ctx = shopapi.WithIdempotencyKey(ctx, mutation.ID)
	}

	if err := s.mutations.CreateMutation(ctx, mutation); err != nil {
		return nil, appErrors.DatabaseError("Failed to record cart change").WithError(err)
	}

	if err := c.send(ctx); err != nil {
		s.finish(ctx, mutation, models.MutationFailed, err.Error())
		return nil, upstreamError(err, "Failed to update cart")
	}

	c.apply(st)
	session.State = st.Snapshot()

	if err := s.sessions.repo.SaveSession(ctx, session); err != nil {
		// The backend has the change; a reseed on the next read picks it up.
		if delErr := s.sessions.repo.DeleteSession(ctx, p.SessionKey); delErr != nil {
			logger.Error("Failed to drop stale session", "session", p.SessionKey, "error", delErr)
		}
		s.finish(ctx, mutation, models.MutationConfirmed, "")

		return nil, appErrors.InternalError("Failed to save cart").WithError(err)
	}

	s.finish(ctx, mutation, models.MutationConfirmed, "")

	return st, nil
}

// replayed reports whether the session already has a confirmed change sent
// with key. A key reused for another kind of change is a conflict.
func (s *shopService) replayed(ctx context.Context, sessionKey, key string, kind models.MutationKind) (bool, error) {

	prior, err := s.mutations.FindConfirmedMutation(ctx, sessionKey, key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, appErrors.DatabaseError("Failed to check cart history").WithError(err)
	}

	if prior.Kind != kind {
		return false, appErrors.ConflictError("Idempotency-Key was already used for a different change")
	}

	return true, nil
}

func (s *shopService) finish(ctx context.Context, m *models.Mutation, status models.MutationStatus, errMsg string) {

	m.Status = status
	m.Error = errMsg
	metrics.CartMutationsTotal.WithLabelValues(string(m.Kind), string(status)).Inc()

	if err := s.mutations.UpdateMutationStatus(ctx, m.ID, status, errMsg); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to update mutation status",
			"mutation_id", m.ID, "status", status, "error", err)
	}
}

// sessionError maps a failure to load or seed a session.
func sessionError(err error) error {
	var apiErr *shopapi.Error
	if errors.As(err, &apiErr) || errors.Is(err, shopapi.ErrUnavailable) {
		return upstreamError(err, "Failed to load cart")
	}

	return appErrors.InternalError("Failed to load session").WithError(err)
}
