package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps each shopper's cart, favorites and checkout draft.
type SessionRepository interface {
	GetSession(ctx context.Context, key string) (*models.Session, error)
	SaveSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, key string) error
}

type sessionRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewSessionRepository(c cache.Cache, ttl time.Duration) SessionRepository {
	return &sessionRepository{cache: c, ttl: ttl}
}

func (r *sessionRepository) GetSession(ctx context.Context, key string) (*models.Session, error) {
	var session models.Session

	found, err := r.cache.Get(ctx, cache.Key(cache.SessionKeyPrefix, key), &session)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if !found {
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

// SaveSession refreshes the TTL on every write.
func (r *sessionRepository) SaveSession(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().UTC()

	if err := r.cache.Set(ctx, cache.Key(cache.SessionKeyPrefix, session.Key), session, r.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, key string) error {
	if err := r.cache.Delete(ctx, cache.Key(cache.SessionKeyPrefix, key)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
