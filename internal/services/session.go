package service

import (
	"context"
	"errors"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/store"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
)

// sessionLoader reads shopper sessions, seeding a missing one from the
// backend's cart and favorites. Callers hold the session lock.
type sessionLoader struct {
	repo repository.SessionRepository
	api  shopapi.API
}

func (l *sessionLoader) load(ctx context.Context, p *models.Principal) (*models.Session, error) {

	session, err := l.repo.GetSession(ctx, p.SessionKey)
	if err == nil {
		return session, nil
	}

	if !errors.Is(err, repository.ErrSessionNotFound) {
		return nil, err
	}

	cart, err := l.api.GetCart(ctx, p.Token)
	if err != nil {
		return nil, err
	}

	favorites, err := l.api.GetFavorites(ctx, p.Token)
	if err != nil {
		return nil, err
	}

	state := models.ShopState{Cart: cart}
	for _, product := range favorites {
		state.Favorites = append(state.Favorites, models.FavoriteEntry{Product: product})
	}

	session = &models.Session{
		Key:       p.SessionKey,
		UserID:    p.UserID,
		Email:     p.Email,
		State:     store.FromState(state).Snapshot(),
		CreatedAt: time.Now().UTC(),
	}

	if err := l.repo.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
