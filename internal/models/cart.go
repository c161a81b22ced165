package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type FavoriteEntry struct {
	Product Product `json:"product"`
}

// ShopState is the serialisable form of a session's cart and favorites.
type ShopState struct {
	Cart      []CartItem      `json:"cart"`
	Favorites []FavoriteEntry `json:"favorites"`
}

type CartView struct {
	Items    []CartItem      `json:"items"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type FavoritesView struct {
	Items []FavoriteEntry `json:"items"`
	Count int             `json:"count"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
}

type Session struct {
	Key       string         `json:"key"`
	UserID    string         `json:"user_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	State     ShopState      `json:"state"`
	Checkout  *CheckoutDraft `json:"checkout,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type MutationKind string

const (
	MutationAddToCart          MutationKind = "cart.add"
	MutationRemoveFromCart     MutationKind = "cart.remove"
	MutationClearCart          MutationKind = "cart.clear"
	MutationAddToFavorites     MutationKind = "favorites.add"
	MutationRemoveFromFavorite MutationKind = "favorites.remove"
)

type MutationStatus string

const (
	MutationPending   MutationStatus = "pending"
	MutationConfirmed MutationStatus = "confirmed"
	MutationFailed    MutationStatus = "failed"
)

// Mutation records one cart or favorites change and whether the backend accepted it.
type Mutation struct {
	ID             string         `json:"id"`
	SessionKey     string         `json:"session_key"`
	Kind           MutationKind   `json:"kind"`
	ProductID      string         `json:"product_id,omitempty"`
	Status         MutationStatus `json:"status"`
	Error          string         `json:"error,omitempty"`
	IdempotencyKey string         `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
