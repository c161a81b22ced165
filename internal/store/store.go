// Package store holds a session's cart and favorites.
//
// A Store is an explicit value handed to whoever needs it; there is no package
// level instance. Mutations cannot fail and are visible to every reader of the
// same Store as soon as the call returns.
package store

import (
	"slices"
	"sync"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu        sync.RWMutex
	cart      []models.CartItem
	favorites []models.FavoriteEntry
}

func New() *Store {
	return &Store{}
}

// FromState rebuilds a store from a snapshot, collapsing duplicate product keys
// so a corrupted snapshot cannot break the one-entry-per-product rule.
func FromState(state models.ShopState) *Store {
	s := New()

	for _, item := range state.Cart {
		if item.Quantity < 1 {
			continue
		}

		if i := s.cartIndex(item.Product.Key()); i >= 0 {
			s.cart[i].Quantity += item.Quantity
			continue
		}

		s.cart = append(s.cart, item)
	}

	for _, fav := range state.Favorites {
		if s.favoriteIndex(fav.Product.Key()) < 0 {
			s.favorites = append(s.favorites, fav)
		}
	}

	return s
}

// AddToCart increments the quantity of an existing item or appends a new one.
func (s *Store) AddToCart(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.cartIndex(p.Key()); i >= 0 {
		s.cart[i].Quantity++
		return
	}

	s.cart = append(s.cart, models.CartItem{Product: p, Quantity: 1})
}

func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.cartIndex(productID); i >= 0 {
		s.cart = slices.Delete(s.cart, i, i+1)
	}
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
}

// AddToFavorites is a set insert: adding a product twice keeps one entry.
func (s *Store) AddToFavorites(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.favoriteIndex(p.Key()) >= 0 {
		return
	}

	s.favorites = append(s.favorites, models.FavoriteEntry{Product: p})
}

func (s *Store) RemoveFromFavorites(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.favoriteIndex(productID); i >= 0 {
		s.favorites = slices.Delete(s.favorites, i, i+1)
	}
}

// CartQuantity is the sum of all item quantities.
func (s *Store) CartQuantity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.quantity()
}

func (s *Store) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.subtotal()
}

// CartKey returns the key of the cart line that productID names, accepting
// either product identifier.
func (s *Store) CartKey(productID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.cartIndex(productID); i >= 0 {
		return s.cart[i].Product.Key(), true
	}

	return "", false
}

// FavoriteKey is CartKey for favorites.
func (s *Store) FavoriteKey(productID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.favoriteIndex(productID); i >= 0 {
		return s.favorites[i].Product.Key(), true
	}

	return "", false
}

func (s *Store) InCart(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cartIndex(productID) >= 0
}

func (s *Store) IsFavorite(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.favoriteIndex(productID) >= 0
}

func (s *Store) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.cart)
}

func (s *Store) Favorites() []models.FavoriteEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.favorites)
}

// Cart returns the cart together with its derived totals, read under one lock.
func (s *Store) Cart() models.CartView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := slices.Clone(s.cart)
	if items == nil {
		items = []models.CartItem{}
	}

	return models.CartView{
		Items:    items,
		Quantity: s.quantity(),
		Subtotal: s.subtotal(),
	}
}

func (s *Store) FavoritesView() models.FavoritesView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := slices.Clone(s.favorites)
	if items == nil {
		items = []models.FavoriteEntry{}
	}

	return models.FavoritesView{Items: items, Count: len(items)}
}

// Snapshot is a deep copy: later store mutations never show through it.
func (s *Store) Snapshot() models.ShopState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := models.ShopState{
		Cart:      make([]models.CartItem, len(s.cart)),
		Favorites: make([]models.FavoriteEntry, len(s.favorites)),
	}
	for i, item := range s.cart {
		item.Product = cloneProduct(item.Product)
		state.Cart[i] = item
	}
	for i, fav := range s.favorites {
		fav.Product = cloneProduct(fav.Product)
		state.Favorites[i] = fav
	}

	return state
}

// callers hold mu

func (s *Store) quantity() int {
	total := 0
	for _, item := range s.cart {
		total += item.Quantity
	}

	return total
}

func (s *Store) subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range s.cart {
		subtotal = subtotal.Add(item.LineTotal())
	}

	return subtotal
}

func (s *Store) cartIndex(productID string) int {
	return slices.IndexFunc(s.cart, func(item models.CartItem) bool {
		return item.Product.Key() == productID || item.Product.Matches(productID)
	})
}

func (s *Store) favoriteIndex(productID string) int {
	return slices.IndexFunc(s.favorites, func(fav models.FavoriteEntry) bool {
		return fav.Product.Key() == productID || fav.Product.Matches(productID)
	})
}

func cloneProduct(p models.Product) models.Product {
	p.Reviews = slices.Clone(p.Reviews)
	return p
}
