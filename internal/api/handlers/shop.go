package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const (
	defaultMutationLimit = 20
	maxMutationLimit     = 100
)

// ShopHandler serves the caller's cart and favorites.
type ShopHandler struct {
	shopService service.ShopService
	validator   *validator.Validate
}

func NewShopHandler(shopService service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		502	{object}	response.ErrorResponse	"Commerce backend error"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *ShopHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		cart, err := h.shopService.GetCart(r.Context(), p)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddToCart godoc
//	@Summary		Add a product to the cart
//	@Description	Adds one unit. Send an Idempotency-Key header to make retries safe.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item			body		models.AddItemRequest	true	"Product to add"
//	@Param			Idempotency-Key	header		string					false	"Retry key"
//	@Success		200				{object}	models.CartView			"Updated cart"
//	@Failure		400				{object}	response.ErrorResponse	"Validation error"
//	@Failure		401				{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404				{object}	response.ErrorResponse	"Product not found"
//	@Failure		409				{object}	response.ErrorResponse	"Idempotency-Key reused for another change"
//	@Failure		502				{object}	response.ErrorResponse	"Commerce backend error"
//	@Security		BearerAuth
//	@Router			/cart/items [post]
func (h *ShopHandler) AddToCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		cart, err := h.shopService.AddToCart(r.Context(), p, req.ProductID)
		if err != nil {
			logger.Error("Failed to add to cart", slog.String("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Added to cart", slog.String("productId", req.ProductID))
		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveFromCart godoc
//	@Summary		Remove a product from the cart
//	@Description	Removes the whole line. Removing a product that is not in the cart succeeds.
//	@Tags			Cart
//	@Produce		json
//	@Param			id	path		string					true	"Product ID"
//	@Success		200	{object}	models.CartView			"Updated cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		502	{object}	response.ErrorResponse	"Commerce backend error"
//	@Security		BearerAuth
//	@Router			/cart/items/{id} [delete]
func (h *ShopHandler) RemoveFromCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		id := r.PathValue("id")

		cart, err := h.shopService.RemoveFromCart(r.Context(), p, id)
		if err != nil {
			logger.Error("Failed to remove from cart", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Removed from cart", slog.String("productId", id))
		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Empty cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		502	{object}	response.ErrorResponse	"Commerce backend error"
//	@Security		BearerAuth
//	@Router			/cart [delete]
func (h *ShopHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		cart, err := h.shopService.ClearCart(r.Context(), p)
		if err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared")
		response.Success(w, http.StatusOK, cart)
	}
}

// GetFavorites godoc
//	@Summary		Get favorites
//	@Tags			Favorites
//	@Produce		json
//	@Success		200	{object}	models.FavoritesView	"Favorites"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		502	{object}	response.ErrorResponse	"Commerce backend error"
//	@Security		BearerAuth
//	@Router			/favorites [get]
func (h *ShopHandler) GetFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		favorites, err := h.shopService.GetFavorites(r.Context(), p)
		if err != nil {
			logger.Error("Failed to get favorites", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, favorites)
	}
}

// AddToFavorites godoc
//	@Summary		Add a favorite
//	@Description	Adding a product that is already a favorite succeeds without a second entry.
//	@Tags			Favorites
//	@Accept			json
//	@Produce		json
//	@Param			item			body		models.AddItemRequest	true	"Product to add"
//	@Param			Idempotency-Key	header		string					false	"Retry key"
//	@Success		200				{object}	models.FavoritesView	"Updated favorites"
//	@Failure		400				{object}	response.ErrorResponse	"Validation error"
//	@Failure		401				{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404				{object}	response.ErrorResponse	"Product not found"
//	@Failure		409				{object}	response.ErrorResponse	"Idempotency-Key reused for another change"
//	@Failure		502				{object}	response.ErrorResponse	"Commerce backend error"
//	@Security		BearerAuth
//	@Router			/favorites [post]
func (h *ShopHandler) AddToFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add favorite input")
			return
		}

		favorites, err := h.shopService.AddToFavorites(r.Context(), p, req.ProductID)
		if err != nil {
			logger.Error("Failed to add favorite", slog.String("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, favorites)
	}
}

// RemoveFromFavorites godoc
//	@Summary		Remove a favorite
//	@Tags			Favorites
//	@Produce		json
//	@Param			id	path		string					true	"Product ID"
//	@Success		200	{object}	models.FavoritesView	"Updated favorites"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		502	{object}	response.ErrorResponse	"Commerce backend error"
//	@Security		BearerAuth
//	@Router			/favorites/{id} [delete]
func (h *ShopHandler) RemoveFromFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		id := r.PathValue("id")

		favorites, err := h.shopService.RemoveFromFavorites(r.Context(), p, id)
		if err != nil {
			logger.Error("Failed to remove favorite", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, favorites)
	}
}

// ListMutations godoc
//	@Summary		Recent cart and favorites changes
//	@Description	The caller's latest changes, newest first, with whether the commerce backend accepted each one.
//	@Tags			Cart
//	@Produce		json
//	@Param			limit	query		int						false	"Maximum entries (default: 20, max: 100)"
//	@Success		200		{array}		models.Mutation			"Changes"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/mutations [get]
func (h *ShopHandler) ListMutations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		limit := queryInt(r, "limit", defaultMutationLimit)
		if limit < 1 || limit > maxMutationLimit {
			limit = defaultMutationLimit
		}

		mutations, err := h.shopService.ListMutations(r.Context(), p, limit)
		if err != nil {
			logger.Error("Failed to list mutations", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, mutations)
	}
}
