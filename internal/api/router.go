// Package api mounts the storefront's HTTP routes.
package api

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger"
)

const prefix = "/api/v1"

type Handlers struct {
	Auth     *handlers.AuthHandler
	Catalog  *handlers.CatalogHandler
	Shop     *handlers.ShopHandler
	Checkout *handlers.CheckoutHandler
	Order    *handlers.OrderHandler
	Health   http.Handler
}

// NewRouter returns the full handler chain: request logging, idempotency keys,
// then per-route metrics and authentication.
func NewRouter(h *Handlers, auth *middleware.AuthMiddleware) http.Handler {

	mux := http.NewServeMux()

	public := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, metrics.Middleware(pattern, handler))
	}

	protected := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, metrics.Middleware(pattern, auth.Authenticate(handler)))
	}

	// Auth
	public("POST "+prefix+"/auth/register", h.Auth.Register())
	public("POST "+prefix+"/auth/login", h.Auth.Login())
	public("POST "+prefix+"/auth/forgot-password", h.Auth.ForgotPassword())
	public("PUT "+prefix+"/auth/reset-password/{token}", h.Auth.ResetPassword())
	protected("POST "+prefix+"/auth/logout", h.Auth.Logout())

	// Catalog
	public("GET "+prefix+"/products", h.Catalog.ListProducts())
	public("GET "+prefix+"/products/{id}", h.Catalog.GetProduct())
	public("GET "+prefix+"/storefront/sections/{section}", h.Catalog.Section())
	public("GET "+prefix+"/storefront/flash-sale", h.Catalog.FlashSale())
	public("GET "+prefix+"/countries", h.Catalog.Countries())

	// Cart and favorites
	protected("GET "+prefix+"/cart", h.Shop.GetCart())
	protected("DELETE "+prefix+"/cart", h.Shop.ClearCart())
	protected("POST "+prefix+"/cart/items", h.Shop.AddToCart())
	protected("DELETE "+prefix+"/cart/items/{id}", h.Shop.RemoveFromCart())
	protected("GET "+prefix+"/favorites", h.Shop.GetFavorites())
	protected("POST "+prefix+"/favorites", h.Shop.AddToFavorites())
	protected("DELETE "+prefix+"/favorites/{id}", h.Shop.RemoveFromFavorites())
	protected("GET "+prefix+"/mutations", h.Shop.ListMutations())

	// Orders
	protected("GET "+prefix+"/orders", h.Order.ListOrders())
	protected("PUT "+prefix+"/orders/{id}/cancel", h.Order.CancelOrder())

	// Checkout
	protected("POST "+prefix+"/checkout/shipping", h.Checkout.SubmitShipping())
	protected("POST "+prefix+"/checkout/payment", h.Checkout.SubmitPayment())
	protected("GET "+prefix+"/checkout/{id}", h.Checkout.GetCheckout())
	public("POST "+prefix+"/payments/webhook", h.Checkout.StripeWebhook())

	// Ops
	mux.Handle("GET /metrics", metrics.Handler())
	if h.Health != nil {
		mux.Handle("GET /health", h.Health)
	}
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.Idempotency(handler)
	handler = middleware.Logging(handler)

	return handler
}
