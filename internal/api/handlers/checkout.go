package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// maxWebhookBytes matches the limit stripe documents for event payloads.
const maxWebhookBytes = 65536

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// SubmitShipping godoc
//	@Summary		Checkout step 1: shipping
//	@Description	Stores the shipping address for the caller's next payment.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			shipping	body		models.ShippingInfo		true	"Shipping address"
//	@Success		200			{object}	models.CheckoutDraft	"Draft ready for payment"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		401			{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/checkout/shipping [post]
func (h *CheckoutHandler) SubmitShipping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		var req models.ShippingInfo
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid shipping input")
			return
		}

		draft, err := h.checkoutService.SubmitShipping(r.Context(), p, &req)
		if err != nil {
			logger.Error("Failed to save shipping", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, draft)
	}
}

// SubmitPayment godoc
//	@Summary		Checkout step 2: payment
//	@Description	Places the order. Card payments return a redirect_url and stay pending until the payment provider confirms them; mobile money and cash on delivery are confirmed immediately.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			payment			body		models.PaymentSelection		true	"Payment method"
//	@Param			Idempotency-Key	header		string						false	"Retry key"
//	@Success		201				{object}	models.CheckoutResponse		"Checkout created"
//	@Failure		400				{object}	response.ErrorResponse		"Validation error, empty cart or missing shipping"
//	@Failure		401				{object}	response.ErrorResponse		"Authentication required"
//	@Failure		502				{object}	response.ErrorResponse		"Payment rejected by the commerce backend"
//	@Security		BearerAuth
//	@Router			/checkout/payment [post]
func (h *CheckoutHandler) SubmitPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		var req models.PaymentSelection
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid payment input")
			return
		}

		resp, err := h.checkoutService.SubmitPayment(r.Context(), p, &req)
		if err != nil {
			logger.Error("Checkout failed", slog.String("method", string(req.Method)), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout created",
			slog.String("checkoutId", resp.Checkout.ID),
			slog.String("status", string(resp.Checkout.Status)))
		response.Success(w, http.StatusCreated, resp)
	}
}

// GetCheckout godoc
//	@Summary		Get a checkout
//	@Description	Poll this after returning from the card payment page.
//	@Tags			Checkout
//	@Produce		json
//	@Param			id	path		string					true	"Checkout ID"	Format(uuid)
//	@Success		200	{object}	models.Checkout			"Checkout"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Checkout not found"
//	@Security		BearerAuth
//	@Router			/checkout/{id} [get]
func (h *CheckoutHandler) GetCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		id := r.PathValue("id")

		checkout, err := h.checkoutService.GetCheckout(r.Context(), p, id)
		if err != nil {
			logger.Warn("Failed to get checkout", slog.String("checkoutId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, checkout)
	}
}

// StripeWebhook godoc
//	@Summary		Card payment webhook
//	@Description	Receives signed checkout.session events from Stripe.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string	true	"Stripe signature"
//	@Success		200					{object}	response.APIResponse
//	@Failure		400					{object}	response.ErrorResponse	"Bad signature or payload"
//	@Router			/payments/webhook [post]
func (h *CheckoutHandler) StripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
		if err != nil {
			logger.Error("Error reading webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body").WithError(err))
			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			logger.Warn("Missing Stripe signature")
			response.Error(w, errors.BadRequestError("Stripe Signature is required"))
			return
		}

		if err := h.checkoutService.HandleStripeEvent(r.Context(), payload, signature); err != nil {
			logger.Error("Failed to process payment webhook", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"received": true})
	}
}
