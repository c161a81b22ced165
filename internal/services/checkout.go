package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/store"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
	"github.com/aaravmahajanofficial/storefront/pkg/stripe"
	"github.com/google/uuid"
)

// CheckoutService runs the two step checkout: shipping details first, then a
// payment method. The cart is cleared only once the backend has the order.
type CheckoutService interface {
	SubmitShipping(ctx context.Context, p *models.Principal, info *models.ShippingInfo) (*models.CheckoutDraft, error)
	SubmitPayment(ctx context.Context, p *models.Principal, sel *models.PaymentSelection) (*models.CheckoutResponse, error)
	GetCheckout(ctx context.Context, p *models.Principal, id string) (*models.Checkout, error)
	HandleStripeEvent(ctx context.Context, payload []byte, signature string) error
}

type checkoutService struct {
	cfg       *config.Config
	sessions  sessionLoader
	checkouts repository.CheckoutRepository
	api       shopapi.API
	stripe    stripe.Client
	notifier  NotificationService
	locks     *SessionLocks
}

func NewCheckoutService(
	cfg *config.Config,
	sessions repository.SessionRepository,
	checkouts repository.CheckoutRepository,
	api shopapi.API,
	stripeClient stripe.Client,
	notifier NotificationService,
	locks *SessionLocks,
) CheckoutService {
	return &checkoutService{
		cfg:       cfg,
		sessions:  sessionLoader{repo: sessions, api: api},
		checkouts: checkouts,
		api:       api,
		stripe:    stripeClient,
		notifier:  notifier,
		locks:     locks,
	}
}

func (s *checkoutService) SubmitShipping(ctx context.Context, p *models.Principal, info *models.ShippingInfo) (*models.CheckoutDraft, error) {

	unlock := s.locks.Lock(p.SessionKey)
	defer unlock()

	session, err := s.sessions.load(ctx, p)
	if err != nil {
		return nil, sessionError(err)
	}

	shipping := sanitizeShipping(*info)
	session.Checkout = &models.CheckoutDraft{Step: models.StepPayment, Shipping: &shipping}

	if err := s.sessions.repo.SaveSession(ctx, session); err != nil {
		return nil, appErrors.InternalError("Failed to save shipping information").WithError(err)
	}

	return session.Checkout, nil
}

func (s *checkoutService) SubmitPayment(ctx context.Context, p *models.Principal, sel *models.PaymentSelection) (*models.CheckoutResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	unlock := s.locks.Lock(p.SessionKey)
	defer unlock()

	session, err := s.sessions.load(ctx, p)
	if err != nil {
		return nil, sessionError(err)
	}

	if session.Checkout == nil || session.Checkout.Shipping == nil {
		return nil, appErrors.BadRequestError("Shipping information is required before payment")
	}

	st := store.FromState(session.State)
	if st.CartQuantity() == 0 {
		return nil, appErrors.BadRequestError("Cart is empty")
	}

	currency := strings.ToLower(sel.Currency)
	if currency == "" {
		currency = s.cfg.Storefront.Currency
	}

	checkout := &models.Checkout{
		ID:         uuid.NewString(),
		SessionKey: p.SessionKey,
		Method:     sel.Method,
		Status:     models.CheckoutPending,
		Amount:     st.Subtotal(),
		Currency:   currency,
		Email:      session.Checkout.Shipping.Email,
		Shipping:   *session.Checkout.Shipping,
	}

	if err := s.checkouts.CreateCheckout(ctx, checkout); err != nil {
		return nil, appErrors.DatabaseError("Failed to record checkout").WithError(err)
	}

	if shopapi.IdempotencyKeyFrom(ctx) == "" {
		ctx = shopapi.WithIdempotencyKey(ctx, checkout.ID)
	}

	items := shopapi.LineItems(st.Items())

	var ack *shopapi.PaymentAck

	switch sel.Method {
	case models.PaymentMethodCard:
		cs, err := s.api.CreateCheckoutSession(ctx, p.Token, &shopapi.CardCheckoutRequest{
			Reference:  checkout.ID,
			Items:      items,
			Amount:     checkout.Amount,
			Currency:   checkout.Currency,
			Shipping:   checkout.Shipping,
			SuccessURL: sel.SuccessURL,
			CancelURL:  sel.CancelURL,
		})
		if err != nil {
			s.fail(ctx, checkout, err)
			return nil, upstreamError(err, "Failed to start card payment")
		}

		checkout.Reference = cs.ID
		checkout.RedirectURL = cs.URL

		// The webhook can still match on the checkout id if this write is lost.
		if err := s.checkouts.UpdateCheckoutReference(ctx, checkout.ID, cs.ID, cs.URL); err != nil {
			logger.Error("Failed to store card session reference", "checkout_id", checkout.ID, "error", err)
		}

		metrics.CheckoutsTotal.WithLabelValues(string(checkout.Method), string(checkout.Status)).Inc()

		return &models.CheckoutResponse{Checkout: checkout, Message: "Complete the card payment to place your order"}, nil

	case models.PaymentMethodMobileMoney:
		ack, err = s.api.PayMobile(ctx, p.Token, &shopapi.MobilePaymentRequest{
			Reference: checkout.ID,
			Provider:  utils.Sanitize(sel.Provider),
			Phone:     sel.MobilePhone,
			Items:     items,
			Amount:    checkout.Amount,
			Currency:  checkout.Currency,
			Shipping:  checkout.Shipping,
		})

	case models.PaymentMethodCashOnDelivery:
		ack, err = s.api.PayCash(ctx, p.Token, &shopapi.CashPaymentRequest{
			Reference: checkout.ID,
			Items:     items,
			Amount:    checkout.Amount,
			Currency:  checkout.Currency,
			Shipping:  checkout.Shipping,
		})

	default:
		err = appErrors.BadRequestError("Unsupported payment method").WithDetail(string(sel.Method))
		s.fail(ctx, checkout, err)
		return nil, err
	}

	if err != nil {
		s.fail(ctx, checkout, err)
		return nil, upstreamError(err, "Failed to place order")
	}

	if ack == nil {
		ack = &shopapi.PaymentAck{}
	}

	checkout.Status = models.CheckoutConfirmed
	checkout.Reference = ack.OrderID

	if ack.OrderID != "" {
		if err := s.checkouts.UpdateCheckoutReference(ctx, checkout.ID, ack.OrderID, ""); err != nil {
			logger.Error("Failed to store order reference", "checkout_id", checkout.ID, "error", err)
		}
	}

	if err := s.checkouts.UpdateCheckoutStatus(ctx, checkout.ID, models.CheckoutConfirmed, ""); err != nil {
		logger.Error("Failed to mark checkout confirmed", "checkout_id", checkout.ID, "error", err)
	}

	metrics.CheckoutsTotal.WithLabelValues(string(checkout.Method), string(checkout.Status)).Inc()

	if err := s.api.ClearCart(shopapi.WithIdempotencyKey(ctx, checkout.ID+":cart"), p.Token); err != nil {
		logger.Warn("Failed to clear backend cart after order", "checkout_id", checkout.ID, "error", err)
	}

	session.State.Cart = nil
	session.Checkout = nil
	if err := s.sessions.repo.SaveSession(ctx, session); err != nil {
		logger.Error("Failed to clear local cart after order", "checkout_id", checkout.ID, "error", err)
	}

	s.notify(ctx, checkout)

	message := ack.Message
	if message == "" {
		message = "Order placed"
	}

	return &models.CheckoutResponse{Checkout: checkout, Message: message}, nil
}

// GetCheckout returns one of the caller's checkouts. A pending card checkout
// is refreshed from Stripe when a lookup key is configured.
func (s *checkoutService) GetCheckout(ctx context.Context, p *models.Principal, id string) (*models.Checkout, error) {

	checkout, err := s.checkouts.GetCheckoutByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Checkout not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch checkout").WithError(err)
	}

	if checkout.SessionKey != p.SessionKey {
		return nil, appErrors.NotFoundError("Checkout not found")
	}

	if checkout.Status != models.CheckoutPending || checkout.Method != models.PaymentMethodCard ||
		checkout.Reference == "" || !s.stripe.CanLookup() {
		return checkout, nil
	}

	result, err := s.stripe.GetCheckoutSession(checkout.Reference)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to refresh card checkout", "checkout_id", checkout.ID, "error", err)
		return checkout, nil
	}

	if err := s.resolve(ctx, checkout, result.Outcome); err != nil {
		return nil, err
	}

	return checkout, nil
}

// HandleStripeEvent settles card checkouts from Stripe's signed webhooks.
// Events that do not concern a known pending checkout are acknowledged and ignored.
func (s *checkoutService) HandleStripeEvent(ctx context.Context, payload []byte, signature string) error {

	logger := middleware.LoggerFromContext(ctx)

	event, err := s.stripe.VerifyWebhookSignature(payload, signature)
	if err != nil {
		if errors.Is(err, stripe.ErrWebhookNotConfigured) {
			return appErrors.InternalError("Card payment webhooks are not configured").WithError(err)
		}

		return appErrors.BadRequestError("Webhook signature verification failed").WithError(err)
	}

	result, err := s.stripe.ParseCheckoutEvent(event)
	if err != nil {
		return appErrors.BadRequestError("Malformed webhook event").WithError(err)
	}

	if result.Outcome != stripe.OutcomePaid && result.Outcome != stripe.OutcomeFailed {
		return nil
	}

	checkout, err := s.findCardCheckout(ctx, result)
	if err != nil {
		return err
	}

	if checkout == nil {
		logger.Warn("Webhook for unknown checkout", "event_id", event.ID, "session_id", result.SessionID)
		return nil
	}

	return s.resolve(ctx, checkout, result.Outcome)
}

func (s *checkoutService) findCardCheckout(ctx context.Context, result *stripe.SessionResult) (*models.Checkout, error) {

	if result.ClientReferenceID != "" {
		checkout, err := s.checkouts.GetCheckoutByID(ctx, result.ClientReferenceID)
		if err == nil {
			return checkout, nil
		}

		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.DatabaseError("Failed to fetch checkout").WithError(err)
		}
	}

	if result.SessionID == "" {
		return nil, nil
	}

	checkout, err := s.checkouts.GetCheckoutByReference(ctx, result.SessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, appErrors.DatabaseError("Failed to fetch checkout").WithError(err)
	}

	return checkout, nil
}

// resolve moves a pending card checkout to its final state. Whoever wins the
// conditional update clears the cart; everyone else sees a no-op.
func (s *checkoutService) resolve(ctx context.Context, checkout *models.Checkout, outcome stripe.SessionOutcome) error {

	if checkout.Status != models.CheckoutPending {
		return nil
	}

	var (
		status models.CheckoutStatus
		errMsg string
	)

	switch outcome {
	case stripe.OutcomePaid:
		status = models.CheckoutConfirmed
	case stripe.OutcomeFailed:
		status = models.CheckoutFailed
		errMsg = "card payment failed or expired"
	default:
		return nil
	}

	if err := s.checkouts.UpdateCheckoutStatus(ctx, checkout.ID, status, errMsg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}

		return appErrors.DatabaseError("Failed to update checkout").WithError(err)
	}

	checkout.Status = status
	checkout.Error = errMsg
	metrics.CheckoutsTotal.WithLabelValues(string(checkout.Method), string(status)).Inc()

	if status == models.CheckoutConfirmed {
		s.clearLocalCart(ctx, checkout.SessionKey)
		s.notify(ctx, checkout)
	}

	return nil
}

func (s *checkoutService) clearLocalCart(ctx context.Context, sessionKey string) {

	logger := middleware.LoggerFromContext(ctx)

	unlock := s.locks.Lock(sessionKey)
	defer unlock()

	session, err := s.sessions.repo.GetSession(ctx, sessionKey)
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			logger.Error("Failed to load session for paid checkout", "session", sessionKey, "error", err)
		}
		return
	}

	session.State.Cart = nil
	session.Checkout = nil

	if err := s.sessions.repo.SaveSession(ctx, session); err != nil {
		logger.Error("Failed to clear cart for paid checkout", "session", sessionKey, "error", err)
	}
}

func (s *checkoutService) fail(ctx context.Context, checkout *models.Checkout, cause error) {

	checkout.Status = models.CheckoutFailed
	checkout.Error = cause.Error()
	metrics.CheckoutsTotal.WithLabelValues(string(checkout.Method), string(checkout.Status)).Inc()

	if err := s.checkouts.UpdateCheckoutStatus(ctx, checkout.ID, models.CheckoutFailed, cause.Error()); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to mark checkout failed", "checkout_id", checkout.ID, "error", err)
	}
}

func (s *checkoutService) notify(ctx context.Context, checkout *models.Checkout) {
	if err := s.notifier.SendOrderConfirmation(ctx, checkout); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Order confirmation not sent", "checkout_id", checkout.ID, "error", err)
	}
}

func sanitizeShipping(info models.ShippingInfo) models.ShippingInfo {
	return models.ShippingInfo{
		FullName:   utils.Sanitize(info.FullName),
		Email:      normalizeEmail(info.Email),
		Phone:      strings.TrimSpace(info.Phone),
		Street:     utils.Sanitize(info.Street),
		City:       utils.Sanitize(info.City),
		State:      utils.Sanitize(info.State),
		PostalCode: utils.Sanitize(info.PostalCode),
		Country:    strings.ToUpper(strings.TrimSpace(info.Country)),
	}
}
