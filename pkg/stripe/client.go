package stripe

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

type Event = stripe.Event

var ErrWebhookNotConfigured = errors.New("webhook secret not configured")

// SessionOutcome is what a hosted checkout session resolved to.
type SessionOutcome string

const (
	OutcomeUnknown    SessionOutcome = ""
	OutcomePaid       SessionOutcome = "paid"
	OutcomeFailed     SessionOutcome = "failed"
	OutcomeOpen       SessionOutcome = "open"
	OutcomeIrrelevant SessionOutcome = "irrelevant"
)

// SessionResult is the part of a checkout session the storefront reconciles on.
type SessionResult struct {
	SessionID         string
	ClientReferenceID string
	Outcome           SessionOutcome
}

// Client verifies card payment events and looks up hosted checkout sessions.
type Client interface {
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
	ParseCheckoutEvent(event Event) (*SessionResult, error)
	GetCheckoutSession(id string) (*SessionResult, error)
	CanLookup() bool
}

type stripeClient struct {
	apiKey        string
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string) Client {
	if apiKey != "" {
		stripe.Key = apiKey
	}

	return &stripeClient{apiKey: apiKey, webhookSecret: webhookSecret}
}

// VerifyWebhookSignature implements Client. Events are accepted whatever API
// version the account is pinned to; only the checkout session fields are read.
func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, ErrWebhookNotConfigured
	}

	return webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}

// ParseCheckoutEvent implements Client.
func (s *stripeClient) ParseCheckoutEvent(event Event) (*SessionResult, error) {
	var outcome SessionOutcome

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
		outcome = OutcomePaid
	case stripe.EventTypeCheckoutSessionExpired, stripe.EventTypeCheckoutSessionAsyncPaymentFailed:
		outcome = OutcomeFailed
	default:
		return &SessionResult{Outcome: OutcomeIrrelevant}, nil
	}

	if event.Data == nil {
		return nil, errors.New("event has no data")
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	// A completed session with a delayed payment method is not paid yet.
	if event.Type == stripe.EventTypeCheckoutSessionCompleted && cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
		outcome = OutcomeOpen
	}

	return &SessionResult{SessionID: cs.ID, ClientReferenceID: cs.ClientReferenceID, Outcome: outcome}, nil
}

func (s *stripeClient) CanLookup() bool {
	return s.apiKey != ""
}

// GetCheckoutSession implements Client.
func (s *stripeClient) GetCheckoutSession(id string) (*SessionResult, error) {
	if !s.CanLookup() {
		return nil, errors.New("stripe api key not configured")
	}

	cs, err := session.Get(id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}

	return &SessionResult{SessionID: cs.ID, ClientReferenceID: cs.ClientReferenceID, Outcome: sessionOutcome(cs)}, nil
}

func sessionOutcome(cs *stripe.CheckoutSession) SessionOutcome {
	switch {
	case cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return OutcomePaid
	case cs.Status == stripe.CheckoutSessionStatusExpired:
		return OutcomeFailed
	case cs.Status == stripe.CheckoutSessionStatusOpen || cs.Status == stripe.CheckoutSessionStatusComplete:
		return OutcomeOpen
	default:
		return OutcomeUnknown
	}
}
