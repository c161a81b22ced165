package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodMobileMoney    PaymentMethod = "mobile-money"
	PaymentMethodCashOnDelivery PaymentMethod = "cash-on-delivery"
)

type CheckoutStatus string

const (
	CheckoutPending   CheckoutStatus = "pending"
	CheckoutConfirmed CheckoutStatus = "confirmed"
	CheckoutFailed    CheckoutStatus = "failed"
)

type CheckoutStep string

const (
	StepShipping CheckoutStep = "shipping"
	StepPayment  CheckoutStep = "payment"
)

type ShippingInfo struct {
	FullName   string `json:"full_name" validate:"required,min=2,max=120"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,e164"`
	Street     string `json:"street" validate:"required,max=200"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state,omitempty" validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
	Country    string `json:"country" validate:"required,iso3166_1_alpha2"`
}

// CheckoutDraft holds the first step of a checkout until payment is chosen.
type CheckoutDraft struct {
	Step     CheckoutStep  `json:"step"`
	Shipping *ShippingInfo `json:"shipping,omitempty"`
}

type PaymentSelection struct {
	Method   PaymentMethod `json:"method" validate:"required,oneof=card mobile-money cash-on-delivery"`
	Currency string        `json:"currency,omitempty" validate:"omitempty,len=3"`
	// Mobile money only.
	Provider    string `json:"provider,omitempty" validate:"required_if=Method mobile-money,omitempty,max=40"`
	MobilePhone string `json:"mobile_phone,omitempty" validate:"required_if=Method mobile-money,omitempty,e164"`
	SuccessURL  string `json:"success_url,omitempty" validate:"omitempty,url"`
	CancelURL   string `json:"cancel_url,omitempty" validate:"omitempty,url"`
}

type Checkout struct {
	ID          string          `json:"id"`
	SessionKey  string          `json:"-"`
	Method      PaymentMethod   `json:"method"`
	Status      CheckoutStatus  `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Reference   string          `json:"reference,omitempty"`
	RedirectURL string          `json:"redirect_url,omitempty"`
	Email       string          `json:"-"`
	Shipping    ShippingInfo    `json:"shipping"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CheckoutResponse struct {
	Checkout *Checkout `json:"checkout"`
	Message  string    `json:"message"`
}
