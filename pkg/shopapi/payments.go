package shopapi

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// LineItem is one cart line as the payment endpoints expect it.
type LineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

type CardCheckoutRequest struct {
	Reference  string              `json:"reference"`
	Items      []LineItem          `json:"items"`
	Amount     decimal.Decimal     `json:"amount"`
	Currency   string              `json:"currency"`
	Shipping   models.ShippingInfo `json:"shipping"`
	SuccessURL string              `json:"successUrl,omitempty"`
	CancelURL  string              `json:"cancelUrl,omitempty"`
}

// CheckoutSession is the hosted card payment page created by the backend.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type MobilePaymentRequest struct {
	Reference string              `json:"reference"`
	Provider  string              `json:"provider"`
	Phone     string              `json:"phone"`
	Items     []LineItem          `json:"items"`
	Amount    decimal.Decimal     `json:"amount"`
	Currency  string              `json:"currency"`
	Shipping  models.ShippingInfo `json:"shipping"`
}

type CashPaymentRequest struct {
	Reference string              `json:"reference"`
	Items     []LineItem          `json:"items"`
	Amount    decimal.Decimal     `json:"amount"`
	Currency  string              `json:"currency"`
	Shipping  models.ShippingInfo `json:"shipping"`
}

// PaymentAck is the backend's acknowledgement of a mobile or cash order.
type PaymentAck struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *Client) CreateCheckoutSession(ctx context.Context, token string, req *CardCheckoutRequest) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := c.do(ctx, request{method: http.MethodPost, path: "/payments/create-checkout-session", token: token, body: req}, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (c *Client) PayMobile(ctx context.Context, token string, req *MobilePaymentRequest) (*PaymentAck, error) {
	var ack PaymentAck
	if err := c.do(ctx, request{method: http.MethodPost, path: "/payments/mobile", token: token, body: req}, &ack); err != nil {
		return nil, err
	}

	return &ack, nil
}

func (c *Client) PayCash(ctx context.Context, token string, req *CashPaymentRequest) (*PaymentAck, error) {
	var ack PaymentAck
	if err := c.do(ctx, request{method: http.MethodPost, path: "/payments/cash", token: token, body: req}, &ack); err != nil {
		return nil, err
	}

	return &ack, nil
}

// LineItems converts cart lines using the discounted unit price.
func LineItems(items []models.CartItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, LineItem{
			ProductID: item.Product.Key(),
			Name:      item.Product.Name,
			UnitPrice: item.Product.EffectivePrice(),
			Quantity:  item.Quantity,
		})
	}

	return out
}
