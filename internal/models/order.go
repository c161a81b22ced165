package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type Order struct {
	ID            string          `json:"_id"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Items         []OrderItem     `json:"items"`
	Shipping      *ShippingInfo   `json:"shipping,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Cancellable reports whether the backend still accepts a cancel for the order.
func (o Order) Cancellable() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
