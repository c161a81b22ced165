package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Review struct {
	User    string  `json:"user,omitempty"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment,omitempty"`
}

// Product is owned by the commerce backend; the storefront never edits it.
type Product struct {
	ID          int64           `json:"id,omitempty"`
	ObjectID    string          `json:"_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount,omitempty"`
	Rating      float64         `json:"rating,omitempty"`
	Reviews     []Review        `json:"reviews,omitempty"`
	Sold        int             `json:"sold,omitempty"`
	Stock       int             `json:"stock,omitempty"`
}

// Key returns the identity used for cart and favorites uniqueness.
func (p Product) Key() string {
	if p.ObjectID != "" {
		return p.ObjectID
	}

	return strconv.FormatInt(p.ID, 10)
}

// Matches reports whether id names this product, either by its backend
// object id or by its numeric id.
func (p Product) Matches(id string) bool {
	if id == "" {
		return false
	}
	if p.ObjectID == id {
		return true
	}

	return p.ID != 0 && strconv.FormatInt(p.ID, 10) == id
}

// HasDiscount reports whether the product carries a percentage discount.
func (p Product) HasDiscount() bool {
	return p.Discount.GreaterThan(decimal.Zero)
}

// EffectivePrice is the unit price after the percentage discount, rounded to cents.
func (p Product) EffectivePrice() decimal.Decimal {
	if !p.HasDiscount() {
		return p.Price
	}

	factor := hundred.Sub(decimal.Min(p.Discount, hundred)).Div(hundred)

	return p.Price.Mul(factor).Round(2)
}

type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ProductQuery struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Category string `json:"category,omitempty"`
	Search   string `json:"search,omitempty"`
}
