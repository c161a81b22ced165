package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
)

type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, checkout *models.Checkout) error
}

type notificationService struct {
	emailService sendgrid.EmailService
}

// NewNotificationService returns a service that drops every message when
// emailService is nil.
func NewNotificationService(emailService sendgrid.EmailService) NotificationService {
	return &notificationService{emailService: emailService}
}

// SendOrderConfirmation implements NotificationService.
func (n *notificationService) SendOrderConfirmation(ctx context.Context, checkout *models.Checkout) error {

	if n.emailService == nil || checkout.Email == "" {
		return nil
	}

	amount := fmt.Sprintf("%s %s", checkout.Amount.StringFixed(2), strings.ToUpper(checkout.Currency))

	text := fmt.Sprintf("Hi %s,\n\nThanks for your order. We received your %s payment of %s.\nOrder reference: %s\n\nIt will ship to %s, %s.",
		checkout.Shipping.FullName, methodLabel(checkout.Method), amount, reference(checkout),
		checkout.Shipping.Street, checkout.Shipping.City)

	email := &sendgrid.Email{
		To:      checkout.Email,
		ToName:  checkout.Shipping.FullName,
		Subject: "Your order is confirmed",
		Text:    text,
		HTML:    "<p>" + strings.ReplaceAll(html.EscapeString(text), "\n", "<br>") + "</p>",
	}

	if err := n.emailService.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	return nil
}

func methodLabel(m models.PaymentMethod) string {
	switch m {
	case models.PaymentMethodCard:
		return "card"
	case models.PaymentMethodMobileMoney:
		return "mobile money"
	case models.PaymentMethodCashOnDelivery:
		return "cash on delivery"
	}

	return string(m)
}

func reference(c *models.Checkout) string {
	if c.Reference != "" {
		return c.Reference
	}

	return c.ID
}
