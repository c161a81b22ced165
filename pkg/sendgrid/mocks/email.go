// Package mocks holds a testify mock of the SendGrid email service.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func NewEmailService(t interface {
	mock.TestingT
	Cleanup(func())
}) *EmailService {
	m := &EmailService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *EmailService) Send(ctx context.Context, email *sendgrid.Email) error {
	return m.Called(ctx, email).Error(0)
}

func (m *EmailService) GetSendGridClient() *sg.Client {
	return nil
}
