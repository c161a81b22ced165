// Package mocks holds a testify mock of the stripe client.
package mocks

import (
	"github.com/aaravmahajanofficial/storefront/pkg/stripe"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func NewClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *Client {
	m := &Client{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Client) VerifyWebhookSignature(payload []byte, signature string) (stripe.Event, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(stripe.Event), args.Error(1)
}

func (m *Client) ParseCheckoutEvent(event stripe.Event) (*stripe.SessionResult, error) {
	args := m.Called(event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*stripe.SessionResult), args.Error(1)
}

func (m *Client) GetCheckoutSession(id string) (*stripe.SessionResult, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*stripe.SessionResult), args.Error(1)
}

func (m *Client) CanLookup() bool {
	return m.Called().Bool(0)
}

var _ stripe.Client = (*Client)(nil)
