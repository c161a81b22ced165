package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupOrderTest(t *testing.T) (*mocks.OrderService, *handlers.OrderHandler) {
	mockOrderService := mocks.NewOrderService(t)
	return mockOrderService, handlers.NewOrderHandler(mockOrderService)
}

func TestListOrders(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest(t)
		req, principal := createAuthenticatedRequest(http.MethodGet, "/api/v1/orders", nil)
		recorder := httptest.NewRecorder()

		mockOrderService.On("ListOrders", mock.Anything, principal).
			Return([]models.Order{{ID: "o1", Status: models.OrderStatusPending}}, nil).Once()

		// Act
		orderHandler.ListOrders()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"_id":"o1"`)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		_, orderHandler := setupOrderTest(t)
		recorder := httptest.NewRecorder()

		orderHandler.ListOrders()(recorder, createRequest(http.MethodGet, "/api/v1/orders", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestCancelOrder(t *testing.T) {
	tests := []struct {
		name           string
		order          *models.Order
		err            error
		expectedStatus int
	}{
		{
			name:           "Success - Cancelled",
			order:          &models.Order{ID: "o1", Status: models.OrderStatusCancelled},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Failure - Already shipped",
			err:            appErrors.ConflictError("Order can no longer be cancelled"),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Failure - Not found",
			err:            appErrors.NotFoundError("Order not found"),
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockOrderService, orderHandler := setupOrderTest(t)
			req, principal := createAuthenticatedRequest(http.MethodPut, "/api/v1/orders/o1/cancel", nil)
			req.SetPathValue("id", "o1")
			recorder := httptest.NewRecorder()

			if tc.err != nil {
				mockOrderService.On("CancelOrder", mock.Anything, principal, "o1").Return(nil, tc.err).Once()
			} else {
				mockOrderService.On("CancelOrder", mock.Anything, principal, "o1").Return(tc.order, nil).Once()
			}

			// Act
			orderHandler.CancelOrder()(recorder, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, recorder.Code)
		})
	}
}
