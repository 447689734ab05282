package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"butcher_shop/internal/model"
	"butcher_shop/internal/payment"
	"butcher_shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOrderService implements service.OrderService for handler tests
type mockOrderService struct {
	CreateOrderFunc          func(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResult, error)
	ListOrdersFunc           func(ctx context.Context) ([]model.Order, error)
	UpdateStatusFunc         func(ctx context.Context, id int, status string) error
	UpdateDeliveryStatusFunc func(ctx context.Context, id int, deliveryStatus string) error
}

func (m *mockOrderService) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResult, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, req)
	}
	return &model.CreateOrderResult{OrderID: 1}, nil
}

func (m *mockOrderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx)
	}
	return nil, nil
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, id int, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockOrderService) UpdateDeliveryStatus(ctx context.Context, id int, deliveryStatus string) error {
	if m.UpdateDeliveryStatusFunc != nil {
		return m.UpdateDeliveryStatusFunc(ctx, id, deliveryStatus)
	}
	return nil
}

// mockVerifier implements payment.Verifier for handler tests
type mockVerifier struct {
	VerifyFunc func(ctx context.Context, transactionID string) (*payment.VerificationResult, error)
}

func (m *mockVerifier) Verify(ctx context.Context, transactionID string) (*payment.VerificationResult, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, transactionID)
	}
	return nil, payment.ErrNotConfigured
}

func passthroughMW(c *gin.Context) { c.Next() }

func newOrderRouter(svc service.OrderService, verifier payment.Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewOrderHandler(svc, verifier)
	h.RegisterOrderRoutes(router.Group("/api"), passthroughMW, passthroughMW)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func orderPayload() map[string]interface{} {
	return map[string]interface{}{
		"transaction_id": "TXN_X",
		"amount":         5000,
		"currency":       "RWF",
		"customer_name":  "John Uwimana",
		"items": []map[string]interface{}{
			{"id": 1, "name": "Premium Beef", "price": 2500, "quantity": 2},
		},
	}
}

func TestCreateOrderEndpoint_Success(t *testing.T) {
	svc := &mockOrderService{
		CreateOrderFunc: func(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResult, error) {
			assert.Equal(t, "TXN_X", req.TransactionID)
			assert.Equal(t, 5000.0, req.Amount)
			assert.Equal(t, "RWF", req.Currency)
			return &model.CreateOrderResult{OrderID: 42}, nil
		},
	}
	router := newOrderRouter(svc, &mockVerifier{})

	w := postJSON(t, router, "/api/orders", orderPayload())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Order created successfully", resp["message"])
	assert.Equal(t, float64(42), resp["order_id"])
}

func TestCreateOrderEndpoint_AlreadyExists(t *testing.T) {
	svc := &mockOrderService{
		CreateOrderFunc: func(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResult, error) {
			return &model.CreateOrderResult{OrderID: 42, AlreadyExists: true}, nil
		},
	}
	router := newOrderRouter(svc, &mockVerifier{})

	w := postJSON(t, router, "/api/orders", orderPayload())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Order already exists", resp["message"])
	assert.Equal(t, float64(42), resp["order_id"])
}

func TestCreateOrderEndpoint_MissingFields(t *testing.T) {
	router := newOrderRouter(&mockOrderService{}, &mockVerifier{})

	w := postJSON(t, router, "/api/orders", map[string]interface{}{
		"amount": 5000,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "required")
}

func TestCreateOrderEndpoint_AmountMismatch(t *testing.T) {
	svc := &mockOrderService{
		CreateOrderFunc: func(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResult, error) {
			return nil, &service.AmountMismatchError{VerifiedAmount: 4000, VerifiedCurrency: "RWF"}
		},
	}
	router := newOrderRouter(svc, &mockVerifier{})

	w := postJSON(t, router, "/api/orders", orderPayload())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Amount or currency mismatch", resp["error"])
	assert.Equal(t, float64(4000), resp["verified_amount"])
	assert.Equal(t, "RWF", resp["verified_currency"])
}

func TestCreateOrderEndpoint_PaymentNotSuccessful(t *testing.T) {
	svc := &mockOrderService{
		CreateOrderFunc: func(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResult, error) {
			return nil, &service.PaymentNotSuccessfulError{Status: "failed"}
		},
	}
	router := newOrderRouter(svc, &mockVerifier{})

	w := postJSON(t, router, "/api/orders", orderPayload())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Payment not successful")
}

func TestCreateOrderEndpoint_GatewayFailure(t *testing.T) {
	svc := &mockOrderService{
		CreateOrderFunc: func(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResult, error) {
			return nil, &payment.GatewayError{StatusCode: 404, Message: "no transaction found"}
		},
	}
	router := newOrderRouter(svc, &mockVerifier{})

	w := postJSON(t, router, "/api/orders", orderPayload())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Payment verification failed")
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	verifier := &mockVerifier{
		VerifyFunc: func(ctx context.Context, transactionID string) (*payment.VerificationResult, error) {
			assert.Equal(t, "TXN_X", transactionID)
			return &payment.VerificationResult{Status: payment.StatusSuccessful, Amount: 5000, Currency: "RWF"}, nil
		},
	}
	router := newOrderRouter(&mockOrderService{}, verifier)

	w := postJSON(t, router, "/api/verify-payment", map[string]interface{}{"transaction_id": "TXN_X"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "successful")
}

func TestVerifyPaymentEndpoint_MissingID(t *testing.T) {
	router := newOrderRouter(&mockOrderService{}, &mockVerifier{})

	w := postJSON(t, router, "/api/verify-payment", map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusEndpoint_NotFound(t *testing.T) {
	svc := &mockOrderService{
		UpdateStatusFunc: func(ctx context.Context, id int, status string) error {
			return service.ErrOrderNotFound
		},
	}
	router := newOrderRouter(svc, &mockVerifier{})

	payload, _ := json.Marshal(map[string]string{"status": "completed"})
	req := httptest.NewRequest(http.MethodPut, "/api/orders/99", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateDeliveryStatusEndpoint(t *testing.T) {
	var gotID int
	var gotStatus string
	svc := &mockOrderService{
		UpdateDeliveryStatusFunc: func(ctx context.Context, id int, deliveryStatus string) error {
			gotID = id
			gotStatus = deliveryStatus
			return nil
		},
	}
	router := newOrderRouter(svc, &mockVerifier{})

	payload, _ := json.Marshal(map[string]string{"delivery_status": "delivered"})
	req := httptest.NewRequest(http.MethodPut, "/api/orders/7/delivery", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, gotID)
	assert.Equal(t, "delivered", gotStatus)
}
