package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"butcher_shop/internal/model"
	"butcher_shop/internal/payment"
	"butcher_shop/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles payment verification and order requests
type OrderHandler struct {
	service  service.OrderService
	verifier payment.Verifier
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(s service.OrderService, verifier payment.Verifier) *OrderHandler {
	return &OrderHandler{service: s, verifier: verifier}
}

// VerifyPayment proxies a verification call to the gateway, letting the client
// confirm a transaction before submitting the order.
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	var req struct {
		TransactionID string `json:"transaction_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transaction_id is required"})
		return
	}

	result, err := h.verifier.Verify(c.Request.Context(), req.TransactionID)
	if err != nil {
		log.Printf("Error verifying payment %s: %v", req.TransactionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateOrder ingests a claimed payment outcome: it re-verifies the
// transaction server-side and persists the order idempotently.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transaction_id, amount, and currency are required"})
		return
	}

	result, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		var notSuccessful *service.PaymentNotSuccessfulError
		var mismatch *service.AmountMismatchError
		var gatewayErr *payment.GatewayError
		switch {
		case errors.As(err, &notSuccessful):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment not successful", "details": notSuccessful.Status})
		case errors.As(err, &mismatch):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":             "Amount or currency mismatch",
				"verified_amount":   mismatch.VerifiedAmount,
				"verified_currency": mismatch.VerifiedCurrency,
			})
		case errors.As(err, &gatewayErr), errors.Is(err, payment.ErrNotConfigured):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment verification failed", "details": err.Error()})
		default:
			log.Printf("Error creating order: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	if result.AlreadyExists {
		c.JSON(http.StatusOK, gin.H{"message": "Order already exists", "order_id": result.OrderID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order created successfully", "order_id": result.OrderID})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, service.ErrInvalidOrderStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Error updating order status: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

func (h *OrderHandler) UpdateDeliveryStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req struct {
		DeliveryStatus string `json:"delivery_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_status is required"})
		return
	}

	if err := h.service.UpdateDeliveryStatus(c.Request.Context(), id, req.DeliveryStatus); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, service.ErrInvalidDeliveryStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Error updating delivery status: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery status"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery status updated successfully"})
}

// RegisterOrderRoutes registers payment and order routes. Order creation and
// payment verification are public (invoked by the checkout flow); listing
// requires authentication, status updates additionally require admin.
func (h *OrderHandler) RegisterOrderRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rg.POST("/verify-payment", h.VerifyPayment)
	rg.POST("/orders", h.CreateOrder)

	authed := rg.Group("/orders")
	authed.Use(authMW)
	{
		authed.GET("", h.ListOrders)
		authed.PUT("/:id/delivery", h.UpdateDeliveryStatus)
		authed.PUT("/:id", adminMW, h.UpdateStatus)
	}
}
