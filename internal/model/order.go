package model

import "time"

// Payment statuses stored on an order. The gateway path only ever writes
// StatusPaid; the others exist for admin status updates.
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

const (
	DeliveryInProgress = "in_progress"
	DeliveryDelivered  = "delivered"
)

// OrderItem is a point-in-time snapshot of a purchased product. It is frozen
// at order creation; later catalog edits never change it.
type OrderItem struct {
	ProductID int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// Order represents a completed purchase
type Order struct {
	ID              int         `json:"id"`
	TransactionID   string      `json:"transaction_id"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerAddress string      `json:"customer_address"`
	Total           float64     `json:"total"`
	Currency        string      `json:"currency"`
	Items           []OrderItem `json:"items"`
	Status          string      `json:"status"`
	DeliveryStatus  string      `json:"delivery_status"`
	CreatedAt       time.Time   `json:"created_at"`
}

// CreateOrderRequest is the payload submitted by the client after checkout
type CreateOrderRequest struct {
	TransactionID   string      `json:"transaction_id" binding:"required"`
	Amount          float64     `json:"amount" binding:"required,gt=0"`
	Currency        string      `json:"currency" binding:"required"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerAddress string      `json:"customer_address"`
	Items           []OrderItem `json:"items"`
}

// CreateOrderResult is returned by the order ingestion flow
type CreateOrderResult struct {
	OrderID       int
	AlreadyExists bool
}
