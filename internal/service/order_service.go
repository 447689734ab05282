package service

import (
	"context"
	"errors"
	"fmt"

	"butcher_shop/internal/model"
	"butcher_shop/internal/payment"
	"butcher_shop/internal/repository"

	"github.com/jackc/pgx/v5"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidOrderStatus    = errors.New("invalid order status")
	ErrInvalidDeliveryStatus = errors.New("invalid delivery status")
)

// PaymentNotSuccessfulError reports a verified transaction whose gateway
// status is anything other than successful.
type PaymentNotSuccessfulError struct {
	Status string
}

func (e *PaymentNotSuccessfulError) Error() string {
	return fmt.Sprintf("payment not successful: %s", e.Status)
}

// AmountMismatchError reports a claimed amount or currency that differs from
// what the gateway verified.
type AmountMismatchError struct {
	VerifiedAmount   float64
	VerifiedCurrency string
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("amount or currency mismatch (verified %v %s)", e.VerifiedAmount, e.VerifiedCurrency)
}

var orderStatuses = map[string]bool{
	model.OrderStatusPending:    true,
	model.OrderStatusPaid:       true,
	model.OrderStatusProcessing: true,
	model.OrderStatusCompleted:  true,
	model.OrderStatusCancelled:  true,
}

var deliveryStatuses = map[string]bool{
	model.DeliveryInProgress: true,
	model.DeliveryDelivered:  true,
}

// OrderService defines order ingestion and administration operations
type OrderService interface {
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResult, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	UpdateDeliveryStatus(ctx context.Context, id int, deliveryStatus string) error
}

type orderService struct {
	repo     repository.OrderRepository
	verifier payment.Verifier
}

// NewOrderService creates a new OrderService
func NewOrderService(repo repository.OrderRepository, verifier payment.Verifier) OrderService {
	return &orderService{repo: repo, verifier: verifier}
}

// CreateOrder re-verifies the claimed payment with the gateway and persists
// the order exactly once per transaction id. Repeated submissions of the same
// transaction id succeed and return the id of the existing order.
func (s *orderService) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.CreateOrderResult, error) {
	verification, err := s.verifier.Verify(ctx, req.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	if verification.Status != payment.StatusSuccessful {
		return nil, &PaymentNotSuccessfulError{Status: verification.Status}
	}

	// Exact equality: the client's claimed values must match the gateway's
	// verified ones, defending against a tampered checkout payload.
	if verification.Amount != req.Amount || verification.Currency != req.Currency {
		return nil, &AmountMismatchError{
			VerifiedAmount:   verification.Amount,
			VerifiedCurrency: verification.Currency,
		}
	}

	// Fast path: a prior submission already created the order.
	if id, found, err := s.repo.FindIDByTransactionID(ctx, req.TransactionID); err != nil {
		return nil, fmt.Errorf("failed to check existing order: %w", err)
	} else if found {
		return &model.CreateOrderResult{OrderID: id, AlreadyExists: true}, nil
	}

	order := &model.Order{
		TransactionID:   req.TransactionID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Total:           verification.Amount,
		Currency:        verification.Currency,
		Items:           req.Items,
		Status:          model.OrderStatusPaid,
		DeliveryStatus:  model.DeliveryInProgress,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		// A concurrent submission won the insert; the unique constraint on
		// transaction_id makes that the already-exists path, not a failure.
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			id, found, lookupErr := s.repo.FindIDByTransactionID(ctx, req.TransactionID)
			if lookupErr != nil {
				return nil, fmt.Errorf("failed to look up duplicate order: %w", lookupErr)
			}
			if found {
				return &model.CreateOrderResult{OrderID: id, AlreadyExists: true}, nil
			}
		}
		return nil, fmt.Errorf("failed to create order in repo: %w", err)
	}

	return &model.CreateOrderResult{OrderID: order.ID}, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id int, status string) error {
	if !orderStatuses[status] {
		return ErrInvalidOrderStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to update order status in repo: %w", err)
	}
	return nil
}

func (s *orderService) UpdateDeliveryStatus(ctx context.Context, id int, deliveryStatus string) error {
	if !deliveryStatuses[deliveryStatus] {
		return ErrInvalidDeliveryStatus
	}
	if err := s.repo.UpdateDeliveryStatus(ctx, id, deliveryStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to update delivery status in repo: %w", err)
	}
	return nil
}
