package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"butcher_shop/internal/model"

	"github.com/jackc/pgx/v5"
)

// OrderRepository defines operations for order data
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindIDByTransactionID(ctx context.Context, transactionID string) (int, bool, error)
	FindAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	UpdateDeliveryStatus(ctx context.Context, id int, deliveryStatus string) error
}

type orderRepository struct {
	db DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order with its item snapshot. A unique-constraint
// violation on transaction_id is reported as ErrDuplicateTransaction so the
// caller can take the idempotent path.
func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	items := o.Items
	if items == nil {
		items = []model.OrderItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	sql := `INSERT INTO orders (
	            transaction_id, customer_name, customer_email, customer_phone,
	            customer_address, total, currency, items, status, delivery_status
	        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	        RETURNING id, created_at`
	err = r.db.QueryRow(ctx, sql,
		o.TransactionID, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.CustomerAddress, o.Total, o.Currency, itemsJSON, o.Status, o.DeliveryStatus,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// FindIDByTransactionID returns the id of the order with the given
// transaction id, if one exists.
func (r *orderRepository) FindIDByTransactionID(ctx context.Context, transactionID string) (int, bool, error) {
	var id int
	err := r.db.QueryRow(ctx, `SELECT id FROM orders WHERE transaction_id = $1`, transactionID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to find order by transaction ID: %w", err)
	}
	return id, true, nil
}

// FindAll retrieves all orders, newest first, with their item snapshots
// decoded. A snapshot that fails to decode is surfaced as an error rather than
// silently dropped.
func (r *orderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	sql := `SELECT id, transaction_id, customer_name, customer_email, customer_phone,
	               customer_address, total, currency, items, status, delivery_status, created_at
	        FROM orders ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var itemsJSON []byte
		if err := rows.Scan(
			&o.ID, &o.TransactionID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
			&o.CustomerAddress, &o.Total, &o.Currency, &itemsJSON, &o.Status, &o.DeliveryStatus, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("failed to decode items for order %d: %w", o.ID, err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	return orders, nil
}

// UpdateStatus changes the payment status of an order
func (r *orderRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateDeliveryStatus changes the delivery status of an order
func (r *orderRepository) UpdateDeliveryStatus(ctx context.Context, id int, deliveryStatus string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE orders SET delivery_status = $1 WHERE id = $2`, deliveryStatus, id)
	if err != nil {
		return fmt.Errorf("failed to update delivery status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
