package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// OrderQuery describes one page of the order list.
type OrderQuery struct {
	Offset  int
	Limit   int
	Search  string
	Status  string
	Payment string
}

// PaymentSummary counts paid vs unpaid orders in a filtered set.
type PaymentSummary struct {
	Paid   int `db:"paid" json:"paid"`
	Unpaid int `db:"unpaid" json:"unpaid"`
}

// ListOrders returns one page of orders, newest first, the total count of
// matching rows, and the paid/unpaid summary of the whole filtered set.
func (s *Store) ListOrders(ctx context.Context, q OrderQuery) ([]models.Order, int, PaymentSummary, error) {
	var conds []string
	var args []interface{}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		conds = append(conds, fmt.Sprintf("(customer_name ILIKE $%d OR CAST(id AS TEXT) LIKE $%d)", len(args), len(args)))
	}
	if q.Status != "" && q.Status != "all" {
		args = append(args, q.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.Payment != "" && q.Payment != "all" {
		args = append(args, q.Payment)
		conds = append(conds, fmt.Sprintf("payment_status = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM orders"+where, args...); err != nil {
		return nil, 0, PaymentSummary{}, fmt.Errorf("failed to count orders: %w", err)
	}

	var summary PaymentSummary
	summaryQuery := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE payment_status = '%s') AS paid,
			COUNT(*) FILTER (WHERE payment_status = '%s') AS unpaid
		FROM orders%s`, models.PaymentStatusPaid, models.PaymentStatusUnpaid, where)
	if err := s.db.GetContext(ctx, &summary, summaryQuery, args...); err != nil {
		return nil, 0, PaymentSummary{}, fmt.Errorf("failed to summarize payments: %w", err)
	}

	args = append(args, q.Limit, q.Offset)
	query := fmt.Sprintf("SELECT * FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var orders []models.Order
	if err := s.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, PaymentSummary{}, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, summary, nil
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderItemsByOrderID retrieves all items for an order
func (s *Store) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1", orderID)
	return items, err
}

// UpdateOrderStatusTx sets an order's status within a transaction and
// returns the order as it was before the write. The row is locked so a
// concurrent board move cannot interleave.
func (s *Store) UpdateOrderStatusTx(ctx context.Context, orderID int64, status string) (*models.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var before models.Order
	err = tx.GetContext(ctx, &before, "SELECT * FROM orders WHERE id = $1 FOR UPDATE", orderID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
		status, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &before, nil
}

// GetOrdersByStatuses retrieves orders in any of the given statuses,
// newest first. Backs the kanban board load.
func (s *Store) GetOrdersByStatuses(ctx context.Context, statuses []string, limit int) ([]models.Order, error) {
	if len(statuses) == 0 {
		return []models.Order{}, nil
	}

	query, args, err := sqlx.In(
		"SELECT * FROM orders WHERE status IN (?) ORDER BY created_at DESC LIMIT ?", statuses, limit)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var orders []models.Order
	err = s.db.SelectContext(ctx, &orders, query, args...)
	return orders, err
}

// GetRecentOrders retrieves the most recent orders for the dashboard.
func (s *Store) GetRecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders ORDER BY created_at DESC LIMIT $1", limit)
	return orders, err
}

// OrderTotal is the slice of an order the revenue aggregation needs.
type OrderTotal struct {
	Amount    decimal.Decimal `db:"amount"`
	CreatedAt time.Time       `db:"created_at"`
}

// GetOrderTotals returns every order's amount and creation time.
func (s *Store) GetOrderTotals(ctx context.Context) ([]OrderTotal, error) {
	var totals []OrderTotal
	err := s.db.SelectContext(ctx, &totals, "SELECT amount, created_at FROM orders")
	return totals, err
}

// CountOrders returns the total number of orders.
func (s *Store) CountOrders(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM orders")
	return n, err
}

// CountProducts returns the total number of products.
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM products")
	return n, err
}
