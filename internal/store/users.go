package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"

	"github.com/shopspring/decimal"
)

// GetUserByID retrieves a user by their identity-provider id.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserQuery describes one page of the customer list.
type UserQuery struct {
	Offset int
	Limit  int
	Search string
}

// ListUsers returns one page of users, newest first, plus the total count
// matching the search.
func (s *Store) ListUsers(ctx context.Context, q UserQuery) ([]models.User, int, error) {
	var conds []string
	var args []interface{}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		conds = append(conds, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)",
			len(args), len(args), len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	args = append(args, q.Limit, q.Offset)
	query := fmt.Sprintf("SELECT * FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var users []models.User
	if err := s.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// CountUsers returns the total number of users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM users")
	return n, err
}

// ApplyOrderAggregate folds one delivered order into the customer's
// lifetime aggregates.
func (s *Store) ApplyOrderAggregate(ctx context.Context, userID string, amount decimal.Decimal) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET total_orders = total_orders + 1, total_spent = total_spent + $1 WHERE id = $2",
		amount, userID)
	return err
}
