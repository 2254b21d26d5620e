// Package board holds the order-fulfillment kanban board: a fixed set of
// status columns and a pure reassignment reducer over the card set.
package board

import (
	"time"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"

	"github.com/shopspring/decimal"
)

// Column identifies one kanban column.
type Column string

const (
	ColumnPending    Column = "pending"
	ColumnProcessing Column = "processing"
	ColumnCompleted  Column = "completed"
)

// ColumnInfo pairs a column id with its display label.
type ColumnInfo struct {
	ID    Column `json:"id"`
	Title string `json:"title"`
}

// Columns returns the fixed, ordered column set.
func Columns() []ColumnInfo {
	return []ColumnInfo{
		{ID: ColumnPending, Title: "New Orders"},
		{ID: ColumnProcessing, Title: "Processing"},
		{ID: ColumnCompleted, Title: "Completed"},
	}
}

// ValidColumn reports whether c is a known column.
func ValidColumn(c Column) bool {
	switch c {
	case ColumnPending, ColumnProcessing, ColumnCompleted:
		return true
	}
	return false
}

// Card is one order summary on the board. A card sits in exactly one
// column at a time.
type Card struct {
	OrderID  int64           `json:"order_id"`
	Customer string          `json:"customer"`
	Amount   decimal.Decimal `json:"amount"`
	Column   Column          `json:"column"`
	PlacedAt time.Time       `json:"placed_at"`
}

// Reassign moves one card to a column, returning a new card set in which
// exactly that card's column changed and every other card is untouched.
// Dropping a card on its current column, or naming an unknown card, is a
// no-op. Any transition is permitted.
func Reassign(cards []Card, orderID int64, target Column) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := range out {
		if out[i].OrderID == orderID {
			out[i].Column = target
		}
	}
	return out
}

// Partition buckets cards by column. Every card lands in exactly one
// bucket; column order follows Columns().
func Partition(cards []Card) map[Column][]Card {
	parts := make(map[Column][]Card, 3)
	for _, c := range Columns() {
		parts[c.ID] = []Card{}
	}
	for _, card := range cards {
		parts[card.Column] = append(parts[card.Column], card)
	}
	return parts
}

// StatusFor maps a column onto the persisted order status.
func StatusFor(c Column) string {
	if c == ColumnCompleted {
		return models.OrderStatusDelivered
	}
	return string(c)
}

// ColumnFor maps a persisted order status onto its board column. Shipped
// orders ride in the processing column; cancelled orders stay off the
// board entirely.
func ColumnFor(status string) (Column, bool) {
	switch status {
	case models.OrderStatusPending:
		return ColumnPending, true
	case models.OrderStatusProcessing, models.OrderStatusShipped:
		return ColumnProcessing, true
	case models.OrderStatusDelivered:
		return ColumnCompleted, true
	}
	return "", false
}

// CardFor builds the board card for an order.
func CardFor(o models.Order) (Card, bool) {
	col, ok := ColumnFor(o.Status)
	if !ok {
		return Card{}, false
	}
	return Card{
		OrderID:  o.ID,
		Customer: o.CustomerName,
		Amount:   o.Amount,
		Column:   col,
		PlacedAt: o.CreatedAt,
	}, true
}
