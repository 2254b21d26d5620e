package board

import (
	"testing"
	"time"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCards() []Card {
	return []Card{
		{OrderID: 1234, Customer: "Alice Johnson", Amount: decimal.NewFromInt(120), Column: ColumnPending},
		{OrderID: 1235, Customer: "Bob Smith", Amount: decimal.NewFromInt(85), Column: ColumnPending},
		{OrderID: 1230, Customer: "Charlie Davis", Amount: decimal.NewFromInt(299), Column: ColumnProcessing},
		{OrderID: 1201, Customer: "Ethan Hunt", Amount: decimal.NewFromInt(550), Column: ColumnCompleted},
	}
}

func TestReassignMovesExactlyOneCard(t *testing.T) {
	cards := testCards()
	moved := Reassign(cards, 1234, ColumnProcessing)

	require.Len(t, moved, len(cards))
	for i, card := range moved {
		if card.OrderID == 1234 {
			assert.Equal(t, ColumnProcessing, card.Column)
			continue
		}
		assert.Equal(t, cards[i], card, "card %d must be untouched", card.OrderID)
	}
}

func TestReassignSameColumnIsIdempotent(t *testing.T) {
	cards := testCards()
	moved := Reassign(cards, 1235, ColumnPending)
	assert.Equal(t, cards, moved)
}

func TestReassignUnknownCardIsNoop(t *testing.T) {
	cards := testCards()
	moved := Reassign(cards, 9999, ColumnCompleted)
	assert.Equal(t, cards, moved)
}

func TestReassignDoesNotMutateInput(t *testing.T) {
	cards := testCards()
	_ = Reassign(cards, 1234, ColumnCompleted)
	assert.Equal(t, ColumnPending, cards[0].Column)
}

func TestPartitionCoversEveryCardOnce(t *testing.T) {
	cards := testCards()
	parts := Partition(cards)

	require.Len(t, parts, 3)
	total := 0
	seen := map[int64]bool{}
	for col, bucket := range parts {
		for _, card := range bucket {
			assert.Equal(t, col, card.Column)
			assert.False(t, seen[card.OrderID], "card %d appears twice", card.OrderID)
			seen[card.OrderID] = true
			total++
		}
	}
	assert.Equal(t, len(cards), total)
}

func TestColumnStatusMapping(t *testing.T) {
	assert.Equal(t, models.OrderStatusPending, StatusFor(ColumnPending))
	assert.Equal(t, models.OrderStatusProcessing, StatusFor(ColumnProcessing))
	assert.Equal(t, models.OrderStatusDelivered, StatusFor(ColumnCompleted))

	col, ok := ColumnFor(models.OrderStatusShipped)
	assert.True(t, ok)
	assert.Equal(t, ColumnProcessing, col)

	_, ok = ColumnFor(models.OrderStatusCancelled)
	assert.False(t, ok)
}

func TestCardFor(t *testing.T) {
	placed := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	order := models.Order{
		ID:           42,
		CustomerName: "Diana Prince",
		Amount:       decimal.NewFromInt(45),
		Status:       models.OrderStatusDelivered,
		CreatedAt:    placed,
	}

	card, ok := CardFor(order)
	require.True(t, ok)
	assert.Equal(t, ColumnCompleted, card.Column)
	assert.Equal(t, placed, card.PlacedAt)

	order.Status = models.OrderStatusCancelled
	_, ok = CardFor(order)
	assert.False(t, ok)
}

func TestColumnsAreFixedAndOrdered(t *testing.T) {
	cols := Columns()
	require.Len(t, cols, 3)
	assert.Equal(t, ColumnPending, cols[0].ID)
	assert.Equal(t, "New Orders", cols[0].Title)
	assert.Equal(t, ColumnProcessing, cols[1].ID)
	assert.Equal(t, ColumnCompleted, cols[2].ID)
}
