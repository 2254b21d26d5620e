package service

import (
	"context"
	"fmt"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/board"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/store"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/util"

	"go.uber.org/zap"
)

// boardLoadLimit caps how many orders ride on the board at once.
const boardLoadLimit = 100

// BoardService loads the kanban board from live orders and persists card
// moves as real status transitions.
type BoardService struct {
	store  *store.Store
	orders *OrderService
	logger *zap.Logger
}

// NewBoardService creates a new board service
func NewBoardService(store *store.Store, orders *OrderService) *BoardService {
	return &BoardService{
		store:  store,
		orders: orders,
		logger: util.GetLogger(),
	}
}

// ColumnView is one rendered column: its identity plus the cards in it.
type ColumnView struct {
	board.ColumnInfo
	Cards []board.Card `json:"cards"`
}

// BoardView is the whole rendered board.
type BoardView struct {
	Columns []ColumnView `json:"columns"`
}

// Load builds the board from the most recent orders still in a board
// status. Cancelled orders never appear.
func (s *BoardService) Load(ctx context.Context) (*BoardView, error) {
	ctx, span := util.StartSpan(ctx, "BoardService.Load")
	defer span.End()

	statuses := []string{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	}
	orders, err := s.store.GetOrdersByStatuses(ctx, statuses, boardLoadLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load board orders: %w", err)
	}

	cards := make([]board.Card, 0, len(orders))
	for _, o := range orders {
		if card, ok := board.CardFor(o); ok {
			cards = append(cards, card)
		}
	}

	parts := board.Partition(cards)
	view := &BoardView{Columns: make([]ColumnView, 0, 3)}
	for _, col := range board.Columns() {
		view.Columns = append(view.Columns, ColumnView{
			ColumnInfo: col,
			Cards:      parts[col.ID],
		})
	}
	return view, nil
}

// Move persists a card drop: the target column's status is written through
// the order service. On failure nothing moves and the caller is expected
// to snap its optimistic UI state back.
func (s *BoardService) Move(ctx context.Context, orderID int64, target board.Column) (*board.Card, error) {
	ctx, span := util.StartSpan(ctx, "BoardService.Move")
	defer span.End()

	if !board.ValidColumn(target) {
		return nil, fmt.Errorf("unknown board column %q", target)
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, board.StatusFor(target))
	if err != nil {
		return nil, err
	}

	util.BoardMovesTotal.Inc()
	s.logger.Info("Board card moved",
		zap.Int64("order_id", orderID),
		zap.String("column", string(target)))

	card, _ := board.CardFor(*order)
	return &card, nil
}
