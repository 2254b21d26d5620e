package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/broker"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/cache"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/catalog"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/store"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order tracking: the filtered list, the detail view,
// and status transitions (including the kanban board's writes).
type OrderService struct {
	store    *store.Store
	cache    *cache.Cache
	events   *broker.EventPublisher
	logger   *zap.Logger
	pageSize int
}

// NewOrderService creates a new order service
func NewOrderService(
	store *store.Store,
	cache *cache.Cache,
	events *broker.EventPublisher,
	pageSize int,
) *OrderService {
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}
	return &OrderService{
		store:    store,
		cache:    cache,
		events:   events,
		logger:   util.GetLogger(),
		pageSize: pageSize,
	}
}

// OrderListParams is the logical order-list request.
type OrderListParams struct {
	Page    int
	Search  string
	Status  string
	Payment string
}

// OrderListResult is one page of orders plus the paid/unpaid summary of
// the whole filtered set.
type OrderListResult struct {
	Orders         []models.Order       `json:"orders"`
	TotalCount     int                  `json:"total_count"`
	TotalPages     int                  `json:"total_pages"`
	Page           int                  `json:"page"`
	PaymentSummary store.PaymentSummary `json:"payment_summary"`
}

// List serves one page of orders, newest first.
func (s *OrderService) List(ctx context.Context, p OrderListParams) (*OrderListResult, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.List")
	defer span.End()

	if p.Page < 1 {
		p.Page = 1
	}
	if p.Status == "" {
		p.Status = "all"
	}
	if p.Payment == "" {
		p.Payment = "all"
	}

	key := cache.OrderListKey(p.Page, s.pageSize, p.Search, p.Status, p.Payment)
	var result OrderListResult
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key, &result); err == nil && hit {
			util.CacheHitsTotal.WithLabelValues("orders").Inc()
			return &result, nil
		}
		util.CacheMissesTotal.WithLabelValues("orders").Inc()
	}

	offset, limit := catalog.Window(p.Page, s.pageSize)
	orders, total, summary, err := s.store.ListOrders(ctx, store.OrderQuery{
		Offset:  offset,
		Limit:   limit,
		Search:  p.Search,
		Status:  p.Status,
		Payment: p.Payment,
	})
	if err != nil {
		return nil, err
	}

	result = OrderListResult{
		Orders:         orders,
		TotalCount:     total,
		TotalPages:     catalog.TotalPages(total, limit),
		Page:           p.Page,
		PaymentSummary: summary,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, cache.ListFreshness); err != nil {
			s.logger.Warn("Failed to cache order list", zap.Error(err))
		}
	}
	return &result, nil
}

// Get retrieves an order with its line items.
func (s *OrderService) Get(ctx context.Context, orderID int64) (*models.Order, []models.OrderItem, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.store.GetOrderItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	return order, items, nil
}

// UpdateStatus transitions an order to a new status and publishes the
// change. The write goes through the store before anything else happens,
// so a failed transition mutates nothing the caller can observe.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateStatus")
	defer span.End()

	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("unknown order status %q", status)
	}

	before, err := s.store.UpdateOrderStatusTx(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	after := *before
	after.Status = status

	if before.Status == status {
		// Same-column drop on the board; nothing changed.
		return &after, nil
	}

	util.OrderStatusUpdatesTotal.WithLabelValues(status).Inc()
	s.logger.Info("Order status changed",
		zap.Int64("order_id", orderID),
		zap.String("from", before.Status),
		zap.String("to", status))

	if s.events != nil {
		event := &models.OrderStatusChangedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderStatusChanged,
				Timestamp: time.Now(),
			},
			OrderID:    orderID,
			CustomerID: before.CustomerID,
			Amount:     before.Amount,
			OldStatus:  before.Status,
			NewStatus:  status,
		}
		if err := s.events.PublishOrderStatusChanged(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
		}
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, cache.OrderKeyPrefix+"*"); err != nil {
			s.logger.Warn("Failed to invalidate order cache", zap.Error(err))
		}
		if err := s.cache.Invalidate(ctx, cache.DashboardStatsKey); err != nil {
			s.logger.Warn("Failed to invalidate dashboard stats", zap.Error(err))
		}
	}

	return &after, nil
}
