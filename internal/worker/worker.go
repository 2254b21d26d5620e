package worker

import (
	"context"
	"fmt"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/broker"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/store"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/util"

	"go.uber.org/zap"
)

// AggregatesWorker folds delivered orders into the customers' lifetime
// total_orders/total_spent columns, driven by OrderStatusChanged events.
type AggregatesWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
	logger       *zap.Logger
}

// NewAggregatesWorker creates a new aggregates worker
func NewAggregatesWorker(consumer *broker.Consumer, st *store.Store) *AggregatesWorker {
	w := &AggregatesWorker{
		consumer: consumer,
		store:    st,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderStatusChanged(w.handleStatusChanged)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *AggregatesWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting aggregates worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *AggregatesWorker) Stop() error {
	w.logger.Info("Stopping aggregates worker")
	return w.consumer.Close()
}

// handleStatusChanged applies one status-change event. Only the transition
// into delivered touches aggregates; the processed_events table keeps
// redelivered messages from counting twice.
func (w *AggregatesWorker) handleStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	if event.NewStatus != models.OrderStatusDelivered || event.OldStatus == models.OrderStatusDelivered {
		return nil
	}
	if event.CustomerID == "" {
		return nil
	}

	processed, err := w.store.IsEventProcessed(ctx, event.EventID)
	if err != nil {
		return fmt.Errorf("failed to check event %s: %w", event.EventID, err)
	}
	if processed {
		return nil
	}

	if err := w.store.ApplyOrderAggregate(ctx, event.CustomerID, event.Amount); err != nil {
		return fmt.Errorf("failed to apply aggregate for order %d: %w", event.OrderID, err)
	}

	if err := w.store.MarkEventProcessed(ctx, event.EventID, event.EventType); err != nil {
		return fmt.Errorf("failed to mark event %s processed: %w", event.EventID, err)
	}

	util.CustomerAggregatesApplied.Inc()
	w.logger.Info("Customer aggregates updated",
		zap.String("customer_id", event.CustomerID),
		zap.Int64("order_id", event.OrderID))
	return nil
}
