package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeProductCreated     = "PRODUCT_CREATED"
	EventTypeProductUpdated     = "PRODUCT_UPDATED"
	EventTypeProductDeleted     = "PRODUCT_DELETED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductCreatedEvent published after a product row is written
type ProductCreatedEvent struct {
	BaseEvent
	ProductID int64  `json:"product_id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
}

// ProductUpdatedEvent published after a product row is rewritten
type ProductUpdatedEvent struct {
	BaseEvent
	ProductID int64  `json:"product_id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
}

// ProductDeletedEvent published after a product row is removed
type ProductDeletedEvent struct {
	BaseEvent
	ProductID int64 `json:"product_id"`
}

// OrderStatusChangedEvent published when an order moves between statuses,
// whether from the kanban board or the order detail page.
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID    int64           `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	OldStatus  string          `json:"old_status"`
	NewStatus  string          `json:"new_status"`
}
