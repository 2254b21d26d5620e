package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product. List/array columns arrive from the
// store already normalized; derived fields are filled in by the catalog layer.
type Product struct {
	ID            int64           `db:"id" json:"id"`
	Slug          string          `db:"slug" json:"slug"`
	Name          string          `db:"name" json:"name"`
	Brand         string          `db:"brand" json:"brand"`
	Description   string          `db:"description" json:"description"`
	SKU           string          `db:"sku" json:"sku"`
	Category      string          `db:"category" json:"category"`
	Status        string          `db:"status" json:"status"`
	Price         decimal.Decimal `db:"price" json:"price"`
	Discount      int             `db:"discount" json:"discount"`
	DiscountPrice decimal.Decimal `db:"discount_price" json:"discount_price"`
	Stock         int             `db:"stock" json:"stock"`
	CareInfo      string          `db:"care_instructions" json:"care_instructions"`
	Sizes         []string        `json:"sizes"`
	Materials     []string        `json:"materials"`
	Colors        []Color         `json:"colors"`
	Images        []string        `json:"images"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`

	// Derived, never persisted.
	FinalPrice  decimal.Decimal `json:"final_price"`
	StockBucket string          `json:"stock_bucket"`
}

// Color is one product colorway with its representative image.
type Color struct {
	Name  string `json:"colorName"`
	Image string `json:"image"`
}

// Product statuses
const (
	ProductStatusActive   = "active"
	ProductStatusDraft    = "draft"
	ProductStatusArchived = "archived"
)

// Stock buckets derived from the stock count
const (
	StockBucketOut = "out of stock"
	StockBucketLow = "low stock"
	StockBucketIn  = "in stock"
)

// Order represents a customer order as shown on the admin side.
type Order struct {
	ID            int64           `db:"id" json:"id"`
	CustomerID    string          `db:"customer_id" json:"customer_id"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Status        string          `db:"status" json:"status"`
	PaymentStatus string          `db:"payment_status" json:"payment_status"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// OrderItem represents one line item of an order.
type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   int64           `db:"order_id" json:"order_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Name      string          `db:"name" json:"name"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
}

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// User mirrors an identity-provider account plus storefront aggregates.
// Aggregates are maintained by the order events worker, not recomputed here.
type User struct {
	ID          string          `db:"id" json:"id"`
	FirstName   string          `db:"first_name" json:"first_name"`
	LastName    string          `db:"last_name" json:"last_name"`
	Email       string          `db:"email" json:"email"`
	Role        string          `db:"role" json:"role"`
	TotalOrders int             `db:"total_orders" json:"total_orders"`
	TotalSpent  decimal.Decimal `db:"total_spent" json:"total_spent"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ProcessedEvent for consumer idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
