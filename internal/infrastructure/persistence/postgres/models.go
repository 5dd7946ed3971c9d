package postgres

import (
	"time"
)

// ProductModel mirrors the products table. Prices are stored as integer
// minor units; the decimal rendering happens in the domain.
type ProductModel struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	PriceCents  int64
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderModel mirrors the orders table. TransactionRef is set once during
// checkout and protected by a unique index; the gateway columns stay NULL
// until the first reconciliation report carrying them.
type OrderModel struct {
	ID                   int64
	FullName             string
	Email                string
	Phone                string
	Address              string
	Status               string
	TransactionRef       *string
	GatewayTransactionID *string
	PaymentMethod        *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OrderItemModel mirrors the order_items table joined with the product name.
type OrderItemModel struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int32
	PriceCents  int64
}
