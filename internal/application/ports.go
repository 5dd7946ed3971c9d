package application

import (
	"context"

	"github.com/AdaoraUmeh/quickcart/internal/domain"
)

// PaymentLinkRequest carries everything the gateway needs to mint a hosted
// checkout link for one order.
type PaymentLinkRequest struct {
	Reference     string
	Amount        domain.Money
	Currency      string
	RedirectURL   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	OrderID       int64
}

// PaymentClient is the port for the external payment gateway.
type PaymentClient interface {
	// CreatePaymentLink returns the hosted-checkout redirect link. It must
	// never retry on its own; an ambiguous failure is surfaced so checkout
	// can roll the order back.
	CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (string, error)
	// VerifyTransaction asks the gateway for the authoritative outcome of a
	// transaction. Callers treat any error as "not paid".
	VerifyTransaction(ctx context.Context, transactionID string) (bool, error)
}

// NotificationSink is a best-effort outbound alert channel. Callers log and
// swallow its errors; it never affects business state.
type NotificationSink interface {
	Send(ctx context.Context, title, message string) error
}

// VisitorRegistry remembers which visitors have already been announced.
type VisitorRegistry interface {
	// FirstVisit marks the visitor and reports whether this was the first
	// sighting within the dedupe window.
	FirstVisit(ctx context.Context, visitorID string) (bool, error)
}

type ProductFilter struct {
	// Query is a case-insensitive substring match on the product name.
	Query  string
	Limit  int
	Offset int
}

// CatalogRepository is the port for the product store.
type CatalogRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Count(ctx context.Context, query string) (int, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

type OrderFilter struct {
	// Query matches contact fields (name, email, phone) as a substring.
	Query string
	// Status narrows to one lifecycle state when set.
	Status domain.OrderStatus
	Limit  int
	Offset int
}

// OrderSummary is a listing row: the order head plus its derived total.
type OrderSummary struct {
	Order *domain.Order
	Total domain.Money
}

// OrderRepository is the port for the order store.
type OrderRepository interface {
	// CreateWithItems persists the order and all of its items atomically.
	// mintRef is called with the assigned order ID inside the same
	// transaction to produce the transaction reference; on any failure
	// nothing is persisted.
	CreateWithItems(ctx context.Context, order *domain.Order, mintRef func(orderID int64) string) error
	// Delete removes the order and, via cascade, its items. Used as the
	// compensation step when the gateway call after creation fails.
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	// RecordGatewayTransaction stores the gateway transaction ID and payment
	// method as auxiliary data, only where not already set.
	RecordGatewayTransaction(ctx context.Context, orderID int64, gatewayTxID, paymentMethod string) error
	// UpdateStatusFromPending performs the compare-and-swap transition
	// "pending -> to" and reports whether this call was the one that moved
	// the order. Any other current status leaves the row untouched.
	UpdateStatusFromPending(ctx context.Context, orderID int64, to domain.OrderStatus) (bool, error)
	// MarkShipped moves paid -> shipped, and only that edge.
	MarkShipped(ctx context.Context, orderID int64) (bool, error)
	List(ctx context.Context, filter OrderFilter) ([]OrderSummary, error)
	Count(ctx context.Context, filter OrderFilter) (int, error)
	CountByStatus(ctx context.Context) (map[domain.OrderStatus]int, error)
}
