// Package domain encodes the storefront entities: catalog products, orders
// placed at checkout and the payment state machine driving them.
package domain

import (
	"slices"
	"strings"
	"time"
)

// OrderStatus represents the current state of an order in its lifecycle
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s names a known lifecycle state.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusPending, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID       int64
	FullName string
	Email    string
	Phone    string
	Address  string
	Status   OrderStatus

	// TransactionRef is minted by checkout before the gateway is called and
	// never changes afterwards. The gateway fields arrive later, from the
	// first reconciliation report that carries them.
	TransactionRef       *string
	GatewayTransactionID *string
	PaymentMethod        *string

	Items []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	// ProductName is a read-time join, not a stored column.
	ProductName string
	Quantity    int
	// Price is the unit price snapshotted from the product at checkout.
	// Later catalog price changes never touch historical orders.
	Price Money
}

func (i OrderItem) LineTotal() Money {
	return i.Price.Mul(i.Quantity)
}

// NewOrder validates the customer contact fields and returns a pending order.
// Fields are trimmed first; any empty field is rejected.
func NewOrder(fullName, email, phone, address string) (*Order, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"full_name", &fullName},
		{"email", &email},
		{"phone", &phone},
		{"address", &address},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return nil, NewMissingRequiredFieldError(f.name)
		}
	}

	return &Order{
		FullName: fullName,
		Email:    email,
		Phone:    phone,
		Address:  address,
		Status:   StatusPending,
	}, nil
}

// Total recomputes the order total from its items. There is no cached
// total anywhere; this derivation is the only source of truth.
func (o *Order) Total() Money {
	var total Money
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (o *Order) MarkPaid() error {
	return o.transition(StatusPaid)
}

func (o *Order) MarkShipped() error {
	return o.transition(StatusShipped)
}

func (o *Order) MarkCompleted() error {
	return o.transition(StatusCompleted)
}

func (o *Order) MarkCancelled() error {
	return o.transition(StatusCancelled)
}

func (o *Order) transition(target OrderStatus) error {
	if err := o.canTransitionTo(target); err != nil {
		return err
	}
	o.Status = target
	return nil
}

// canTransitionTo defines the order lifecycle. Shipping requires a confirmed
// payment, and the terminal states never move again.
func (o *Order) canTransitionTo(target OrderStatus) error {
	switch o.Status {
	case StatusPending:
		return o.allow(target, StatusPaid, StatusCancelled)
	case StatusPaid:
		return o.allow(target, StatusShipped, StatusCancelled)
	case StatusShipped:
		return o.allow(target, StatusCompleted)
	}
	return NewInvalidTransitionError(o.Status, target)
}

func (o *Order) allow(target OrderStatus, allowed ...OrderStatus) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(o.Status, target)
}
