package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/domain"
)

// OrderPageSize matches the back-office table: 10 orders per page.
const OrderPageSize = 10

// OrderAdminService serves the back-office order views and the single
// status action the back office owns: shipping a paid order.
type OrderAdminService struct {
	orders application.OrderRepository
	logger *slog.Logger
}

func NewOrderAdminService(orders application.OrderRepository, logger *slog.Logger) *OrderAdminService {
	return &OrderAdminService{orders: orders, logger: logger}
}

type OrderRow struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
	Total    string `json:"total"`
	Created  string `json:"created_at"`
}

type OrderStats struct {
	Total     int `json:"total_orders"`
	Pending   int `json:"pending_orders"`
	Paid      int `json:"paid_orders"`
	Shipped   int `json:"shipped_orders"`
	Completed int `json:"completed_orders"`
	Cancelled int `json:"cancelled_orders"`
}

type OrderListing struct {
	Orders  []OrderRow `json:"orders"`
	HasNext bool       `json:"has_next"`
	Stats   OrderStats `json:"stats"`
}

type OrderItemView struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Total     string `json:"total"`
}

type OrderDetail struct {
	ID                   int64           `json:"id"`
	FullName             string          `json:"full_name"`
	Email                string          `json:"email"`
	Phone                string          `json:"phone"`
	Address              string          `json:"address"`
	Status               string          `json:"status"`
	TransactionRef       string          `json:"transaction_ref,omitempty"`
	GatewayTransactionID string          `json:"gateway_transaction_id,omitempty"`
	PaymentMethod        string          `json:"payment_method,omitempty"`
	Items                []OrderItemView `json:"items"`
	Total                string          `json:"total"`
	Created              string          `json:"created_at"`
}

// ListOrders returns one page of orders filtered by status and/or a contact
// substring, together with the per-status counters the dashboard shows.
func (s *OrderAdminService) ListOrders(ctx context.Context, query, status string, page int) (*OrderListing, error) {
	if page < 1 {
		page = 1
	}
	if status != "" && !domain.ValidOrderStatus(status) {
		return nil, application.NewValidationError(fmt.Errorf("unknown order status %q", status))
	}

	filter := application.OrderFilter{
		Query:  query,
		Status: domain.OrderStatus(status),
		Limit:  OrderPageSize,
		Offset: (page - 1) * OrderPageSize,
	}

	summaries, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	rows := make([]OrderRow, 0, len(summaries))
	for _, summary := range summaries {
		o := summary.Order
		rows = append(rows, OrderRow{
			ID:       o.ID,
			FullName: o.FullName,
			Email:    o.Email,
			Phone:    o.Phone,
			Status:   string(o.Status),
			Total:    summary.Total.Amount(),
			Created:  o.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	stats := OrderStats{
		Pending:   counts[domain.StatusPending],
		Paid:      counts[domain.StatusPaid],
		Shipped:   counts[domain.StatusShipped],
		Completed: counts[domain.StatusCompleted],
		Cancelled: counts[domain.StatusCancelled],
	}
	stats.Total = stats.Pending + stats.Paid + stats.Shipped + stats.Completed + stats.Cancelled

	return &OrderListing{
		Orders:  rows,
		HasNext: page*OrderPageSize < total,
		Stats:   stats,
	}, nil
}

func (s *OrderAdminService) GetOrder(ctx context.Context, id int64) (*OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeOrderNotFound) {
			return nil, application.NewNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}
	detail := toOrderDetail(order)
	return detail, nil
}

// ShipOrder moves a paid order to shipped. Any other current status is a
// conflict: shipping before payment confirmation is forbidden, and terminal
// states never move.
func (s *OrderAdminService) ShipOrder(ctx context.Context, id int64) (*OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeOrderNotFound) {
			return nil, application.NewNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}

	shipped, err := s.orders.MarkShipped(ctx, id)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	if !shipped {
		return nil, application.NewConflictError(
			domain.NewInvalidTransitionError(order.Status, domain.StatusShipped))
	}

	order.Status = domain.StatusShipped
	s.logger.Info("order shipped", "order_id", id)
	return toOrderDetail(order), nil
}

func toOrderDetail(order *domain.Order) *OrderDetail {
	items := make([]OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemView{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			Price:     item.Price.Amount(),
			Total:     item.LineTotal().Amount(),
		})
	}

	detail := &OrderDetail{
		ID:       order.ID,
		FullName: order.FullName,
		Email:    order.Email,
		Phone:    order.Phone,
		Address:  order.Address,
		Status:   string(order.Status),
		Items:    items,
		Total:    order.Total().Amount(),
		Created:  order.CreatedAt.Format("2006-01-02 15:04"),
	}
	if order.TransactionRef != nil {
		detail.TransactionRef = *order.TransactionRef
	}
	if order.GatewayTransactionID != nil {
		detail.GatewayTransactionID = *order.GatewayTransactionID
	}
	if order.PaymentMethod != nil {
		detail.PaymentMethod = *order.PaymentMethod
	}
	return detail
}
