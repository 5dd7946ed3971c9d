package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/domain"
	"github.com/jackc/pgx/v5"
)

// OrderRepository implements application.OrderRepository on Postgres.
// The zero-db variant bound to a transaction is produced by the
// TransactionCoordinator.
type OrderRepository struct {
	db *DB
	q  Executor
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db, q: db.Pool}
}

var _ application.OrderRepository = (*OrderRepository)(nil)

const orderColumns = `id, full_name, email, phone, address, status,
	       transaction_ref, gateway_transaction_id, payment_method,
	       created_at, updated_at`

// CreateWithItems persists the order head, mints the transaction reference
// from the assigned ID, and inserts every item in a single transaction.
// Any failure mid-loop rolls the whole thing back; no partial order can
// ever be observed.
func (r *OrderRepository) CreateWithItems(
	ctx context.Context,
	order *domain.Order,
	mintRef func(orderID int64) string,
) error {
	if r.db == nil {
		return r.createWithItems(ctx, order, mintRef)
	}

	tc := NewTransactionCoordinator(r.db)
	return tc.WithTransaction(ctx, func(ctx context.Context, txRepo *OrderRepository) error {
		return txRepo.createWithItems(ctx, order, mintRef)
	})
}

func (r *OrderRepository) createWithItems(
	ctx context.Context,
	order *domain.Order,
	mintRef func(orderID int64) string,
) error {
	insertOrder := `
		INSERT INTO orders (full_name, email, phone, address, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.q.QueryRow(ctx, insertOrder,
		order.FullName,
		order.Email,
		order.Phone,
		order.Address,
		string(order.Status),
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	ref := mintRef(order.ID)
	_, err = r.q.Exec(ctx, `UPDATE orders SET transaction_ref = $1 WHERE id = $2`, ref, order.ID)
	if err != nil {
		return fmt.Errorf("failed to set transaction reference: %w", err)
	}
	order.TransactionRef = &ref

	insertItem := `
		INSERT INTO order_items (order_id, product_id, quantity, price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err := r.q.QueryRow(ctx, insertItem,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.Price.Cents,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	return nil
}

// Delete removes the order; order_items go with it via ON DELETE CASCADE.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewOrderNotFoundError(id)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var m OrderModel
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.FullName, &m.Email, &m.Phone, &m.Address, &m.Status,
		&m.TransactionRef, &m.GatewayTransactionID, &m.PaymentMethod,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewOrderNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	order := toDomainOrder(m)
	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *OrderRepository) findItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, COALESCE(p.name, ''), i.quantity, i.price_cents
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.id
	`

	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderItem, error) {
		var m OrderItemModel
		err := row.Scan(&m.ID, &m.OrderID, &m.ProductID, &m.ProductName, &m.Quantity, &m.PriceCents)
		return toDomainOrderItem(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan order items: %w", err)
	}
	return items, nil
}

// RecordGatewayTransaction fills the gateway columns only where they are
// still NULL; an earlier report's values are never overwritten.
func (r *OrderRepository) RecordGatewayTransaction(ctx context.Context, orderID int64, gatewayTxID, paymentMethod string) error {
	query := `
		UPDATE orders
		SET gateway_transaction_id = COALESCE(gateway_transaction_id, NULLIF($2, '')),
		    payment_method = COALESCE(payment_method, NULLIF($3, '')),
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query, orderID, gatewayTxID, paymentMethod)
	if err != nil {
		return fmt.Errorf("failed to record gateway transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewOrderNotFoundError(orderID)
	}
	return nil
}

// UpdateStatusFromPending is the compare-and-swap at the heart of
// reconciliation: the WHERE clause makes the pending-only guard atomic
// against the racing callback and webhook, so exactly one report wins.
func (r *OrderRepository) UpdateStatusFromPending(ctx context.Context, orderID int64, to domain.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
	`

	tag, err := r.q.Exec(ctx, query, orderID, string(to), string(domain.StatusPending))
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkShipped moves paid -> shipped with the same CAS shape.
func (r *OrderRepository) MarkShipped(ctx context.Context, orderID int64) (bool, error) {
	query := `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
	`

	tag, err := r.q.Exec(ctx, query, orderID, string(domain.StatusShipped), string(domain.StatusPaid))
	if err != nil {
		return false, fmt.Errorf("failed to mark order shipped: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OrderRepository) List(ctx context.Context, filter application.OrderFilter) ([]application.OrderSummary, error) {
	query := `
		SELECT o.id, o.full_name, o.email, o.phone, o.address, o.status,
		       o.transaction_ref, o.gateway_transaction_id, o.payment_method,
		       o.created_at, o.updated_at,
		       COALESCE((SELECT SUM(i.quantity * i.price_cents) FROM order_items i WHERE i.order_id = o.id), 0) AS total_cents
		FROM orders o
		WHERE ($1 = '' OR o.status = $1)
		  AND ($2 = '' OR o.full_name ILIKE '%' || $2 || '%' OR o.email ILIKE '%' || $2 || '%' OR o.phone ILIKE '%' || $2 || '%')
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.q.Query(ctx, query, string(filter.Status), filter.Query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (application.OrderSummary, error) {
		var m OrderModel
		var totalCents int64
		err := row.Scan(
			&m.ID, &m.FullName, &m.Email, &m.Phone, &m.Address, &m.Status,
			&m.TransactionRef, &m.GatewayTransactionID, &m.PaymentMethod,
			&m.CreatedAt, &m.UpdatedAt,
			&totalCents,
		)
		return application.OrderSummary{
			Order: toDomainOrder(m),
			Total: domain.Money{Cents: totalCents},
		}, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	return summaries, nil
}

func (r *OrderRepository) Count(ctx context.Context, filter application.OrderFilter) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM orders o
		WHERE ($1 = '' OR o.status = $1)
		  AND ($2 = '' OR o.full_name ILIKE '%' || $2 || '%' OR o.email ILIKE '%' || $2 || '%' OR o.phone ILIKE '%' || $2 || '%')
	`

	var count int
	if err := r.q.QueryRow(ctx, query, string(filter.Status), filter.Query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.OrderStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[domain.OrderStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	return counts, nil
}
