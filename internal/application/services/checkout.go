package services

import (
	"context"
	"log/slog"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/domain"
)

// CheckoutConfig carries the gateway-facing settings checkout needs.
type CheckoutConfig struct {
	Currency    string
	RedirectURL string
}

// CheckoutService turns a validated cart into one pending order plus a
// hosted payment link, or nothing at all.
type CheckoutService struct {
	catalog  application.CatalogRepository
	orders   application.OrderRepository
	payments application.PaymentClient
	cfg      CheckoutConfig
	logger   *slog.Logger
}

func NewCheckoutService(
	catalog application.CatalogRepository,
	orders application.OrderRepository,
	payments application.PaymentClient,
	cfg CheckoutConfig,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		catalog:  catalog,
		orders:   orders,
		payments: payments,
		cfg:      cfg,
		logger:   logger,
	}
}

type CheckoutCommand struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	Items    []CheckoutItem
}

type CheckoutItem struct {
	ProductID int64
	Quantity  int
}

type CheckoutLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
}

type CheckoutCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CheckoutResult struct {
	OrderID     int64            `json:"order_id"`
	Items       []CheckoutLine   `json:"items"`
	Total       string           `json:"total"`
	PaymentLink string           `json:"payment_link"`
	Customer    CheckoutCustomer `json:"customer"`
}

// Checkout validates the cart, atomically persists the order with price
// snapshots, mints the transaction reference and asks the gateway for a
// redirect link. Every failure path leaves zero rows behind: validation
// fails before anything is written, and a gateway failure deletes the
// just-created order.
func (s *CheckoutService) Checkout(ctx context.Context, cmd CheckoutCommand) (*CheckoutResult, error) {
	order, err := domain.NewOrder(cmd.FullName, cmd.Email, cmd.Phone, cmd.Address)
	if err != nil {
		return nil, application.NewValidationError(err)
	}
	if len(cmd.Items) == 0 {
		return nil, application.NewValidationError(domain.NewEmptyCartError())
	}

	lines := make([]CheckoutLine, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		if item.Quantity <= 0 {
			return nil, application.NewValidationError(domain.NewInvalidQuantityError(item.Quantity))
		}

		product, err := s.catalog.FindByID(ctx, item.ProductID)
		if err != nil {
			if domain.IsErrorCode(err, domain.ErrCodeProductNotFound) {
				return nil, application.NewValidationError(err)
			}
			return nil, application.NewInternalError(err)
		}

		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price,
		})
		lines = append(lines, CheckoutLine{
			Name:     product.Name,
			Quantity: item.Quantity,
			Price:    product.Price.Amount(),
			Total:    product.Price.Mul(item.Quantity).Amount(),
		})
	}

	if err := s.orders.CreateWithItems(ctx, order, domain.NewTransactionRef); err != nil {
		return nil, application.NewInternalError(err)
	}

	total := order.Total()
	link, err := s.payments.CreatePaymentLink(ctx, application.PaymentLinkRequest{
		Reference:     *order.TransactionRef,
		Amount:        total,
		Currency:      s.cfg.Currency,
		RedirectURL:   s.cfg.RedirectURL,
		CustomerName:  order.FullName,
		CustomerEmail: order.Email,
		CustomerPhone: order.Phone,
		OrderID:       order.ID,
	})
	if err != nil {
		s.logger.Error("payment link creation failed, rolling back order",
			"order_id", order.ID,
			"error", err,
		)
		if delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			s.logger.Error("failed to roll back order after gateway failure",
				"order_id", order.ID,
				"error", delErr,
			)
		}
		return nil, application.NewGatewayError(err)
	}

	s.logger.Info("checkout completed",
		"order_id", order.ID,
		"total", total.Amount(),
		"items", len(order.Items),
	)

	return &CheckoutResult{
		OrderID:     order.ID,
		Items:       lines,
		Total:       total.Amount(),
		PaymentLink: link,
		Customer: CheckoutCustomer{
			Name:    order.FullName,
			Email:   order.Email,
			Phone:   order.Phone,
			Address: order.Address,
		},
	}, nil
}
