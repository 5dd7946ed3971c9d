package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/application/services"
	"github.com/AdaoraUmeh/quickcart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCheckoutFixture() (*services.CheckoutService, *MockCatalogRepository, *MockOrderRepository, *MockPaymentClient) {
	catalog := NewMockCatalogRepository()
	orders := NewMockOrderRepository()
	payments := &MockPaymentClient{}
	svc := services.NewCheckoutService(catalog, orders, payments, services.CheckoutConfig{
		Currency:    "NGN",
		RedirectURL: "http://localhost:8080/payment/callback",
	}, testLogger())
	return svc, catalog, orders, payments
}

func defaultCheckoutCommand() services.CheckoutCommand {
	return services.CheckoutCommand{
		FullName: "Ada Obi",
		Email:    "ada@example.com",
		Phone:    "08012345678",
		Address:  "12 Marina Rd, Lagos",
		Items: []services.CheckoutItem{
			{ProductID: 1, Quantity: 3},
			{ProductID: 2, Quantity: 1},
		},
	}
}

func TestCheckout_Success(t *testing.T) {
	svc, catalog, orders, payments := newCheckoutFixture()
	catalog.AddProduct(&domain.Product{ID: 1, Name: "Wireless Mouse", Slug: "wireless-mouse", Price: domain.Money{Cents: 1999}})
	catalog.AddProduct(&domain.Product{ID: 2, Name: "Mouse Pad", Slug: "mouse-pad", Price: domain.Money{Cents: 500}})

	result, err := svc.Checkout(context.Background(), defaultCheckoutCommand())

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.OrderID)
	assert.Equal(t, "64.97", result.Total)
	assert.NotEmpty(t, result.PaymentLink)
	assert.Equal(t, "Ada Obi", result.Customer.Name)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "Wireless Mouse", result.Items[0].Name)
	assert.Equal(t, 3, result.Items[0].Quantity)
	assert.Equal(t, "19.99", result.Items[0].Price)
	assert.Equal(t, "59.97", result.Items[0].Total)

	// Order persisted as pending with snapshot prices and a minted reference.
	order, err := orders.FindByID(context.Background(), result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	require.NotNil(t, order.TransactionRef)
	parsedID, err := domain.ParseTransactionRef(*order.TransactionRef)
	require.NoError(t, err)
	assert.Equal(t, order.ID, parsedID)

	require.Len(t, payments.CreateCalls, 1)
	req := payments.CreateCalls[0]
	assert.Equal(t, *order.TransactionRef, req.Reference)
	assert.Equal(t, int64(6497), req.Amount.Cents)
	assert.Equal(t, "NGN", req.Currency)
}

func TestCheckout_PriceSnapshotSurvivesCatalogChange(t *testing.T) {
	svc, catalog, orders, _ := newCheckoutFixture()
	product := &domain.Product{ID: 1, Name: "Wireless Mouse", Price: domain.Money{Cents: 1999}}
	catalog.AddProduct(product)

	cmd := defaultCheckoutCommand()
	cmd.Items = cmd.Items[:1]

	result, err := svc.Checkout(context.Background(), cmd)
	require.NoError(t, err)

	// Raise the catalog price afterwards; the stored order keeps the old one.
	product.Price = domain.Money{Cents: 9999}

	order, err := orders.FindByID(context.Background(), result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(1999), order.Items[0].Price.Cents)
	assert.Equal(t, "59.97", order.Total().Amount())
}

func TestCheckout_ValidationFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*services.CheckoutCommand)
	}{
		{"empty full name", func(c *services.CheckoutCommand) { c.FullName = "   " }},
		{"empty email", func(c *services.CheckoutCommand) { c.Email = "" }},
		{"empty phone", func(c *services.CheckoutCommand) { c.Phone = " " }},
		{"empty address", func(c *services.CheckoutCommand) { c.Address = "" }},
		{"empty cart", func(c *services.CheckoutCommand) { c.Items = nil }},
		{"zero quantity", func(c *services.CheckoutCommand) { c.Items[0].Quantity = 0 }},
		{"negative quantity", func(c *services.CheckoutCommand) { c.Items[0].Quantity = -2 }},
		{"unknown product", func(c *services.CheckoutCommand) { c.Items[0].ProductID = 999 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, catalog, orders, payments := newCheckoutFixture()
			catalog.AddProduct(&domain.Product{ID: 1, Name: "Wireless Mouse", Price: domain.Money{Cents: 1999}})
			catalog.AddProduct(&domain.Product{ID: 2, Name: "Mouse Pad", Price: domain.Money{Cents: 500}})

			cmd := defaultCheckoutCommand()
			tc.mutate(&cmd)

			_, err := svc.Checkout(context.Background(), cmd)

			require.Error(t, err)
			assert.Equal(t, application.ErrCodeValidation, application.ToErrorCode(err))

			// Nothing persisted, nothing sent to the gateway.
			count, _ := orders.Count(context.Background(), application.OrderFilter{})
			assert.Zero(t, count)
			assert.Empty(t, payments.CreateCalls)
		})
	}
}

func TestCheckout_GatewayFailureRollsBackOrder(t *testing.T) {
	svc, catalog, orders, payments := newCheckoutFixture()
	catalog.AddProduct(&domain.Product{ID: 1, Name: "Wireless Mouse", Price: domain.Money{Cents: 1999}})
	catalog.AddProduct(&domain.Product{ID: 2, Name: "Mouse Pad", Price: domain.Money{Cents: 500}})

	payments.CreatePaymentLinkFn = func(ctx context.Context, req application.PaymentLinkRequest) (string, error) {
		return "", errors.New("gateway unreachable")
	}

	_, err := svc.Checkout(context.Background(), defaultCheckoutCommand())

	require.Error(t, err)
	assert.Equal(t, application.ErrCodeGateway, application.ToErrorCode(err))
	assert.Equal(t, "Failed to create payment link", application.ToMessage(err))

	// The pending order created before the gateway call is compensated away.
	assert.Equal(t, 1, orders.DeleteCalls)
	count, _ := orders.Count(context.Background(), application.OrderFilter{})
	assert.Zero(t, count)
}

func TestCheckout_PersistenceFailure(t *testing.T) {
	svc, catalog, orders, payments := newCheckoutFixture()
	catalog.AddProduct(&domain.Product{ID: 1, Name: "Wireless Mouse", Price: domain.Money{Cents: 1999}})
	catalog.AddProduct(&domain.Product{ID: 2, Name: "Mouse Pad", Price: domain.Money{Cents: 500}})

	orders.CreateWithItemsFn = func(ctx context.Context, order *domain.Order, mintRef func(int64) string) error {
		return errors.New("connection reset")
	}

	_, err := svc.Checkout(context.Background(), defaultCheckoutCommand())

	require.Error(t, err)
	assert.Equal(t, application.ErrCodeInternal, application.ToErrorCode(err))
	assert.Empty(t, payments.CreateCalls)
}
