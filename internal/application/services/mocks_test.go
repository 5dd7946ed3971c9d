package services_test

import (
	"context"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/domain"
)

// MockCatalogRepository
type MockCatalogRepository struct {
	products map[int64]*domain.Product

	FindByIDFn   func(ctx context.Context, id int64) (*domain.Product, error)
	FindBySlugFn func(ctx context.Context, slug string) (*domain.Product, error)
	ListFn       func(ctx context.Context, filter application.ProductFilter) ([]*domain.Product, error)
	CountFn      func(ctx context.Context, query string) (int, error)
	CreateFn     func(ctx context.Context, product *domain.Product) error
	UpdateFn     func(ctx context.Context, product *domain.Product) error
	DeleteFn     func(ctx context.Context, id int64) error
}

func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{products: make(map[int64]*domain.Product)}
}

func (m *MockCatalogRepository) AddProduct(p *domain.Product) {
	m.products[p.ID] = p
}

func (m *MockCatalogRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, domain.NewProductNotFoundError(id)
}

func (m *MockCatalogRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if m.FindBySlugFn != nil {
		return m.FindBySlugFn(ctx, slug)
	}
	for _, p := range m.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, domain.NewProductNotFoundError(0)
}

func (m *MockCatalogRepository) List(ctx context.Context, filter application.ProductFilter) ([]*domain.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	var out []*domain.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *MockCatalogRepository) Count(ctx context.Context, query string) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, query)
	}
	return len(m.products), nil
}

func (m *MockCatalogRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, product)
	}
	product.ID = int64(len(m.products) + 1)
	m.products[product.ID] = product
	return nil
}

func (m *MockCatalogRepository) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, product)
	}
	if _, ok := m.products[product.ID]; !ok {
		return domain.NewProductNotFoundError(product.ID)
	}
	m.products[product.ID] = product
	return nil
}

func (m *MockCatalogRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.products[id]; !ok {
		return domain.NewProductNotFoundError(id)
	}
	delete(m.products, id)
	return nil
}

// MockOrderRepository
type MockOrderRepository struct {
	orders map[int64]*domain.Order
	nextID int64

	CreateWithItemsFn          func(ctx context.Context, order *domain.Order, mintRef func(orderID int64) string) error
	DeleteFn                   func(ctx context.Context, id int64) error
	FindByIDFn                 func(ctx context.Context, id int64) (*domain.Order, error)
	RecordGatewayTransactionFn func(ctx context.Context, orderID int64, gatewayTxID, paymentMethod string) error
	UpdateStatusFromPendingFn  func(ctx context.Context, orderID int64, to domain.OrderStatus) (bool, error)
	MarkShippedFn              func(ctx context.Context, orderID int64) (bool, error)
	ListFn                     func(ctx context.Context, filter application.OrderFilter) ([]application.OrderSummary, error)
	CountFn                    func(ctx context.Context, filter application.OrderFilter) (int, error)
	CountByStatusFn            func(ctx context.Context) (map[domain.OrderStatus]int, error)

	DeleteCalls int
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[int64]*domain.Order)}
}

func (m *MockOrderRepository) AddOrder(o *domain.Order) {
	m.orders[o.ID] = o
}

func (m *MockOrderRepository) CreateWithItems(ctx context.Context, order *domain.Order, mintRef func(orderID int64) string) error {
	if m.CreateWithItemsFn != nil {
		return m.CreateWithItemsFn(ctx, order, mintRef)
	}
	m.nextID++
	order.ID = m.nextID
	ref := mintRef(order.ID)
	order.TransactionRef = &ref
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	m.DeleteCalls++
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.orders[id]; !ok {
		return domain.NewOrderNotFoundError(id)
	}
	delete(m.orders, id)
	return nil
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, domain.NewOrderNotFoundError(id)
}

func (m *MockOrderRepository) RecordGatewayTransaction(ctx context.Context, orderID int64, gatewayTxID, paymentMethod string) error {
	if m.RecordGatewayTransactionFn != nil {
		return m.RecordGatewayTransactionFn(ctx, orderID, gatewayTxID, paymentMethod)
	}
	o, ok := m.orders[orderID]
	if !ok {
		return domain.NewOrderNotFoundError(orderID)
	}
	if o.GatewayTransactionID == nil && gatewayTxID != "" {
		o.GatewayTransactionID = &gatewayTxID
	}
	if o.PaymentMethod == nil && paymentMethod != "" {
		o.PaymentMethod = &paymentMethod
	}
	return nil
}

func (m *MockOrderRepository) UpdateStatusFromPending(ctx context.Context, orderID int64, to domain.OrderStatus) (bool, error) {
	if m.UpdateStatusFromPendingFn != nil {
		return m.UpdateStatusFromPendingFn(ctx, orderID, to)
	}
	o, ok := m.orders[orderID]
	if !ok {
		return false, nil
	}
	if o.Status != domain.StatusPending {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (m *MockOrderRepository) MarkShipped(ctx context.Context, orderID int64) (bool, error) {
	if m.MarkShippedFn != nil {
		return m.MarkShippedFn(ctx, orderID)
	}
	o, ok := m.orders[orderID]
	if !ok {
		return false, nil
	}
	if o.Status != domain.StatusPaid {
		return false, nil
	}
	o.Status = domain.StatusShipped
	return true, nil
}

func (m *MockOrderRepository) List(ctx context.Context, filter application.OrderFilter) ([]application.OrderSummary, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	var out []application.OrderSummary
	for _, o := range m.orders {
		out = append(out, application.OrderSummary{Order: o, Total: o.Total()})
	}
	return out, nil
}

func (m *MockOrderRepository) Count(ctx context.Context, filter application.OrderFilter) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}
	return len(m.orders), nil
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	counts := make(map[domain.OrderStatus]int)
	for _, o := range m.orders {
		counts[o.Status]++
	}
	return counts, nil
}

// MockPaymentClient
type MockPaymentClient struct {
	CreatePaymentLinkFn func(ctx context.Context, req application.PaymentLinkRequest) (string, error)
	VerifyTransactionFn func(ctx context.Context, transactionID string) (bool, error)

	CreateCalls []application.PaymentLinkRequest
	VerifyCalls []string
}

func (m *MockPaymentClient) CreatePaymentLink(ctx context.Context, req application.PaymentLinkRequest) (string, error) {
	m.CreateCalls = append(m.CreateCalls, req)
	if m.CreatePaymentLinkFn != nil {
		return m.CreatePaymentLinkFn(ctx, req)
	}
	return "https://checkout.example.com/pay/" + req.Reference, nil
}

func (m *MockPaymentClient) VerifyTransaction(ctx context.Context, transactionID string) (bool, error) {
	m.VerifyCalls = append(m.VerifyCalls, transactionID)
	if m.VerifyTransactionFn != nil {
		return m.VerifyTransactionFn(ctx, transactionID)
	}
	return true, nil
}

// MockNotificationSink
type MockNotificationSink struct {
	SendFn func(ctx context.Context, title, message string) error

	Sent []string
}

func (m *MockNotificationSink) Send(ctx context.Context, title, message string) error {
	m.Sent = append(m.Sent, title)
	if m.SendFn != nil {
		return m.SendFn(ctx, title, message)
	}
	return nil
}
