package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/AdaoraUmeh/quickcart/internal/application/services"
	"github.com/AdaoraUmeh/quickcart/internal/config"
)

type CheckoutService interface {
	Checkout(ctx context.Context, cmd services.CheckoutCommand) (*services.CheckoutResult, error)
}

type ReconcileService interface {
	Reconcile(ctx context.Context, report services.PaymentReport) (*services.ReconcileOutcome, error)
}

type CatalogService interface {
	ListProducts(ctx context.Context, query string, page int) (*services.ProductPage, error)
	GetProduct(ctx context.Context, slug string) (*services.ProductView, error)
	CreateProduct(ctx context.Context, cmd services.ProductCommand) (*services.ProductView, error)
	UpdateProduct(ctx context.Context, id int64, cmd services.ProductCommand) (*services.ProductView, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type OrderAdminService interface {
	ListOrders(ctx context.Context, query, status string, page int) (*services.OrderListing, error)
	GetOrder(ctx context.Context, id int64) (*services.OrderDetail, error)
	ShipOrder(ctx context.Context, id int64) (*services.OrderDetail, error)
}

type Handler struct {
	checkoutService  CheckoutService
	reconcileService ReconcileService
	catalogService   CatalogService
	orderService     OrderAdminService
	adminCfg         config.AdminConfig
	logger           *slog.Logger
}

func NewHandler(
	checkoutService CheckoutService,
	reconcileService ReconcileService,
	catalogService CatalogService,
	orderService OrderAdminService,
	adminCfg config.AdminConfig,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		checkoutService:  checkoutService,
		reconcileService: reconcileService,
		catalogService:   catalogService,
		orderService:     orderService,
		adminCfg:         adminCfg,
		logger:           logger,
	}
}

// RegisterRoutes wires every route onto the mux. Admin routes other than
// login go through adminAuth.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, adminAuth func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /healthz", h.Health)

	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{slug}", h.GetProduct)
	mux.HandleFunc("POST /api/checkout", h.Checkout)

	mux.HandleFunc("GET /payment/callback", h.PaymentCallback)
	mux.HandleFunc("POST /payment/webhook", h.PaymentWebhook)

	mux.HandleFunc("POST /admin/login", h.AdminLogin)
	mux.Handle("POST /admin/products", adminAuth(http.HandlerFunc(h.CreateProduct)))
	mux.Handle("PUT /admin/products/{id}", adminAuth(http.HandlerFunc(h.UpdateProduct)))
	mux.Handle("DELETE /admin/products/{id}", adminAuth(http.HandlerFunc(h.DeleteProduct)))
	mux.Handle("GET /admin/orders", adminAuth(http.HandlerFunc(h.ListOrders)))
	mux.Handle("GET /admin/orders/{id}", adminAuth(http.HandlerFunc(h.GetOrder)))
	mux.Handle("POST /admin/orders/{id}/ship", adminAuth(http.HandlerFunc(h.ShipOrder)))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
