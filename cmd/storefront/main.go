package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdaoraUmeh/quickcart/internal/application/services"
	"github.com/AdaoraUmeh/quickcart/internal/config"
	"github.com/AdaoraUmeh/quickcart/internal/infrastructure/cache"
	"github.com/AdaoraUmeh/quickcart/internal/infrastructure/flutterwave"
	"github.com/AdaoraUmeh/quickcart/internal/infrastructure/notify"
	"github.com/AdaoraUmeh/quickcart/internal/infrastructure/persistence/postgres"
	"github.com/AdaoraUmeh/quickcart/internal/interfaces/rest/handlers"
	"github.com/AdaoraUmeh/quickcart/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting storefront service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	catalogRepo := postgres.NewCatalogRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	paymentClient := flutterwave.NewClient(cfg.Flutterwave)
	notifyClient := notify.NewClient(cfg.Notify)

	checkoutService := services.NewCheckoutService(
		catalogRepo,
		orderRepo,
		paymentClient,
		services.CheckoutConfig{
			Currency:    cfg.Flutterwave.Currency,
			RedirectURL: cfg.Flutterwave.RedirectURL,
		},
		logger,
	)
	reconcileService := services.NewReconcileService(orderRepo, paymentClient, notifyClient, logger)
	catalogService := services.NewCatalogService(catalogRepo, logger)
	orderService := services.NewOrderAdminService(orderRepo, logger)

	h := handlers.NewHandler(
		checkoutService,
		reconcileService,
		catalogService,
		orderService,
		cfg.Admin,
		logger,
	)

	mux := http.NewServeMux()
	adminAuth := middleware.AdminAuth(cfg.Admin.JWTSecret, logger)
	h.RegisterRoutes(mux, adminAuth)

	handler := http.Handler(mux)

	if cfg.Redis.Enabled {
		visitorRegistry, err := cache.NewVisitorRegistry(ctx, cfg.Redis)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer visitorRegistry.Close()

		handler = middleware.VisitorNotifier(visitorRegistry, notifyClient, logger)(handler)
	}

	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
