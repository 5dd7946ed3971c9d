package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/domain"
)

// PaymentReport is one inbound claim about a payment outcome, whether it
// came in on the browser redirect or the server webhook. Reports are not
// trusted: a claimed success is re-verified against the gateway.
type PaymentReport struct {
	TxRef                string
	Status               string
	GatewayTransactionID string
	PaymentMethod        string
}

// ReconcileOutcome describes what a report did to the order.
type ReconcileOutcome struct {
	Order *domain.Order
	// Transitioned is true only for the report that actually moved the
	// order out of pending. Duplicates and late arrivals see false.
	Transitioned bool
}

// ReconcileService applies gateway outcome reports to orders. Both ingress
// points share this one transition rule, so whichever report lands first
// wins and the other becomes a no-op.
type ReconcileService struct {
	orders   application.OrderRepository
	payments application.PaymentClient
	notifier application.NotificationSink
	logger   *slog.Logger
}

func NewReconcileService(
	orders application.OrderRepository,
	payments application.PaymentClient,
	notifier application.NotificationSink,
	logger *slog.Logger,
) *ReconcileService {
	return &ReconcileService{
		orders:   orders,
		payments: payments,
		notifier: notifier,
		logger:   logger,
	}
}

// gatewayReportsSuccess covers the status spellings the gateway uses across
// its two channels: "completed" on the redirect, "successful" in webhooks.
func gatewayReportsSuccess(status string) bool {
	return status == "completed" || status == "successful"
}

// Reconcile parses the reference, records auxiliary gateway data, verifies
// claimed successes fail-closed, and applies the single legal transition
// pending->paid or pending->cancelled via a compare-and-swap update. Orders
// already paid, shipped, completed or cancelled are never overwritten.
func (s *ReconcileService) Reconcile(ctx context.Context, report PaymentReport) (*ReconcileOutcome, error) {
	orderID, err := domain.ParseTransactionRef(report.TxRef)
	if err != nil {
		return nil, application.NewValidationError(err)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeOrderNotFound) {
			return nil, application.NewNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}

	if report.GatewayTransactionID != "" || report.PaymentMethod != "" {
		if err := s.orders.RecordGatewayTransaction(ctx, order.ID, report.GatewayTransactionID, report.PaymentMethod); err != nil {
			// Auxiliary data only; the status decision below still stands.
			s.logger.Error("failed to record gateway transaction data",
				"order_id", order.ID,
				"error", err,
			)
		}
	}

	target := domain.StatusCancelled
	if gatewayReportsSuccess(report.Status) && report.GatewayTransactionID != "" {
		verified, err := s.payments.VerifyTransaction(ctx, report.GatewayTransactionID)
		if err != nil {
			s.logger.Error("transaction verification failed",
				"order_id", order.ID,
				"transaction_id", report.GatewayTransactionID,
				"error", err,
			)
		}
		if verified {
			target = domain.StatusPaid
		}
	}

	transitioned, err := s.orders.UpdateStatusFromPending(ctx, order.ID, target)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	if transitioned {
		order.Status = target
		s.logger.Info("order reconciled",
			"order_id", order.ID,
			"status", target,
			"tx_ref", report.TxRef,
		)
		if target == domain.StatusPaid {
			s.notifyPaid(ctx, order)
		}
	} else {
		s.logger.Info("reconciliation report ignored, order not pending",
			"order_id", order.ID,
			"status", order.Status,
			"reported", report.Status,
		)
	}

	return &ReconcileOutcome{Order: order, Transitioned: transitioned}, nil
}

// notifyPaid fires the paid alert exactly once, from the report that won the
// compare-and-swap. Sink failures are logged and swallowed.
func (s *ReconcileService) notifyPaid(ctx context.Context, order *domain.Order) {
	message := fmt.Sprintf("Order Paid!\nOrder ID: %d\nCustomer: %s\nTotal: %s",
		order.ID, order.FullName, order.Total().Amount())

	if err := s.notifier.Send(ctx, "Order Paid", message); err != nil {
		s.logger.Error("order paid notification failed",
			"order_id", order.ID,
			"error", err,
		)
	}
}
