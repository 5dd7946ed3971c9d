package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/application/services"
	"github.com/AdaoraUmeh/quickcart/internal/domain"
	"github.com/AdaoraUmeh/quickcart/internal/interfaces/rest"
)

type callbackView struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	OrderID int64  `json:"order_id,omitempty"`
}

// PaymentCallback handles the browser redirect from the gateway after the
// shopper leaves the hosted payment page. It shares the reconciliation rule
// with the webhook, so arriving second makes it a no-op.
func (h *Handler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	txRef := params.Get("tx_ref")
	if txRef == "" {
		rest.WriteJSON(w, http.StatusBadRequest, callbackView{
			Status:  "error",
			Message: "Missing transaction reference",
		})
		return
	}

	report := services.PaymentReport{
		TxRef:                txRef,
		Status:               params.Get("status"),
		GatewayTransactionID: params.Get("transaction_id"),
		PaymentMethod:        params.Get("payment_type"),
	}

	outcome, err := h.reconcileService.Reconcile(r.Context(), report)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	if outcome.Order.Status == domain.StatusPaid {
		rest.WriteJSON(w, http.StatusOK, callbackView{
			Status:  "success",
			Message: "Payment confirmed. Thank you for your order!",
			OrderID: outcome.Order.ID,
		})
		return
	}

	rest.WriteJSON(w, http.StatusOK, callbackView{
		Status:  "error",
		Message: "Payment was not completed.",
		OrderID: outcome.Order.ID,
	})
}

type webhookEnvelope struct {
	Event string `json:"event"`
	Data  struct {
		ID          int64  `json:"id"`
		TxRef       string `json:"tx_ref"`
		Status      string `json:"status"`
		PaymentType string `json:"payment_type"`
	} `json:"data"`
}

type webhookResponse struct {
	Status string `json:"status"`
}

// PaymentWebhook ingests the gateway's server-to-server notification. It
// answers success-shaped even for unknown or malformed references so the
// gateway does not keep retrying deliveries we can never apply.
func (h *Handler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	var envelope webhookEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		h.logger.Warn("webhook with undecodable body", "error", err)
		rest.WriteJSON(w, http.StatusBadRequest, webhookResponse{Status: "error"})
		return
	}

	if envelope.Event != "charge.completed" {
		h.logger.Info("ignoring webhook event", "event", envelope.Event)
		rest.WriteJSON(w, http.StatusOK, webhookResponse{Status: "success"})
		return
	}

	report := services.PaymentReport{
		TxRef:         envelope.Data.TxRef,
		Status:        envelope.Data.Status,
		PaymentMethod: envelope.Data.PaymentType,
	}
	if envelope.Data.ID != 0 {
		report.GatewayTransactionID = strconv.FormatInt(envelope.Data.ID, 10)
	}

	_, err := h.reconcileService.Reconcile(r.Context(), report)
	if err != nil {
		code := application.ToErrorCode(err)
		if code == application.ErrCodeValidation || code == application.ErrCodeNotFound {
			h.logger.Warn("webhook for unknown or malformed reference",
				"tx_ref", envelope.Data.TxRef,
				"error", err,
			)
			rest.WriteJSON(w, http.StatusOK, webhookResponse{Status: "success"})
			return
		}

		h.logger.Error("webhook reconciliation failed", "tx_ref", envelope.Data.TxRef, "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, webhookResponse{Status: "error"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, webhookResponse{Status: "success"})
}
