package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/AdaoraUmeh/quickcart/internal/application"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON serializes payload with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// WriteError maps application errors to HTTP responses. The outbound message
// is the coarse service-level one; anything finer stays in the log.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode := application.ToHTTPStatus(err)
	errorCode := application.ToErrorCode(err)

	if statusCode >= http.StatusInternalServerError {
		logger.Error("request failed", "code", errorCode, "error", err)
	} else {
		logger.Info("request rejected", "code", errorCode, "error", err)
	}

	WriteJSON(w, statusCode, ErrorResponse{Error: application.ToMessage(err)})
}
