package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AdaoraUmeh/quickcart/internal/application"
)

const visitorCookie = "qc_visitor"

// VisitorNotifier alerts the notification sink the first time a visitor is
// seen. Identity rides a cookie; dedupe lives in the registry so restarts
// and multiple processes do not re-alert. Any failure here only logs, the
// request always proceeds.
func VisitorNotifier(
	registry application.VisitorRegistry,
	sink application.NotificationSink,
	logger *slog.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			visitorID := ""
			if cookie, err := r.Cookie(visitorCookie); err == nil {
				visitorID = cookie.Value
			}
			if visitorID == "" {
				visitorID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     visitorCookie,
					Value:    visitorID,
					Path:     "/",
					MaxAge:   int((365 * 24 * time.Hour).Seconds()),
					HttpOnly: true,
				})
			}

			first, err := registry.FirstVisit(r.Context(), visitorID)
			if err != nil {
				logger.Warn("visitor registry check failed", "error", err)
			} else if first {
				message := fmt.Sprintf("Visitor: %s\nPath: %s\nAgent: %s",
					visitorID, r.URL.Path, r.UserAgent())
				if err := sink.Send(r.Context(), "New Visitor!", message); err != nil {
					logger.Warn("visitor notification failed", "error", err)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
