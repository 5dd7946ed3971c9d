package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AdaoraUmeh/quickcart/internal/interfaces/rest"
)

// AdminAuth verifies the Bearer token on back-office routes. Tokens are
// HS256, issued by the login handler with the same secret.
func AdminAuth(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				rest.WriteJSON(w, http.StatusUnauthorized, rest.ErrorResponse{Error: "Missing bearer token"})
				return
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("rejected admin token", "path", r.URL.Path, "error", err)
				rest.WriteJSON(w, http.StatusUnauthorized, rest.ErrorResponse{Error: "Invalid or expired token"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
