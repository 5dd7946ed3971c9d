package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/application/services"
	"github.com/AdaoraUmeh/quickcart/internal/interfaces/rest"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, application.NewValidationError(errors.New("invalid request body")), h.logger)
		return
	}

	if err := validate.Struct(req); err != nil {
		rest.WriteError(w, application.NewValidationError(err), h.logger)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.adminCfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminCfg.Password)) == 1
	if !userOK || !passOK {
		h.logger.Warn("failed admin login attempt", "username", req.Username)
		rest.WriteJSON(w, http.StatusUnauthorized, rest.ErrorResponse{Error: "Invalid credentials"})
		return
	}

	expiresAt := time.Now().Add(h.adminCfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   req.Username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.adminCfg.JWTSecret))
	if err != nil {
		rest.WriteError(w, application.NewInternalError(err), h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, loginResponse{
		Token:     signed,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

type productRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
	Image       string `json:"image"`
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	cmd, ok := h.decodeProductCommand(w, r)
	if !ok {
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	cmd, ok := h.decodeProductCommand(w, r)
	if !ok {
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), id, cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeProductCommand(w http.ResponseWriter, r *http.Request) (services.ProductCommand, bool) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, application.NewValidationError(errors.New("invalid request body")), h.logger)
		return services.ProductCommand{}, false
	}

	if err := validate.Struct(req); err != nil {
		rest.WriteError(w, application.NewValidationError(err), h.logger)
		return services.ProductCommand{}, false
	}

	return services.ProductCommand{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	}, true
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	page := parsePage(params.Get("page"))

	listing, err := h.orderService.ListOrders(r.Context(), params.Get("q"), params.Get("status"), page)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, listing)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) ShipOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	order, err := h.orderService.ShipOrder(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, order)
}
