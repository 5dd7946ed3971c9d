package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/application/services"
	"github.com/AdaoraUmeh/quickcart/internal/interfaces/rest"
)

var validate = validator.New()

type checkoutRequest struct {
	FullName string                `json:"full_name" validate:"required"`
	Email    string                `json:"email" validate:"required,email"`
	Phone    string                `json:"phone" validate:"required"`
	Address  string                `json:"address" validate:"required"`
	Items    []checkoutRequestItem `json:"items" validate:"required,min=1,dive"`
}

type checkoutRequestItem struct {
	ID       int64 `json:"id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, application.NewValidationError(errors.New("invalid request body")), h.logger)
		return
	}

	if err := validate.Struct(req); err != nil {
		rest.WriteError(w, application.NewValidationError(err), h.logger)
		return
	}

	cmd := services.CheckoutCommand{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, services.CheckoutItem{
			ProductID: item.ID,
			Quantity:  item.Quantity,
		})
	}

	result, err := h.checkoutService.Checkout(r.Context(), cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, result)
}
