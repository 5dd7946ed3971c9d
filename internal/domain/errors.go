package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeEmptyCart            = "EMPTY_CART"
	ErrCodeInvalidQuantity      = "INVALID_QUANTITY"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodeProductNotFound      = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeDuplicateSlug        = "DUPLICATE_SLUG"
	ErrCodeProductInUse         = "PRODUCT_IN_USE"
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeMalformedReference   = "MALFORMED_REFERENCE"
)

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewEmptyCartError() *DomainError {
	return &DomainError{
		Code:    ErrCodeEmptyCart,
		Message: "no items in cart",
	}
}

func NewInvalidQuantityError(quantity int) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidQuantity,
		Message: fmt.Sprintf("invalid quantity %d", quantity),
	}
}

func NewInvalidAmountError(raw string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount %q", raw),
	}
}

func NewProductNotFoundError(id int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeProductNotFound,
		Message: fmt.Sprintf("product with ID %d not found", id),
	}
}

func NewOrderNotFoundError(id int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeOrderNotFound,
		Message: fmt.Sprintf("order with ID %d not found", id),
	}
}

func NewDuplicateSlugError(slug string) *DomainError {
	return &DomainError{
		Code:    ErrCodeDuplicateSlug,
		Message: fmt.Sprintf("product slug %q already exists", slug),
	}
}

func NewProductInUseError(id int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeProductInUse,
		Message: fmt.Sprintf("product with ID %d is referenced by existing orders", id),
	}
}

func NewInvalidTransitionError(from, to OrderStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

func NewMalformedReferenceError(ref string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMalformedReference,
		Message: fmt.Sprintf("malformed transaction reference %q", ref),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
