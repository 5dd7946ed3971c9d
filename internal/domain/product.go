package domain

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
)

type Product struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Price       Money
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct builds a product for insertion. The slug is derived from the
// name when none is given; uniqueness is enforced by the store.
func NewProduct(name, productSlug, description string, price Money, imageURL string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewMissingRequiredFieldError("name")
	}

	productSlug = strings.TrimSpace(productSlug)
	if productSlug == "" {
		productSlug = slug.Make(name)
	}

	return &Product{
		Name:        name,
		Slug:        productSlug,
		Description: strings.TrimSpace(description),
		Price:       price,
		ImageURL:    strings.TrimSpace(imageURL),
	}, nil
}
