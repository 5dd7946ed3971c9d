package services

import (
	"context"
	"log/slog"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/domain"
)

// ProductPageSize matches the storefront grid: 12 products per page.
const ProductPageSize = 12

// CatalogService serves the public product listing and the back-office
// product CRUD.
type CatalogService struct {
	catalog application.CatalogRepository
	logger  *slog.Logger
}

func NewCatalogService(catalog application.CatalogRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, logger: logger}
}

type ProductView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}

type ProductPage struct {
	Results []ProductView `json:"results"`
	HasNext bool          `json:"has_next"`
}

func toProductView(p *domain.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price.Amount(),
		Image:       p.ImageURL,
	}
}

// ListProducts returns one page of the catalog, optionally filtered by a
// name substring. Pages are 1-based.
func (s *CatalogService) ListProducts(ctx context.Context, query string, page int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}

	products, err := s.catalog.List(ctx, application.ProductFilter{
		Query:  query,
		Limit:  ProductPageSize,
		Offset: (page - 1) * ProductPageSize,
	})
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	total, err := s.catalog.Count(ctx, query)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}

	return &ProductPage{
		Results: views,
		HasNext: page*ProductPageSize < total,
	}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, slug string) (*ProductView, error) {
	product, err := s.catalog.FindBySlug(ctx, slug)
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeProductNotFound) {
			return nil, application.NewNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}
	view := toProductView(product)
	return &view, nil
}

type ProductCommand struct {
	Name        string
	Slug        string
	Description string
	Price       string
	Image       string
}

// CreateProduct persists a new catalog entry. The price is parsed as an
// exact decimal and the slug is derived from the name when absent.
func (s *CatalogService) CreateProduct(ctx context.Context, cmd ProductCommand) (*ProductView, error) {
	price, err := domain.ParseAmount(cmd.Price)
	if err != nil {
		return nil, application.NewValidationError(err)
	}

	product, err := domain.NewProduct(cmd.Name, cmd.Slug, cmd.Description, price, cmd.Image)
	if err != nil {
		return nil, application.NewValidationError(err)
	}

	if err := s.catalog.Create(ctx, product); err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeDuplicateSlug) {
			return nil, application.NewConflictError(err)
		}
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("product created", "product_id", product.ID, "slug", product.Slug)
	view := toProductView(product)
	return &view, nil
}

// UpdateProduct rewrites an existing product. Orders are untouched: items
// keep the price snapshotted when they were placed.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, cmd ProductCommand) (*ProductView, error) {
	existing, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeProductNotFound) {
			return nil, application.NewNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}

	price, err := domain.ParseAmount(cmd.Price)
	if err != nil {
		return nil, application.NewValidationError(err)
	}

	updated, err := domain.NewProduct(cmd.Name, cmd.Slug, cmd.Description, price, cmd.Image)
	if err != nil {
		return nil, application.NewValidationError(err)
	}
	updated.ID = existing.ID
	if updated.ImageURL == "" {
		updated.ImageURL = existing.ImageURL
	}

	if err := s.catalog.Update(ctx, updated); err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeDuplicateSlug) {
			return nil, application.NewConflictError(err)
		}
		return nil, application.NewInternalError(err)
	}

	view := toProductView(updated)
	return &view, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.catalog.Delete(ctx, id); err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeProductNotFound) {
			return application.NewNotFoundError(err)
		}
		if domain.IsErrorCode(err, domain.ErrCodeProductInUse) {
			return application.NewConflictError(err)
		}
		return application.NewInternalError(err)
	}
	s.logger.Info("product deleted", "product_id", id)
	return nil
}
