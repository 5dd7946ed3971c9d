package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/domain"
	"github.com/jackc/pgx/v5"
)

// CatalogRepository implements application.CatalogRepository on Postgres.
type CatalogRepository struct {
	q Executor
}

func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{q: db.Pool}
}

var _ application.CatalogRepository = (*CatalogRepository)(nil)

const productColumns = `id, name, slug, description, price_cents, image_url, created_at, updated_at`

func (r *CatalogRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.q.QueryRow(ctx, query, id), id)
}

func (r *CatalogRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	var m ProductModel
	err := r.q.QueryRow(ctx, query, slug).Scan(
		&m.ID, &m.Name, &m.Slug, &m.Description, &m.PriceCents, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.DomainError{
				Code:    domain.ErrCodeProductNotFound,
				Message: fmt.Sprintf("product with slug %q not found", slug),
			}
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return toDomainProduct(m), nil
}

func (r *CatalogRepository) List(ctx context.Context, filter application.ProductFilter) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.Query(ctx, query, filter.Query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Product, error) {
		var m ProductModel
		err := row.Scan(&m.ID, &m.Name, &m.Slug, &m.Description, &m.PriceCents, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt)
		return toDomainProduct(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	return results, nil
}

func (r *CatalogRepository) Count(ctx context.Context, query string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`,
		query,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (r *CatalogRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, slug, description, price_cents, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		product.Name,
		product.Slug,
		product.Description,
		product.Price.Cents,
		product.ImageURL,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewDuplicateSlugError(product.Slug)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *CatalogRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, slug = $2, description = $3, price_cents = $4, image_url = $5, updated_at = now()
		WHERE id = $6
	`

	tag, err := r.q.Exec(ctx, query,
		product.Name,
		product.Slug,
		product.Description,
		product.Price.Cents,
		product.ImageURL,
		product.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewDuplicateSlugError(product.Slug)
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewProductNotFoundError(product.ID)
	}
	return nil
}

func (r *CatalogRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return domain.NewProductInUseError(id)
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewProductNotFoundError(id)
	}
	return nil
}

// scanProduct converts a database row into a domain Product.
func scanProduct(row pgx.Row, id int64) (*domain.Product, error) {
	var m ProductModel
	err := row.Scan(&m.ID, &m.Name, &m.Slug, &m.Description, &m.PriceCents, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewProductNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return toDomainProduct(m), nil
}
