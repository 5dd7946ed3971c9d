package services_test

import (
	"context"
	"testing"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/application/services"
	"github.com/AdaoraUmeh/quickcart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture() (*services.CatalogService, *MockCatalogRepository) {
	catalog := NewMockCatalogRepository()
	return services.NewCatalogService(catalog, testLogger()), catalog
}

func TestListProducts_Pagination(t *testing.T) {
	svc, catalog := newCatalogFixture()

	var captured application.ProductFilter
	catalog.ListFn = func(ctx context.Context, filter application.ProductFilter) ([]*domain.Product, error) {
		captured = filter
		out := make([]*domain.Product, services.ProductPageSize)
		for i := range out {
			out[i] = &domain.Product{ID: int64(i + 1), Name: "P", Price: domain.Money{Cents: 100}}
		}
		return out, nil
	}
	catalog.CountFn = func(ctx context.Context, query string) (int, error) {
		return 30, nil
	}

	page, err := svc.ListProducts(context.Background(), "mouse", 2)

	require.NoError(t, err)
	assert.Equal(t, "mouse", captured.Query)
	assert.Equal(t, services.ProductPageSize, captured.Limit)
	assert.Equal(t, services.ProductPageSize, captured.Offset)
	assert.Len(t, page.Results, services.ProductPageSize)
	assert.True(t, page.HasNext)
}

func TestListProducts_LastPage(t *testing.T) {
	svc, catalog := newCatalogFixture()
	catalog.ListFn = func(ctx context.Context, filter application.ProductFilter) ([]*domain.Product, error) {
		return []*domain.Product{{ID: 25, Name: "Last", Price: domain.Money{Cents: 100}}}, nil
	}
	catalog.CountFn = func(ctx context.Context, query string) (int, error) {
		return 25, nil
	}

	page, err := svc.ListProducts(context.Background(), "", 3)

	require.NoError(t, err)
	assert.False(t, page.HasNext)
}

func TestGetProduct(t *testing.T) {
	svc, catalog := newCatalogFixture()
	catalog.AddProduct(&domain.Product{ID: 1, Name: "Wireless Mouse", Slug: "wireless-mouse", Price: domain.Money{Cents: 1999}})

	t.Run("found", func(t *testing.T) {
		view, err := svc.GetProduct(context.Background(), "wireless-mouse")

		require.NoError(t, err)
		assert.Equal(t, "Wireless Mouse", view.Name)
		assert.Equal(t, "19.99", view.Price)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetProduct(context.Background(), "no-such-slug")

		require.Error(t, err)
		assert.Equal(t, application.ErrCodeNotFound, application.ToErrorCode(err))
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("success with derived slug", func(t *testing.T) {
		svc, _ := newCatalogFixture()

		view, err := svc.CreateProduct(context.Background(), services.ProductCommand{
			Name:  "Wireless Mouse Pro",
			Price: "19.99",
		})

		require.NoError(t, err)
		assert.Equal(t, "wireless-mouse-pro", view.Slug)
		assert.Equal(t, "19.99", view.Price)
		assert.NotZero(t, view.ID)
	})

	t.Run("rejects bad price", func(t *testing.T) {
		svc, _ := newCatalogFixture()

		_, err := svc.CreateProduct(context.Background(), services.ProductCommand{
			Name:  "Mouse",
			Price: "19.999",
		})

		require.Error(t, err)
		assert.Equal(t, application.ErrCodeValidation, application.ToErrorCode(err))
	})

	t.Run("duplicate slug is a conflict", func(t *testing.T) {
		svc, catalog := newCatalogFixture()
		catalog.CreateFn = func(ctx context.Context, product *domain.Product) error {
			return domain.NewDuplicateSlugError(product.Slug)
		}

		_, err := svc.CreateProduct(context.Background(), services.ProductCommand{
			Name:  "Mouse",
			Price: "19.99",
		})

		require.Error(t, err)
		assert.Equal(t, application.ErrCodeConflict, application.ToErrorCode(err))
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("keeps existing image when none given", func(t *testing.T) {
		svc, catalog := newCatalogFixture()
		catalog.AddProduct(&domain.Product{ID: 1, Name: "Mouse", Slug: "mouse", ImageURL: "/img/mouse.png", Price: domain.Money{Cents: 1999}})

		view, err := svc.UpdateProduct(context.Background(), 1, services.ProductCommand{
			Name:  "Mouse v2",
			Slug:  "mouse",
			Price: "24.99",
		})

		require.NoError(t, err)
		assert.Equal(t, "/img/mouse.png", view.Image)
		assert.Equal(t, "24.99", view.Price)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, _ := newCatalogFixture()

		_, err := svc.UpdateProduct(context.Background(), 99, services.ProductCommand{
			Name:  "Mouse",
			Price: "19.99",
		})

		require.Error(t, err)
		assert.Equal(t, application.ErrCodeNotFound, application.ToErrorCode(err))
	})
}

func TestDeleteProduct(t *testing.T) {
	svc, catalog := newCatalogFixture()
	catalog.AddProduct(&domain.Product{ID: 1, Name: "Mouse", Price: domain.Money{Cents: 1999}})

	require.NoError(t, svc.DeleteProduct(context.Background(), 1))

	err := svc.DeleteProduct(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, application.ErrCodeNotFound, application.ToErrorCode(err))
}

func TestDeleteProduct_ReferencedByOrders(t *testing.T) {
	svc, catalog := newCatalogFixture()
	catalog.AddProduct(&domain.Product{ID: 1, Name: "Mouse", Price: domain.Money{Cents: 1999}})
	catalog.DeleteFn = func(ctx context.Context, id int64) error {
		return domain.NewProductInUseError(id)
	}

	err := svc.DeleteProduct(context.Background(), 1)

	require.Error(t, err)
	assert.Equal(t, application.ErrCodeConflict, application.ToErrorCode(err))
}
