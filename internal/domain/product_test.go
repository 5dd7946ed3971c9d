package domain_test

import (
	"testing"

	"github.com/AdaoraUmeh/quickcart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("derives slug from name", func(t *testing.T) {
		product, err := domain.NewProduct("Wireless Mouse Pro", "", "A mouse.", domain.Money{Cents: 1999}, "")

		require.NoError(t, err)
		assert.Equal(t, "wireless-mouse-pro", product.Slug)
	})

	t.Run("keeps explicit slug", func(t *testing.T) {
		product, err := domain.NewProduct("Wireless Mouse Pro", "mouse-v2", "", domain.Money{Cents: 1999}, "")

		require.NoError(t, err)
		assert.Equal(t, "mouse-v2", product.Slug)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := domain.NewProduct("   ", "", "", domain.Money{}, "")

		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMissingRequiredField))
	})
}
