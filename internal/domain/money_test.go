package domain_test

import (
	"testing"

	"github.com/AdaoraUmeh/quickcart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Run("parses two decimal places", func(t *testing.T) {
		m, err := domain.ParseAmount("19.99")

		require.NoError(t, err)
		assert.Equal(t, int64(1999), m.Cents)
	})

	t.Run("parses whole amounts", func(t *testing.T) {
		m, err := domain.ParseAmount("25")

		require.NoError(t, err)
		assert.Equal(t, int64(2500), m.Cents)
	})

	t.Run("single fractional digit means tens of cents", func(t *testing.T) {
		m, err := domain.ParseAmount("7.5")

		require.NoError(t, err)
		assert.Equal(t, int64(750), m.Cents)
	})

	t.Run("parses zero", func(t *testing.T) {
		m, err := domain.ParseAmount("0.00")

		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		cases := []string{
			"", "-1.00", "+1.00", "1.999", "abc", "1.2.3", ".50", "19,99",
			"1.-5", "0.-5", "1.+5", "1. 5", "1.5e2",
			"92233720368547759", "99999999999999999999.00",
		}
		for _, raw := range cases {
			_, err := domain.ParseAmount(raw)
			assert.Error(t, err, "input %q", raw)
			assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidAmount), "input %q", raw)
		}
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("multiplication stays exact", func(t *testing.T) {
		price, err := domain.ParseAmount("19.99")
		require.NoError(t, err)

		total := price.Mul(3)
		assert.Equal(t, int64(5997), total.Cents)
		assert.Equal(t, "59.97", total.Amount())
	})

	t.Run("addition", func(t *testing.T) {
		a, _ := domain.ParseAmount("59.97")
		b, _ := domain.ParseAmount("5.00")

		assert.Equal(t, "64.97", a.Add(b).Amount())
	})

	t.Run("formats small amounts with leading zero", func(t *testing.T) {
		m, err := domain.NewMoney(5)
		require.NoError(t, err)

		assert.Equal(t, "0.05", m.Amount())
	})

	t.Run("rejects negative cents", func(t *testing.T) {
		_, err := domain.NewMoney(-1)
		assert.Error(t, err)
	})
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, raw := range []string{"0.00", "0.05", "1.00", "19.99", "12345.67"} {
		m, err := domain.ParseAmount(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, m.Amount())
	}
}
