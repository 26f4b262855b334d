package kernel_test

import (
	"testing"

	"fleet/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should round to cents", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.005"))

		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
	})

	t.Run("should accept zero", func(t *testing.T) {
		m, err := kernel.MoneyFromFloat(0)

		require.NoError(t, err)
		assert.Equal(t, "0.00", m.String())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.MoneyFromFloat(-0.01)

		assert.ErrorIs(t, err, kernel.ErrMoneyIsNegative)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	price := kernel.MustMoney("1000")

	t.Run("should compute tax and total", func(t *testing.T) {
		tax := price.Mul(decimal.RequireFromString("0.16"))
		total := price.Mul(decimal.RequireFromString("1.16"))

		assert.Equal(t, "160.00", tax.String())
		assert.Equal(t, "1160.00", total.String())
		assert.True(t, price.Add(tax).IsEqual(total))
	})

	t.Run("should split evenly", func(t *testing.T) {
		assert.Equal(t, "333.33", price.Div(3).String())
		assert.Equal(t, 250.0, price.Div(4).Float64())
	})

	t.Run("should truncate shares to cents", func(t *testing.T) {
		assert.Equal(t, "0.66", kernel.MustMoney("2").Div(3).String())
		assert.Equal(t, "0.00", kernel.MustMoney("0.03").Div(5).String())
	})
}
