package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bizboard-api/internal/domain"
)

func TestMargin(t *testing.T) {
	assert.True(t, Margin(decimal.NewFromInt(60), decimal.NewFromInt(100)).Equal(decimal.NewFromInt(40)))
	assert.True(t, Margin(decimal.NewFromInt(0), decimal.Zero).IsZero())
	assert.True(t, Margin(decimal.NewFromInt(2), decimal.NewFromInt(3)).Equal(decimal.RequireFromString("33.33")))
}

func TestCheckPrices(t *testing.T) {
	p := &Product{CostPrice: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(8)}
	assert.ErrorIs(t, p.CheckPrices(), domain.ErrPriceBelowCost)

	p = &Product{CostPrice: decimal.NewFromInt(-1), SalePrice: decimal.NewFromInt(8)}
	assert.ErrorIs(t, p.CheckPrices(), domain.ErrInvalidInput)

	p = &Product{CostPrice: decimal.NewFromInt(8), SalePrice: decimal.NewFromInt(8)}
	assert.NoError(t, p.CheckPrices())
}

func TestIsLowStock(t *testing.T) {
	p := &Product{StockQuantity: 10, LowStockThreshold: 10}
	assert.True(t, p.IsLowStock())
	p.StockQuantity = 11
	assert.False(t, p.IsLowStock())
}
