package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
)

func demoCatalog() []*dto.ProductResponse {
	return []*dto.ProductResponse{
		{ID: "p1", SalePrice: decimal.RequireFromString("2.50")},
		{ID: "p2", SalePrice: decimal.RequireFromString("3.20")},
	}
}

func TestDemoDay_VentaCuadraConLineas(t *testing.T) {
	for d := 0; d < 10; d++ {
		reqs := demoDay(demoCatalog(), d, "2026-01-15")
		require.NotEmpty(t, reqs)

		sale := reqs[0]
		assert.Equal(t, string(entity.TransactionIncome), sale.Type)
		total := decimal.Zero
		for _, li := range sale.Products {
			assert.GreaterOrEqual(t, li.Quantity, 1)
			total = total.Add(li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))))
		}
		assert.True(t, sale.Amount.Equal(total), "día %d: %s != %s", d, sale.Amount, total)
	}
}

func TestDemoDay_GastosYRetiro(t *testing.T) {
	byType := func(reqs []dto.TransactionRequest) map[string]int {
		out := map[string]int{}
		for _, r := range reqs {
			out[r.Type]++
		}
		return out
	}

	assert.Equal(t, 1, byType(demoDay(demoCatalog(), 3, "2026-01-15"))[string(entity.TransactionExpense)])
	assert.Equal(t, 0, byType(demoDay(demoCatalog(), 4, "2026-01-15"))[string(entity.TransactionExpense)])
	assert.Equal(t, 1, byType(demoDay(demoCatalog(), 7, "2026-01-15"))[string(entity.TransactionWithdrawal)])
}
