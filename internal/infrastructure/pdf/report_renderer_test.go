package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
)

func TestRenderAnalytics_GeneraPDF(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := dto.AnalyticsReport{
		BusinessName: "Café Central",
		Currency:     "USD",
		From:         &from,
		GeneratedAt:  time.Now(),
		Summary: dto.SummaryDTO{
			TotalIncome:   decimal.NewFromInt(1500),
			TotalExpenses: decimal.NewFromInt(400),
			NetProfit:     decimal.NewFromInt(1100),
		},
		Expenses: []dto.ExpenseCategoryDTO{
			{Category: "rent", Amount: decimal.NewFromInt(400), Count: 1, Percentage: decimal.NewFromInt(100)},
		},
		TopProducts: []dto.ProductPerformanceDTO{
			{ProductID: "p1", ProductName: "Espresso", UnitsSold: 300, Revenue: decimal.NewFromInt(900)},
		},
	}

	b, err := NewMarotoReportRenderer().RenderAnalytics(r)
	require.NoError(t, err)
	assert.True(t, len(b) > 4)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestRenderAnalytics_SinDatos(t *testing.T) {
	b, err := NewMarotoReportRenderer().RenderAnalytics(dto.AnalyticsReport{BusinessName: "Vacío", Currency: "XXZ"})
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestMoneyFormatter(t *testing.T) {
	g := NewMarotoReportRenderer()

	assert.Contains(t, g.moneyFormatter("USD")(decimal.RequireFromString("1234.5")), "1,234.50")
	assert.Equal(t, "ABC 10.00", g.moneyFormatter("ABC")(decimal.NewFromInt(10)))
}
