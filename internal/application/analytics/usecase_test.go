package analytics_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bizboard-api/internal/application/analytics"
	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/application/transaction"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/infrastructure/memory"
)

const biz = "biz-1"

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type fixture struct {
	store *memory.Store
	tx    *transaction.UseCase
	uc    *analytics.UseCase
}

func newFixture() *fixture {
	s := memory.NewStore()
	return &fixture{
		store: s,
		tx:    transaction.NewUseCase(s, s.Repos().Transactions),
		uc:    analytics.NewUseCase(s.Analytics()),
	}
}

func (f *fixture) record(t *testing.T, typ, category, date string, amount int64) {
	t.Helper()
	_, err := f.tx.Create(context.Background(), biz, dto.TransactionRequest{
		Type: typ, Category: category, Amount: dec(amount), Date: date, PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
}

func TestSummary_Vacio(t *testing.T) {
	f := newFixture()
	s, err := f.uc.Summary(context.Background(), biz, dto.DateRangeQuery{})
	require.NoError(t, err)
	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.TotalWithdrawals.IsZero())
	assert.True(t, s.NetProfit.IsZero())
	assert.Equal(t, 0, s.TransactionCount)
}

func TestSummary_NetProfit(t *testing.T) {
	f := newFixture()
	f.record(t, "income", "ventas", "2024-03-01", 1000)
	f.record(t, "expense", "renta", "2024-03-02", 300)
	f.record(t, "withdrawal", "retiro", "2024-03-03", 200)
	f.record(t, "income", "ventas", "2024-04-01", 50)

	s, err := f.uc.Summary(context.Background(), biz, dto.DateRangeQuery{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)
	assert.True(t, s.TotalIncome.Equal(dec(1000)))
	assert.True(t, s.NetProfit.Equal(dec(500)))
	assert.Equal(t, 3, s.TransactionCount)
}

func TestSummary_FechaMalformada(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Summary(context.Background(), biz, dto.DateRangeQuery{EndDate: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSalesTrend_MensualUnaCubeta(t *testing.T) {
	f := newFixture()
	f.record(t, "income", "ventas", "2024-03-02", 120)
	f.record(t, "income", "ventas", "2024-03-28T15:00:00Z", 80)
	f.record(t, "expense", "renta", "2024-03-05", 999)

	points, err := f.uc.SalesTrend(context.Background(), biz, dto.TrendQuery{Period: "monthly"})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-03", points[0].Period)
	assert.True(t, points[0].Sales.Equal(dec(200)))
	assert.Equal(t, 2, points[0].Count)
}

func TestSalesTrend_OrdenYEtiquetas(t *testing.T) {
	f := newFixture()
	f.record(t, "income", "ventas", "2024-03-12", 10)
	f.record(t, "income", "ventas", "2024-03-04", 10)

	points, err := f.uc.SalesTrend(context.Background(), biz, dto.TrendQuery{Period: "weekly"})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-W10", points[0].Period)
	assert.Equal(t, "2024-W11", points[1].Period)

	points, err = f.uc.SalesTrend(context.Background(), biz, dto.TrendQuery{Period: "daily"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", points[0].Period)

	_, err = f.uc.SalesTrend(context.Background(), biz, dto.TrendQuery{Period: "hourly"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpenseAnalysis_Porcentajes(t *testing.T) {
	f := newFixture()
	f.record(t, "expense", "renta", "2024-03-01", 100)

	rows, err := f.uc.ExpenseAnalysis(context.Background(), biz, dto.DateRangeQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Percentage.Equal(dec(100)))

	f.record(t, "expense", "servicios", "2024-03-02", 300)
	rows, err = f.uc.ExpenseAnalysis(context.Background(), biz, dto.DateRangeQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "servicios", rows[0].Category)
	assert.True(t, rows[0].Percentage.Equal(dec(75)))
	assert.True(t, rows[1].Percentage.Equal(dec(25)))
}

func TestCashFlow(t *testing.T) {
	f := newFixture()
	f.record(t, "income", "ventas", "2024-02-10", 500)
	f.record(t, "expense", "renta", "2024-02-11", 200)
	f.record(t, "withdrawal", "retiro", "2024-03-01", 50)

	points, err := f.uc.CashFlow(context.Background(), biz, dto.TrendQuery{Period: "monthly"})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-02", points[0].Period)
	assert.True(t, points[0].NetCashFlow.Equal(dec(300)))
	assert.Equal(t, "2024-03", points[1].Period)
	assert.True(t, points[1].Withdrawals.Equal(dec(50)))
	assert.True(t, points[1].NetCashFlow.Equal(dec(-50)))
}

func TestProductPerformance(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	products := f.store.Repos().Products
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: "p1", BusinessID: biz, Name: "Café", Category: "bebidas",
		CostPrice: dec(4), SalePrice: dec(10), StockQuantity: 100, IsActive: true,
	}))
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: "p2", BusinessID: biz, Name: "Té", Category: "bebidas",
		CostPrice: dec(1), SalePrice: dec(5), StockQuantity: 100, IsActive: true,
	}))

	_, err := f.tx.Create(ctx, biz, dto.TransactionRequest{
		Type: "income", Category: "ventas", Date: "2024-03-01", PaymentMethod: "cash",
		Products: []dto.LineItemRequest{
			{ProductID: "p1", Quantity: 3, UnitPrice: dec(10)},
			{ProductID: "p2", Quantity: 2, UnitPrice: dec(5)},
		},
	})
	require.NoError(t, err)

	// el costo posterior a la venta no cambia la ganancia registrada
	p1, err := products.GetByID(ctx, biz, "p1")
	require.NoError(t, err)
	p1.CostPrice = dec(9)
	p1.Name = "Café premium"
	require.NoError(t, products.Update(ctx, p1))

	rows, err := f.uc.ProductPerformance(ctx, biz, dto.DateRangeQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Café premium", rows[0].ProductName)
	assert.Equal(t, 3, rows[0].UnitsSold)
	assert.True(t, rows[0].Revenue.Equal(dec(30)))
	assert.True(t, rows[0].Profit.Equal(dec(18)))
	assert.True(t, rows[0].ProfitMargin.Equal(dec(60)))
	assert.Equal(t, "p2", rows[1].ProductID)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	products := f.store.Repos().Products
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: "p1", BusinessID: biz, Name: "Pan", Category: "panadería",
		CostPrice: dec(1), SalePrice: dec(2), StockQuantity: 3, LowStockThreshold: 5, IsActive: true,
	}))
	f.record(t, "income", "ventas", "2024-03-01", 100)

	d, err := analytics.NewDashboardUseCase(f.uc, products).Get(ctx, biz, dto.DateRangeQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, d.ProductCount)
	assert.Equal(t, 1, d.LowStockCount)
	assert.True(t, d.Summary.TotalIncome.Equal(dec(100)))
	assert.Empty(t, d.TopProducts)
}
