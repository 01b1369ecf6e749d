package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/application/usecase"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/infrastructure/memory"
)

const biz = "biz-1"

func newProductUC() *usecase.ProductUseCase {
	return usecase.NewProductUseCase(memory.NewStore().Repos().Products)
}

func createReq(name string, cost, sale int64, stock int) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name: name, Category: "general",
		CostPrice: decimal.NewFromInt(cost), SalePrice: decimal.NewFromInt(sale),
		StockQuantity: stock,
	}
}

func TestCreate_PrecioVentaMenorAlCosto(t *testing.T) {
	uc := newProductUC()
	_, err := uc.Create(context.Background(), biz, createReq("Silla", 50, 40, 1))
	require.ErrorIs(t, err, domain.ErrPriceBelowCost)

	page, err := uc.List(context.Background(), biz, dto.ProductListQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestCreate_MargenYDefaults(t *testing.T) {
	uc := newProductUC()
	p, err := uc.Create(context.Background(), biz, createReq("Mesa", 75, 100, 4))
	require.NoError(t, err)
	assert.True(t, p.Margin.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, 10, p.LowStockThreshold)
	assert.True(t, p.IsActive)
	assert.True(t, p.IsLowStock)
}

func TestUpdate_NoPermiteVentaBajoCosto(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC()
	p, err := uc.Create(ctx, biz, createReq("Mesa", 75, 100, 4))
	require.NoError(t, err)

	low := decimal.NewFromInt(10)
	_, err = uc.Update(ctx, biz, p.ID, dto.UpdateProductRequest{SalePrice: &low})
	require.ErrorIs(t, err, domain.ErrPriceBelowCost)

	got, err := uc.GetByID(ctx, biz, p.ID)
	require.NoError(t, err)
	assert.True(t, got.SalePrice.Equal(decimal.NewFromInt(100)))
}

func TestSKUDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC()
	req := createReq("Mesa", 1, 2, 1)
	req.SKU = "M-1"
	_, err := uc.Create(ctx, biz, req)
	require.NoError(t, err)
	_, err = uc.Create(ctx, biz, req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLowStock_SoloActivosOrdenados(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC()
	inactive := false
	for _, c := range []struct {
		name   string
		stock  int
		active *bool
	}{
		{"A", 8, nil}, {"B", 2, nil}, {"C", 50, nil}, {"D", 0, &inactive}, {"E", 10, nil},
	} {
		req := createReq(c.name, 1, 2, c.stock)
		req.IsActive = c.active
		_, err := uc.Create(ctx, biz, req)
		require.NoError(t, err)
	}

	low, err := uc.LowStock(ctx, biz)
	require.NoError(t, err)
	var names []string
	for _, p := range low {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"B", "A", "E"}, names)
}

func TestList_BusquedaYOrden(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC()
	for i, n := range []string{"Café molido", "Té verde", "Café en grano"} {
		_, err := uc.Create(ctx, biz, createReq(n, 1, int64(10+i), 20))
		require.NoError(t, err)
	}
	page, err := uc.List(ctx, biz, dto.ProductListQuery{Search: "café", SortBy: "salePrice", Order: "desc"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Café en grano", page.Items[0].Name)
	assert.Equal(t, 2, page.Pagination.Total)

	_, err = uc.List(ctx, biz, dto.ProductListQuery{IsActive: "quizás"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_OtroNegocio(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC()
	p, err := uc.Create(ctx, biz, createReq("Mesa", 1, 2, 1))
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, "otro", p.ID), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, biz, p.ID))
	_, err = uc.GetByID(ctx, biz, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
