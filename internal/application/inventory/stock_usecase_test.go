package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/application/inventory"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/infrastructure/memory"
)

func qty(n int) *int { return &n }

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	products := s.Repos().Products
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", BusinessID: "b1", Name: "Pan", StockQuantity: 10, IsActive: true}))
	uc := inventory.NewStockUseCase(products)

	p, err := uc.Adjust(ctx, "b1", "p1", dto.AdjustStockRequest{Quantity: qty(5), Operation: "add"})
	require.NoError(t, err)
	assert.Equal(t, 15, p.StockQuantity)

	p, err = uc.Adjust(ctx, "b1", "p1", dto.AdjustStockRequest{Quantity: qty(40), Operation: "subtract"})
	require.NoError(t, err)
	assert.Equal(t, 0, p.StockQuantity)

	p, err = uc.Adjust(ctx, "b1", "p1", dto.AdjustStockRequest{Quantity: qty(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, p.StockQuantity)

	_, err = uc.Adjust(ctx, "b1", "p1", dto.AdjustStockRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Adjust(ctx, "b1", "p1", dto.AdjustStockRequest{Quantity: qty(-1), Operation: "add"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Adjust(ctx, "b2", "p1", dto.AdjustStockRequest{Quantity: qty(1), Operation: "add"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestore_InactivoRecuperaYBorradoSeOmite(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	products := s.Repos().Products
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", BusinessID: "b1", StockQuantity: 1, IsActive: false}))

	err := inventory.Restore(ctx, products, "b1", []entity.LineItem{{ProductID: "p1", Quantity: 3}, {ProductID: "gone", Quantity: 1}})
	require.NoError(t, err)

	p, err := products.GetByID(ctx, "b1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, p.StockQuantity)
}
