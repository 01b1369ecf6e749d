package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

func seedProduct(t *testing.T, s *Store, id, sku string, stock int) {
	t.Helper()
	err := s.Repos().Products.Create(context.Background(), &entity.Product{
		ID: id, BusinessID: "b1", Name: "prod-" + id, SKU: sku, StockQuantity: stock,
		LowStockThreshold: entity.DefaultLowStockThreshold, IsActive: true,
	})
	require.NoError(t, err)
}

func TestRun_RollbackRestauraStock(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p1", "", 10)

	boom := errors.New("falla")
	err := s.Run(ctx, func(repos repository.TxRepos) error {
		ok, err := repos.Products.DecrementStock(ctx, "b1", "p1", 4)
		require.NoError(t, err)
		require.True(t, ok)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.Repos().Products.GetByID(ctx, "b1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.StockQuantity)
}

func TestDecrementStock_Condicional(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p1", "", 5)
	repo := s.Repos().Products

	ok, err := repo.DecrementStock(ctx, "b1", "p1", 6)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DecrementStock(ctx, "otro", "p1", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DecrementStock(ctx, "b1", "p1", 5)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", "SKU-1", 1)
	err := s.Repos().Products.Create(context.Background(), &entity.Product{ID: "p2", BusinessID: "b1", SKU: "SKU-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// mismo SKU en otro negocio está permitido
	err = s.Repos().Products.Create(context.Background(), &entity.Product{ID: "p3", BusinessID: "b2", SKU: "SKU-1"})
	assert.NoError(t, err)
}
