package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/application/transaction"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/infrastructure/memory"
)

const biz = "biz-1"

type fixture struct {
	store *memory.Store
	uc    *transaction.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	return &fixture{store: s, uc: transaction.NewUseCase(s, s.Repos().Transactions)}
}

func (f *fixture) product(t *testing.T, id string, stock int) {
	t.Helper()
	require.NoError(t, f.store.Repos().Products.Create(context.Background(), &entity.Product{
		ID: id, BusinessID: biz, Name: "Producto " + id, Category: "general",
		CostPrice: decimal.NewFromInt(4), SalePrice: decimal.NewFromInt(10),
		StockQuantity: stock, LowStockThreshold: 2, IsActive: true,
	}))
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Repos().Products.GetByID(context.Background(), biz, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockQuantity
}

func sale(lines ...dto.LineItemRequest) dto.TransactionRequest {
	return dto.TransactionRequest{
		Type:          "income",
		Category:      "ventas",
		Date:          "2024-03-10",
		PaymentMethod: entity.PaymentCash,
		Products:      lines,
	}
}

func line(id string, qty int) dto.LineItemRequest {
	return dto.LineItemRequest{ProductID: id, Quantity: qty, UnitPrice: decimal.NewFromInt(10)}
}

func TestCreate_StockInsuficienteNoModificaStock(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 5)

	_, err := f.uc.Create(context.Background(), biz, sale(line("p1", 6)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var serr *domain.StockError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 5, serr.Available)
	assert.Equal(t, 6, serr.Requested)
	assert.Equal(t, 5, f.stock(t, "p1"))
}

func TestCreateYDelete_RestauraStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "p1", 10)

	created, err := f.uc.Create(ctx, biz, sale(line("p1", 3)))
	require.NoError(t, err)
	assert.Equal(t, 7, f.stock(t, "p1"))
	assert.True(t, created.Amount.Equal(decimal.NewFromInt(30)))
	require.Len(t, created.Products, 1)
	assert.Equal(t, "Producto p1", created.Products[0].ProductName)

	require.NoError(t, f.uc.Delete(ctx, biz, created.ID))
	assert.Equal(t, 10, f.stock(t, "p1"))

	_, err = f.uc.Get(ctx, biz, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_AtomicoSiFallaUnaLinea(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "p1", 10)
	f.product(t, "p2", 1)

	_, err := f.uc.Create(ctx, biz, sale(line("p1", 2), line("p2", 5)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, f.stock(t, "p1"))
	assert.Equal(t, 1, f.stock(t, "p2"))

	page, err := f.uc.List(ctx, biz, dto.TransactionListQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestCreate_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), biz, sale(line("nope", 1)))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_AmountNoCoincide(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 10)
	req := sale(line("p1", 2))
	req.Amount = decimal.NewFromInt(25)

	_, err := f.uc.Create(context.Background(), biz, req)
	require.ErrorIs(t, err, domain.ErrAmountMismatch)
	assert.Equal(t, 10, f.stock(t, "p1"))
}

func TestCreate_GastoNoTocaStock(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 10)
	req := sale(line("p1", 2))
	req.Type = "expense"

	_, err := f.uc.Create(context.Background(), biz, req)
	require.NoError(t, err)
	assert.Equal(t, 10, f.stock(t, "p1"))
}

func TestCreate_RetiroSinProductos(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", 10)
	req := sale(line("p1", 1))
	req.Type = "withdrawal"

	_, err := f.uc.Create(context.Background(), biz, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_FechaInvalida(t *testing.T) {
	f := newFixture(t)
	req := dto.TransactionRequest{Type: "expense", Category: "renta", Amount: decimal.NewFromInt(100), Date: "10/03/2024", PaymentMethod: "cash"}
	_, err := f.uc.Create(context.Background(), biz, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_ReconciliaStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "p1", 10)

	created, err := f.uc.Create(ctx, biz, sale(line("p1", 3)))
	require.NoError(t, err)

	updated, err := f.uc.Update(ctx, biz, created.ID, sale(line("p1", 5)))
	require.NoError(t, err)
	assert.Equal(t, 5, f.stock(t, "p1"))
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	// cantidad imposible: el update falla y todo queda como estaba
	_, err = f.uc.Update(ctx, biz, created.ID, sale(line("p1", 11)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.stock(t, "p1"))
}

func TestOtroNegocio_EsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "p1", 10)
	created, err := f.uc.Create(ctx, biz, sale(line("p1", 1)))
	require.NoError(t, err)

	_, err = f.uc.Get(ctx, "otro", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.Update(ctx, "otro", created.ID, sale())
	assert.Error(t, err)
	assert.ErrorIs(t, f.uc.Delete(ctx, "otro", created.ID), domain.ErrNotFound)
	assert.Equal(t, 9, f.stock(t, "p1"))
}

func TestDelete_ProductoBorradoSeOmite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "p1", 10)
	created, err := f.uc.Create(ctx, biz, sale(line("p1", 1)))
	require.NoError(t, err)

	_, err = f.store.Repos().Products.Delete(ctx, biz, "p1")
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, biz, created.ID))
}

func (f *fixture) deactivate(t *testing.T, id string) {
	t.Helper()
	ctx := context.Background()
	products := f.store.Repos().Products
	p, err := products.GetByID(ctx, biz, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	p.IsActive = false
	require.NoError(t, products.Update(ctx, p))
}

func TestDelete_ProductoInactivoRecuperaStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "p1", 10)
	f.deactivate(t, "p1")

	created, err := f.uc.Create(ctx, biz, sale(line("p1", 3)))
	require.NoError(t, err)
	assert.Equal(t, 7, f.stock(t, "p1"))

	require.NoError(t, f.uc.Delete(ctx, biz, created.ID))
	assert.Equal(t, 10, f.stock(t, "p1"))
}

func TestUpdate_SacarProductoInactivoRecuperaStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "p1", 10)
	f.product(t, "p2", 10)

	created, err := f.uc.Create(ctx, biz, sale(line("p1", 4)))
	require.NoError(t, err)
	f.deactivate(t, "p1")

	_, err = f.uc.Update(ctx, biz, created.ID, sale(line("p2", 2)))
	require.NoError(t, err)
	assert.Equal(t, 10, f.stock(t, "p1"))
	assert.Equal(t, 8, f.stock(t, "p2"))
}

func TestList_FiltrosOrdenYPaginacion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i, day := range []string{"2024-03-01", "2024-03-05", "2024-03-03"} {
		_, err := f.uc.Create(ctx, biz, dto.TransactionRequest{
			Type: "expense", Category: []string{"renta", "servicios", "renta"}[i],
			Amount: decimal.NewFromInt(int64(10 * (i + 1))), Date: day, PaymentMethod: "bank_transfer",
		})
		require.NoError(t, err)
	}
	_, err := f.uc.Create(ctx, biz, dto.TransactionRequest{
		Type: "income", Category: "ventas", Amount: decimal.NewFromInt(5), Date: "2024-03-02", PaymentMethod: "cash",
	})
	require.NoError(t, err)

	page, err := f.uc.List(ctx, biz, dto.TransactionListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), page.Items[0].Date)

	page, err = f.uc.List(ctx, biz, dto.TransactionListQuery{Type: "expense", Category: "renta"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = f.uc.List(ctx, biz, dto.TransactionListQuery{
		PageRequest: dto.PageRequest{Page: 2, Limit: 3}, SortBy: "amount", Order: "asc",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].Amount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 2, page.Pagination.Pages)
	assert.Equal(t, 4, page.Pagination.Total)

	page, err = f.uc.List(ctx, biz, dto.TransactionListQuery{StartDate: "2024-03-02", EndDate: "2024-03-03"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	_, err = f.uc.List(ctx, biz, dto.TransactionListQuery{SortBy: "descripcion"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, c := range []string{"servicios", "renta", "renta"} {
		_, err := f.uc.Create(ctx, biz, dto.TransactionRequest{
			Type: "expense", Category: c, Amount: decimal.NewFromInt(1), Date: "2024-03-01", PaymentMethod: "cash",
		})
		require.NoError(t, err)
	}
	cats, err := f.uc.Categories(ctx, biz, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"renta", "servicios"}, cats)

	cats, err = f.uc.Categories(ctx, biz, "income")
	require.NoError(t, err)
	assert.Empty(t, cats)
}
