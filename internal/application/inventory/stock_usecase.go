package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/inventory"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

// StockUseCase ajuste directo de stock de un producto.
type StockUseCase struct {
	products repository.ProductRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(products repository.ProductRepository) *StockUseCase {
	return &StockUseCase{products: products}
}

// Adjust aplica add, subtract (con piso en 0) o set. Una operación desconocida fija el valor.
func (uc *StockUseCase) Adjust(ctx context.Context, businessID, productID string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if in.Quantity == nil {
		return nil, domain.NewValidationError("quantity", "es requerida", nil)
	}
	if *in.Quantity < 0 {
		return nil, domain.NewValidationError("quantity", "debe ser mayor o igual a 0", *in.Quantity)
	}
	op := inventory.Operation(strings.ToLower(strings.TrimSpace(in.Operation)))

	p, err := uc.products.AdjustStock(ctx, businessID, productID, op, *in.Quantity)
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}
