package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

// Reserve descuenta el stock de cada línea. Debe llamarse dentro de un TxRunner:
// si una línea falla, el rollback deshace los descuentos anteriores.
// Completa en cada línea el nombre y el costo vigente del producto.
func Reserve(ctx context.Context, products repository.ProductRepository, businessID string, items []entity.LineItem) error {
	for i := range items {
		li := &items[i]
		p, err := products.GetByID(ctx, businessID, li.ProductID)
		if err != nil {
			return fmt.Errorf("reserve stock: %w", err)
		}
		if p == nil {
			return fmt.Errorf("producto %s: %w", li.ProductID, domain.ErrNotFound)
		}
		ok, err := products.DecrementStock(ctx, businessID, li.ProductID, li.Quantity)
		if err != nil {
			return fmt.Errorf("reserve stock: %w", err)
		}
		if !ok {
			available := p.StockQuantity
			if cur, err := products.GetByID(ctx, businessID, li.ProductID); err == nil && cur != nil {
				available = cur.StockQuantity
			}
			return &domain.StockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   available,
				Requested:   li.Quantity,
			}
		}
		li.ProductName = p.Name
		li.UnitCost = p.CostPrice
	}
	return nil
}

// Restore devuelve al stock las cantidades de cada línea.
// Un producto inactivo también recupera su stock; solo los borrados se omiten sin error.
func Restore(ctx context.Context, products repository.ProductRepository, businessID string, items []entity.LineItem) error {
	for _, li := range items {
		if _, err := products.IncrementStock(ctx, businessID, li.ProductID, li.Quantity); err != nil {
			return fmt.Errorf("restore stock: %w", err)
		}
	}
	return nil
}
