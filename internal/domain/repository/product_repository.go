package repository

import (
	"context"

	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/inventory"
)

// ProductFilter filtros, orden y paginación del listado de productos.
type ProductFilter struct {
	Category string
	IsActive *bool
	Search   string // coincide con nombre o SKU (sin distinguir mayúsculas)
	SortBy   string // name, salePrice, stockQuantity, createdAt
	Order    string // asc, desc
	Page     int
	Limit    int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las operaciones están acotadas al negocio; GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	// Create devuelve domain.ErrDuplicate si el SKU ya existe en el negocio.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, businessID, id string) (*entity.Product, error)
	// Update no modifica stock_quantity.
	Update(ctx context.Context, product *entity.Product) error
	// Delete devuelve false si no había producto que borrar.
	Delete(ctx context.Context, businessID, id string) (bool, error)
	List(ctx context.Context, businessID string, f ProductFilter) ([]*entity.Product, int, error)
	Categories(ctx context.Context, businessID string) ([]string, error)
	// ListLowStock productos activos con stock <= umbral, ascendente por stock.
	ListLowStock(ctx context.Context, businessID string) ([]*entity.Product, error)
	Count(ctx context.Context, businessID string) (int, error)

	// DecrementStock resta qty solo si hay stock suficiente, en una única sentencia.
	// Devuelve false si no se aplicó (producto inexistente o stock insuficiente).
	DecrementStock(ctx context.Context, businessID, id string, qty int) (bool, error)
	// IncrementStock suma qty aunque el producto esté inactivo. Devuelve false si no existe.
	IncrementStock(ctx context.Context, businessID, id string, qty int) (bool, error)
	// AdjustStock aplica la operación y devuelve el producto actualizado, o nil si no existe.
	AdjustStock(ctx context.Context, businessID, id string, op inventory.Operation, qty int) (*entity.Product, error)
}
