package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	SalePrice         decimal.Decimal `json:"salePrice"`
	SKU               string          `json:"sku"`
	StockQuantity     int             `json:"stockQuantity"`
	LowStockThreshold *int            `json:"lowStockThreshold"`
	IsActive          *bool           `json:"isActive"`
}

// UpdateProductRequest actualización parcial. El stock no se modifica por aquí.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Category          *string          `json:"category"`
	CostPrice         *decimal.Decimal `json:"costPrice"`
	SalePrice         *decimal.Decimal `json:"salePrice"`
	SKU               *string          `json:"sku"`
	LowStockThreshold *int             `json:"lowStockThreshold"`
	IsActive          *bool            `json:"isActive"`
}

// AdjustStockRequest ajuste directo de stock.
type AdjustStockRequest struct {
	Quantity  *int   `json:"quantity"`
	Operation string `json:"operation"` // add, subtract, set
}

// ProductListQuery parámetros de GET /products.
type ProductListQuery struct {
	PageRequest
	Category string `query:"category"`
	IsActive string `query:"isActive"`
	Search   string `query:"search"`
	SortBy   string `query:"sortBy"`
	Order    string `query:"order"`
}

// ProductResponse salida de un producto con campos derivados.
type ProductResponse struct {
	ID                string          `json:"id"`
	BusinessID        string          `json:"businessId"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	SalePrice         decimal.Decimal `json:"salePrice"`
	Margin            decimal.Decimal `json:"margin"`
	SKU               string          `json:"sku,omitempty"`
	StockQuantity     int             `json:"stockQuantity"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	IsLowStock        bool            `json:"isLowStock"`
	IsActive          bool            `json:"isActive"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ToProductResponse mapea la entidad calculando margen y alerta de stock.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		BusinessID:        p.BusinessID,
		Name:              p.Name,
		Description:       p.Description,
		Category:          p.Category,
		CostPrice:         p.CostPrice,
		SalePrice:         p.SalePrice,
		Margin:            p.Margin(),
		SKU:               p.SKU,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		IsLowStock:        p.IsLowStock(),
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ToProductResponses mapea una lista; nunca devuelve nil.
func ToProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}
