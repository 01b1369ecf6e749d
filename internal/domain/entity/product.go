package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bizboard-api/internal/domain"
)

// DefaultLowStockThreshold umbral de stock bajo cuando el producto no define uno.
const DefaultLowStockThreshold = 10

var hundred = decimal.NewFromInt(100)

// Product representa un artículo del catálogo de un negocio.
// StockQuantity solo cambia vía el módulo de inventario (ajuste directo o ventas).
type Product struct {
	ID                string
	BusinessID        string
	Name              string
	Description       string
	Category          string
	CostPrice         decimal.Decimal
	SalePrice         decimal.Decimal
	SKU               string // opcional; único por negocio cuando existe
	StockQuantity     int
	LowStockThreshold int
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Margin margen porcentual derivado: (venta - costo) / venta * 100, 0 si venta es 0.
func (p *Product) Margin() decimal.Decimal {
	return Margin(p.CostPrice, p.SalePrice)
}

// IsLowStock indica si el stock está en o por debajo del umbral.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

// Margin calcula el margen porcentual redondeado a 2 decimales.
func Margin(cost, sale decimal.Decimal) decimal.Decimal {
	if !sale.IsPositive() {
		return decimal.Zero
	}
	return sale.Sub(cost).Div(sale).Mul(hundred).Round(2)
}

// CheckPrices valida costPrice >= 0 y salePrice >= costPrice.
func (p *Product) CheckPrices() error {
	verr := &domain.ValidationError{}
	if p.CostPrice.IsNegative() {
		verr.Add("costPrice", "debe ser mayor o igual a 0", p.CostPrice)
	}
	if p.SalePrice.IsNegative() {
		verr.Add("salePrice", "debe ser mayor o igual a 0", p.SalePrice)
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	if p.SalePrice.LessThan(p.CostPrice) {
		return domain.ErrPriceBelowCost
	}
	return nil
}
