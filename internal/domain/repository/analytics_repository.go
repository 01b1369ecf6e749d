package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/period"
)

// DateRange rango opcional [Start, End). Nil = sin límite.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains indica si t cae dentro del rango.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && !t.Before(*r.End) {
		return false
	}
	return true
}

// SummaryResult totales por tipo.
type SummaryResult struct {
	Income      decimal.Decimal
	Expenses    decimal.Decimal
	Withdrawals decimal.Decimal
	Count       int
}

// BucketTotal suma de un tipo dentro de una cubeta. Start es el inicio truncado (UTC).
type BucketTotal struct {
	Start  time.Time
	Type   entity.TransactionType
	Amount decimal.Decimal
	Count  int
}

// CategoryTotal suma de gastos de una categoría.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
	Count    int
}

// ProductSales agregado de líneas de ingreso por producto.
// Cost = suma de quantity * unitCost registrado en la venta.
type ProductSales struct {
	ProductID   string
	ProductName string
	UnitsSold   int
	Revenue     decimal.Decimal
	Cost        decimal.Decimal
}

// AnalyticsRepository consultas de lectura para analítica. No modifican datos.
type AnalyticsRepository interface {
	Summary(ctx context.Context, businessID string, r DateRange) (SummaryResult, error)
	// BucketTotals agrupa por cubeta y tipo, ascendente por cubeta. Sin tipos = todos.
	BucketTotals(ctx context.Context, businessID string, p period.Period, r DateRange, types ...entity.TransactionType) ([]BucketTotal, error)
	ExpensesByCategory(ctx context.Context, businessID string, r DateRange) ([]CategoryTotal, error)
	ProductSales(ctx context.Context, businessID string, r DateRange) ([]ProductSales, error)
}
