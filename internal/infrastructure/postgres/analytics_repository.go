package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/period"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para resumen, tendencias y rendimiento de productos.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// rangeCond filtra por [start, end); NULL desactiva el límite.
const rangeCond = `($2::timestamptz IS NULL OR t.date >= $2::timestamptz)
	  AND ($3::timestamptz IS NULL OR t.date < $3::timestamptz)`

// Summary totales por tipo en el rango.
func (r *AnalyticsRepo) Summary(ctx context.Context, businessID string, dr repository.DateRange) (repository.SummaryResult, error) {
	const query = `
	SELECT
	    COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'income'), 0)     AS income,
	    COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'expense'), 0)    AS expenses,
	    COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'withdrawal'), 0) AS withdrawals,
	    COUNT(*)                                                        AS tx_count
	FROM transactions t
	WHERE t.business_id = $1
	  AND ` + rangeCond

	var res repository.SummaryResult
	err := r.q.QueryRow(ctx, query, businessID, dr.Start, dr.End).
		Scan(&res.Income, &res.Expenses, &res.Withdrawals, &res.Count)
	if err != nil {
		return repository.SummaryResult{}, fmt.Errorf("analytics.Summary: %w", err)
	}
	return res, nil
}

// BucketTotals agrupa por date_trunc en UTC y tipo.
func (r *AnalyticsRepo) BucketTotals(
	ctx context.Context,
	businessID string,
	p period.Period,
	dr repository.DateRange,
	types ...entity.TransactionType,
) ([]repository.BucketTotal, error) {
	const query = `
	SELECT
	    date_trunc($4, t.date AT TIME ZONE 'UTC') AS bucket,
	    t.type,
	    SUM(t.amount)                             AS amount,
	    COUNT(*)                                  AS tx_count
	FROM transactions t
	WHERE t.business_id = $1
	  AND ` + rangeCond + `
	  AND (cardinality($5::text[]) = 0 OR t.type = ANY($5::text[]))
	GROUP BY bucket, t.type
	ORDER BY bucket, t.type`

	typeNames := make([]string, 0, len(types))
	for _, tt := range types {
		typeNames = append(typeNames, string(tt))
	}

	rows, err := r.q.Query(ctx, query, businessID, dr.Start, dr.End, period.For(p).SQLUnit, typeNames)
	if err != nil {
		return nil, fmt.Errorf("analytics.BucketTotals: %w", err)
	}
	defer rows.Close()

	results := []repository.BucketTotal{}
	for rows.Next() {
		var row repository.BucketTotal
		var typ string
		if err := rows.Scan(&row.Start, &typ, &row.Amount, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.BucketTotals scan: %w", err)
		}
		row.Start = row.Start.UTC()
		row.Type = entity.TransactionType(typ)
		results = append(results, row)
	}
	return results, rows.Err()
}

// ExpensesByCategory gastos por categoría, de mayor a menor.
func (r *AnalyticsRepo) ExpensesByCategory(ctx context.Context, businessID string, dr repository.DateRange) ([]repository.CategoryTotal, error) {
	const query = `
	SELECT t.category, SUM(t.amount) AS amount, COUNT(*) AS tx_count
	FROM transactions t
	WHERE t.business_id = $1
	  AND t.type = 'expense'
	  AND ` + rangeCond + `
	GROUP BY t.category
	ORDER BY amount DESC, t.category`

	rows, err := r.q.Query(ctx, query, businessID, dr.Start, dr.End)
	if err != nil {
		return nil, fmt.Errorf("analytics.ExpensesByCategory: %w", err)
	}
	defer rows.Close()

	results := []repository.CategoryTotal{}
	for rows.Next() {
		var row repository.CategoryTotal
		if err := rows.Scan(&row.Category, &row.Amount, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.ExpensesByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ProductSales agrega las líneas de ingresos por producto.
// El costo usa unit_cost guardado en la línea, no el costo actual del producto.
func (r *AnalyticsRepo) ProductSales(ctx context.Context, businessID string, dr repository.DateRange) ([]repository.ProductSales, error) {
	const query = `
	SELECT
	    ti.product_id,
	    COALESCE(MAX(p.name), '')                 AS product_name,
	    SUM(ti.quantity)                          AS units_sold,
	    SUM(ti.total_price)                       AS revenue,
	    SUM(ti.quantity * ti.unit_cost)           AS cost
	FROM transactions t
	JOIN transaction_items ti ON ti.transaction_id = t.id
	LEFT JOIN products p      ON p.id::text = ti.product_id AND p.business_id = t.business_id
	WHERE t.business_id = $1
	  AND t.type = 'income'
	  AND ` + rangeCond + `
	GROUP BY ti.product_id
	ORDER BY revenue DESC, ti.product_id`

	rows, err := r.q.Query(ctx, query, businessID, dr.Start, dr.End)
	if err != nil {
		return nil, fmt.Errorf("analytics.ProductSales: %w", err)
	}
	defer rows.Close()

	results := []repository.ProductSales{}
	for rows.Next() {
		var row repository.ProductSales
		var units int64
		if err := rows.Scan(&row.ProductID, &row.ProductName, &units, &row.Revenue, &row.Cost); err != nil {
			return nil, fmt.Errorf("analytics.ProductSales scan: %w", err)
		}
		row.UnitsSold = int(units)
		results = append(results, row)
	}
	return results, rows.Err()
}
