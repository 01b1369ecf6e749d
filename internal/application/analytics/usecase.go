// Package analytics contiene las agregaciones de solo lectura: resumen financiero,
// tendencias, gastos por categoría, flujo de caja y rentabilidad por producto.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/period"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// UseCase orquesta las consultas del AnalyticsRepository y calcula los derivados
// (netProfit, porcentajes, márgenes). Los filtros de fecha se validan antes de consultar.
type UseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(analyticsRepo repository.AnalyticsRepository) *UseCase {
	return &UseCase{analyticsRepo: analyticsRepo}
}

// percent devuelve part/total*100 redondeado a 2 decimales, 0 si total es 0.
func percent(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

// Summary totales por tipo y netProfit = ingresos - (gastos + retiros).
func (uc *UseCase) Summary(ctx context.Context, businessID string, q dto.DateRangeQuery) (*dto.SummaryDTO, error) {
	dr, err := q.Parse()
	if err != nil {
		return nil, err
	}
	return uc.summary(ctx, businessID, dr)
}

func (uc *UseCase) summary(ctx context.Context, businessID string, dr repository.DateRange) (*dto.SummaryDTO, error) {
	res, err := uc.analyticsRepo.Summary(ctx, businessID, dr)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return &dto.SummaryDTO{
		TotalIncome:      res.Income,
		TotalExpenses:    res.Expenses,
		TotalWithdrawals: res.Withdrawals,
		NetProfit:        res.Income.Sub(res.Expenses.Add(res.Withdrawals)),
		TransactionCount: res.Count,
	}, nil
}

func parseTrend(q dto.TrendQuery) (period.Period, repository.DateRange, error) {
	p, err := period.Parse(q.Period)
	if err != nil {
		return "", repository.DateRange{}, domain.NewValidationError("period", err.Error(), q.Period)
	}
	dr, err := q.DateRangeQuery.Parse()
	return p, dr, err
}

// SalesTrend ingresos por cubeta, en orden cronológico.
func (uc *UseCase) SalesTrend(ctx context.Context, businessID string, q dto.TrendQuery) ([]dto.SalesTrendPoint, error) {
	p, dr, err := parseTrend(q)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.BucketTotals(ctx, businessID, p, dr, entity.TransactionIncome)
	if err != nil {
		return nil, fmt.Errorf("sales trend: %w", err)
	}
	b := period.For(p)
	out := make([]dto.SalesTrendPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesTrendPoint{
			Period: b.Label(r.Start),
			Date:   r.Start,
			Sales:  r.Amount,
			Count:  r.Count,
		})
	}
	return out, nil
}

// CashFlow todas las transacciones por cubeta con su flujo neto.
func (uc *UseCase) CashFlow(ctx context.Context, businessID string, q dto.TrendQuery) ([]dto.CashFlowPoint, error) {
	p, dr, err := parseTrend(q)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.BucketTotals(ctx, businessID, p, dr)
	if err != nil {
		return nil, fmt.Errorf("cash flow: %w", err)
	}
	b := period.For(p)
	out := make([]dto.CashFlowPoint, 0, len(rows))
	index := map[string]int{}
	for _, r := range rows {
		label := b.Label(r.Start)
		i, ok := index[label]
		if !ok {
			out = append(out, dto.CashFlowPoint{
				Period:      label,
				Date:        r.Start,
				Income:      decimal.Zero,
				Expenses:    decimal.Zero,
				Withdrawals: decimal.Zero,
			})
			i = len(out) - 1
			index[label] = i
		}
		switch r.Type {
		case entity.TransactionIncome:
			out[i].Income = out[i].Income.Add(r.Amount)
		case entity.TransactionExpense:
			out[i].Expenses = out[i].Expenses.Add(r.Amount)
		case entity.TransactionWithdrawal:
			out[i].Withdrawals = out[i].Withdrawals.Add(r.Amount)
		}
	}
	for i := range out {
		out[i].NetCashFlow = out[i].Income.Sub(out[i].Expenses.Add(out[i].Withdrawals))
	}
	return out, nil
}

// ExpenseAnalysis gastos por categoría con su porcentaje, descendente por monto.
func (uc *UseCase) ExpenseAnalysis(ctx context.Context, businessID string, q dto.DateRangeQuery) ([]dto.ExpenseCategoryDTO, error) {
	dr, err := q.Parse()
	if err != nil {
		return nil, err
	}
	return uc.expenses(ctx, businessID, dr)
}

func (uc *UseCase) expenses(ctx context.Context, businessID string, dr repository.DateRange) ([]dto.ExpenseCategoryDTO, error) {
	rows, err := uc.analyticsRepo.ExpensesByCategory(ctx, businessID, dr)
	if err != nil {
		return nil, fmt.Errorf("expense analysis: %w", err)
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	out := make([]dto.ExpenseCategoryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ExpenseCategoryDTO{
			Category:   r.Category,
			Amount:     r.Amount,
			Count:      r.Count,
			Percentage: percent(r.Amount, total),
		})
	}
	return out, nil
}

// ProductPerformance rentabilidad de los productos vendidos, descendente por ingreso.
// El costo usado es el registrado en cada venta.
func (uc *UseCase) ProductPerformance(ctx context.Context, businessID string, q dto.DateRangeQuery) ([]dto.ProductPerformanceDTO, error) {
	dr, err := q.Parse()
	if err != nil {
		return nil, err
	}
	return uc.productPerformance(ctx, businessID, dr)
}

func (uc *UseCase) productPerformance(ctx context.Context, businessID string, dr repository.DateRange) ([]dto.ProductPerformanceDTO, error) {
	rows, err := uc.analyticsRepo.ProductSales(ctx, businessID, dr)
	if err != nil {
		return nil, fmt.Errorf("product performance: %w", err)
	}
	out := make([]dto.ProductPerformanceDTO, 0, len(rows))
	for _, r := range rows {
		profit := r.Revenue.Sub(r.Cost)
		out = append(out, dto.ProductPerformanceDTO{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			UnitsSold:    r.UnitsSold,
			Revenue:      r.Revenue,
			Profit:       profit,
			ProfitMargin: percent(profit, r.Revenue),
		})
	}
	return out, nil
}
