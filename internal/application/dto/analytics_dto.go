package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRangeQuery filtro de fechas opcional (YYYY-MM-DD o RFC3339).
type DateRangeQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// TrendQuery filtro de fechas más granularidad.
type TrendQuery struct {
	DateRangeQuery
	Period string `query:"period"` // daily, weekly, monthly
}

// SummaryDTO resumen financiero.
type SummaryDTO struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	TransactionCount int             `json:"transactionCount"`
}

// SalesTrendPoint ventas de una cubeta.
type SalesTrendPoint struct {
	Period string          `json:"period"`
	Date   time.Time       `json:"date"`
	Sales  decimal.Decimal `json:"sales"`
	Count  int             `json:"count"`
}

// ExpenseCategoryDTO gasto por categoría con porcentaje del total.
type ExpenseCategoryDTO struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CashFlowPoint flujo de caja de una cubeta.
type CashFlowPoint struct {
	Period      string          `json:"period"`
	Date        time.Time       `json:"date"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
	NetCashFlow decimal.Decimal `json:"netCashFlow"`
}

// ProductPerformanceDTO rentabilidad de un producto vendido.
type ProductPerformanceDTO struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	UnitsSold    int             `json:"unitsSold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
}

// DashboardDTO vista general para la pantalla principal.
type DashboardDTO struct {
	Summary          SummaryDTO              `json:"summary"`
	ProductCount     int                     `json:"productCount"`
	LowStockCount    int                     `json:"lowStockCount"`
	LowStockProducts []ProductResponse       `json:"lowStockProducts"`
	TopProducts      []ProductPerformanceDTO `json:"topProducts"`
}

// AnalyticsReport datos del reporte PDF.
type AnalyticsReport struct {
	BusinessName string
	Currency     string
	From         *time.Time
	To           *time.Time
	GeneratedAt  time.Time
	Summary      SummaryDTO
	Expenses     []ExpenseCategoryDTO
	TopProducts  []ProductPerformanceDTO
}
