package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas de negocio.
const (
	BusinessCategoryRestaurant    = "restaurant"
	BusinessCategoryRetail        = "retail"
	BusinessCategoryService       = "service"
	BusinessCategoryManufacturing = "manufacturing"
	BusinessCategoryOther         = "other"
)

// BusinessCategories conjunto de categorías aceptadas.
var BusinessCategories = map[string]bool{
	BusinessCategoryRestaurant:    true,
	BusinessCategoryRetail:        true,
	BusinessCategoryService:       true,
	BusinessCategoryManufacturing: true,
	BusinessCategoryOther:         true,
}

// BusinessSettings preferencias del negocio (se guardan como JSONB).
type BusinessSettings struct {
	LowStockAlert     bool            `json:"lowStockAlert"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	DefaultTaxRate    decimal.Decimal `json:"defaultTaxRate"`
	FiscalYearStart   int             `json:"fiscalYearStart"` // mes 1-12
	Language          string          `json:"language"`
	Theme             string          `json:"theme"`
}

// DefaultBusinessSettings valores iniciales al registrar un negocio.
func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{
		LowStockAlert:     true,
		LowStockThreshold: DefaultLowStockThreshold,
		DefaultTaxRate:    decimal.Zero,
		FiscalYearStart:   1,
		Language:          "es",
		Theme:             "light",
	}
}

// Business es el tenant: todos los productos y transacciones pertenecen a uno (1:1 con User).
type Business struct {
	ID        string
	UserID    string
	Name      string
	Category  string
	Currency  string
	Timezone  string
	LogoURL   string
	Settings  BusinessSettings
	CreatedAt time.Time
	UpdatedAt time.Time
}
