package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
)

// LineItemRequest línea de producto en una transacción.
type LineItemRequest struct {
	ProductID   string          `json:"productId"`
	VariantName string          `json:"variantName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// TransactionRequest entrada de creación y actualización.
// Amount en cero con productos = se toma la suma de las líneas.
type TransactionRequest struct {
	Type          string            `json:"type"`
	Category      string            `json:"category"`
	Amount        decimal.Decimal   `json:"amount"`
	Description   string            `json:"description"`
	Date          string            `json:"date"` // RFC3339 o YYYY-MM-DD
	PaymentMethod string            `json:"paymentMethod"`
	Reference     string            `json:"reference"`
	Products      []LineItemRequest `json:"products"`
	Tags          []string          `json:"tags"`
}

// TransactionListQuery parámetros de GET /transactions.
type TransactionListQuery struct {
	PageRequest
	Type          string `query:"type"`
	Category      string `query:"category"`
	PaymentMethod string `query:"paymentMethod"`
	StartDate     string `query:"startDate"`
	EndDate       string `query:"endDate"`
	SortBy        string `query:"sortBy"`
	Order         string `query:"order"`
}

// LineItemResponse línea con nombre de producto resuelto.
type LineItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	VariantName string          `json:"variantName,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID            string             `json:"id"`
	BusinessID    string             `json:"businessId"`
	Type          string             `json:"type"`
	Category      string             `json:"category"`
	Amount        decimal.Decimal    `json:"amount"`
	Description   string             `json:"description,omitempty"`
	Date          time.Time          `json:"date"`
	PaymentMethod string             `json:"paymentMethod"`
	Reference     string             `json:"reference,omitempty"`
	Products      []LineItemResponse `json:"products"`
	Tags          []string           `json:"tags"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ToTransactionResponse mapea la entidad.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	items := make([]LineItemResponse, 0, len(t.Products))
	for _, li := range t.Products {
		items = append(items, LineItemResponse{
			ProductID:   li.ProductID,
			ProductName: li.ProductName,
			VariantName: li.VariantName,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			TotalPrice:  li.TotalPrice,
		})
	}
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TransactionResponse{
		ID:            t.ID,
		BusinessID:    t.BusinessID,
		Type:          string(t.Type),
		Category:      t.Category,
		Amount:        t.Amount,
		Description:   t.Description,
		Date:          t.Date,
		PaymentMethod: t.PaymentMethod,
		Reference:     t.Reference,
		Products:      items,
		Tags:          tags,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
