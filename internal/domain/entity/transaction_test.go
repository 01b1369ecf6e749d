package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bizboard-api/internal/domain"
)

func validIncome() *Transaction {
	return &Transaction{
		Type:          TransactionIncome,
		Category:      "ventas",
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PaymentMethod: PaymentCash,
	}
}

func TestNormalize_AmountDesdeLineas(t *testing.T) {
	tx := validIncome()
	tx.Products = []LineItem{
		{ProductID: "p1", Quantity: 3, UnitPrice: decimal.RequireFromString("2.50")},
		{ProductID: "p2", Quantity: 1, UnitPrice: decimal.NewFromInt(4)},
	}
	require.NoError(t, tx.Normalize())
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("11.50")))
	assert.True(t, tx.Products[0].TotalPrice.Equal(decimal.RequireFromString("7.50")))
}

func TestNormalize_ToleranciaAmount(t *testing.T) {
	tx := validIncome()
	tx.Products = []LineItem{{ProductID: "p1", Quantity: 3, UnitPrice: decimal.RequireFromString("3.33")}}

	tx.Amount = decimal.RequireFromString("10.00")
	assert.NoError(t, tx.Normalize())

	tx.Amount = decimal.RequireFromString("10.02")
	assert.ErrorIs(t, tx.Normalize(), domain.ErrAmountMismatch)
}

func TestNormalize_Validaciones(t *testing.T) {
	tx := &Transaction{Type: "gift", PaymentMethod: "cheque", Tags: make([]string, 11)}
	err := tx.Normalize()
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	for _, f := range []string{"type", "category", "date", "paymentMethod", "tags"} {
		assert.True(t, fields[f], f)
	}
}

func TestNormalize_AmountPositivo(t *testing.T) {
	tx := validIncome()
	assert.ErrorIs(t, tx.Normalize(), domain.ErrInvalidInput)

	tx.Amount = decimal.NewFromInt(5)
	assert.NoError(t, tx.Normalize())
}

func TestNormalize_LineaInvalida(t *testing.T) {
	tx := validIncome()
	tx.Products = []LineItem{{ProductID: "p1", Quantity: 0, UnitPrice: decimal.NewFromInt(-1)}}
	assert.ErrorIs(t, tx.Normalize(), domain.ErrInvalidInput)
}
