package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bizboard-api/internal/domain"
)

// TransactionType tipo de movimiento financiero.
type TransactionType string

const (
	TransactionIncome     TransactionType = "income"
	TransactionExpense    TransactionType = "expense"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// Valid indica si el tipo es uno de los aceptados.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionWithdrawal:
		return true
	}
	return false
}

// Métodos de pago aceptados.
const (
	PaymentCash          = "cash"
	PaymentCreditCard    = "credit_card"
	PaymentDebitCard     = "debit_card"
	PaymentBankTransfer  = "bank_transfer"
	PaymentDigitalWallet = "digital_wallet"
	PaymentOther         = "other"
)

// PaymentMethods conjunto de métodos de pago válidos.
var PaymentMethods = map[string]bool{
	PaymentCash:          true,
	PaymentCreditCard:    true,
	PaymentDebitCard:     true,
	PaymentBankTransfer:  true,
	PaymentDigitalWallet: true,
	PaymentOther:         true,
}

// MaxTags número máximo de etiquetas por transacción.
const MaxTags = 10

// AmountTolerance diferencia máxima admitida entre amount y la suma de las líneas.
var AmountTolerance = decimal.New(1, -2)

// LineItem producto vendido dentro de una transacción (referencia débil al producto).
type LineItem struct {
	ProductID   string
	ProductName string // resuelto en lectura; vacío si el producto ya no existe
	VariantName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	UnitCost    decimal.Decimal // costo del producto al momento de la venta
}

// Transaction registro financiero de un negocio.
type Transaction struct {
	ID            string
	BusinessID    string
	Type          TransactionType
	Category      string
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
	PaymentMethod string
	Reference     string
	Products      []LineItem
	Tags          []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LinesTotal suma quantity*unitPrice de todas las líneas.
func (t *Transaction) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range t.Products {
		total = total.Add(li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))))
	}
	return total
}

// Normalize valida la transacción, recalcula totalPrice de cada línea y, si hay líneas
// y amount viene en cero, toma amount de la suma. Con líneas y amount informado,
// la diferencia no puede superar AmountTolerance.
func (t *Transaction) Normalize() error {
	verr := &domain.ValidationError{}

	if !t.Type.Valid() {
		verr.Add("type", "debe ser income, expense o withdrawal", string(t.Type))
	}
	t.Category = strings.TrimSpace(t.Category)
	if t.Category == "" {
		verr.Add("category", "es requerida", nil)
	}
	if t.Date.IsZero() {
		verr.Add("date", "es requerida", nil)
	}
	if !PaymentMethods[t.PaymentMethod] {
		verr.Add("paymentMethod", "método de pago inválido", t.PaymentMethod)
	}
	if len(t.Tags) > MaxTags {
		verr.Add("tags", "máximo 10 etiquetas", len(t.Tags))
	}
	for i := range t.Products {
		li := &t.Products[i]
		if li.ProductID == "" {
			verr.Add("products.productId", "es requerido", nil)
		}
		if li.Quantity < 1 {
			verr.Add("products.quantity", "debe ser al menos 1", li.Quantity)
		}
		if li.UnitPrice.IsNegative() {
			verr.Add("products.unitPrice", "debe ser mayor o igual a 0", li.UnitPrice)
		}
		li.TotalPrice = li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	if len(t.Products) > 0 {
		lines := t.LinesTotal()
		if t.Amount.IsZero() {
			t.Amount = lines
		}
		if t.Amount.Sub(lines).Abs().GreaterThan(AmountTolerance) {
			return domain.ErrAmountMismatch
		}
	}
	if !t.Amount.IsPositive() {
		return domain.NewValidationError("amount", "debe ser mayor que 0", t.Amount)
	}
	return nil
}
