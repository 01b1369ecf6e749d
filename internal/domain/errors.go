package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrAmountMismatch     = errors.New("el monto no coincide con la suma de los productos")
	ErrPriceBelowCost     = errors.New("el precio de venta no puede ser menor que el costo")
)

// FieldError detalle de validación para un campo concreto.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationError agrupa errores por campo. Se traduce a HTTP 400 con validationErrors.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validación fallida: " + strings.Join(msgs, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput) sobre un ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Add agrega un error de campo.
func (e *ValidationError) Add(field, message string, value interface{}) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message, Value: value})
}

// OrNil devuelve nil si no hay errores acumulados.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError atajo para un único campo inválido.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message, value)
	return v
}

// StockError acompaña a ErrInsufficientStock con el producto afectado.
type StockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *StockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return "stock insuficiente para " + name
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
