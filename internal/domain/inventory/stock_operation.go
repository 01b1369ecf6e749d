package inventory

import "fmt"

// Operation operación de ajuste directo de stock.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpSet      Operation = "set"
)

// Adjustment describe cómo aplicar una operación: en memoria (Apply) y en SQL (SetExpr).
// SetExpr recibe el número de placeholder de la cantidad y devuelve la expresión para
// "SET stock_quantity = <expr>".
type Adjustment struct {
	Apply   func(current, qty int) int
	SetExpr func(arg int) string
}

var adjustments = map[Operation]Adjustment{
	OpAdd: {
		Apply:   func(current, qty int) int { return current + qty },
		SetExpr: func(arg int) string { return fmt.Sprintf("stock_quantity + $%d", arg) },
	},
	OpSubtract: {
		Apply: func(current, qty int) int {
			if qty > current {
				return 0
			}
			return current - qty
		},
		SetExpr: func(arg int) string { return fmt.Sprintf("GREATEST(stock_quantity - $%d, 0)", arg) },
	},
	OpSet: {
		Apply:   func(_, qty int) int { return qty },
		SetExpr: func(arg int) string { return fmt.Sprintf("$%d", arg) },
	},
}

// Lookup devuelve el ajuste para op. Cualquier valor no reconocido se trata como "set".
func Lookup(op Operation) Adjustment {
	if a, ok := adjustments[op]; ok {
		return a
	}
	return adjustments[OpSet]
}

// Apply calcula el nuevo stock. Nunca devuelve negativo.
func Apply(op Operation, current, qty int) int {
	n := Lookup(op).Apply(current, qty)
	if n < 0 {
		return 0
	}
	return n
}
