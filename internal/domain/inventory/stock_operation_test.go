package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		op      Operation
		current int
		qty     int
		want    int
	}{
		{"suma", OpAdd, 10, 5, 15},
		{"resta", OpSubtract, 10, 4, 6},
		{"resta con piso en cero", OpSubtract, 3, 10, 0},
		{"fija valor absoluto", OpSet, 10, 42, 42},
		{"operación desconocida fija valor", Operation("reset"), 10, 7, 7},
		{"set negativo se corrige a cero", OpSet, 10, -2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.op, tt.current, tt.qty))
		})
	}
}

func TestLookup_SetExpr(t *testing.T) {
	assert.Equal(t, "stock_quantity + $1", Lookup(OpAdd).SetExpr(1))
	assert.Equal(t, "GREATEST(stock_quantity - $3, 0)", Lookup(OpSubtract).SetExpr(3))
	assert.Equal(t, "$2", Lookup("otro").SetExpr(2))
}
