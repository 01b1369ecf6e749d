package transaction

import (
	"context"

	"github.com/jhoicas/Bizboard-api/internal/application/inventory"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

type stockHook func(ctx context.Context, products repository.ProductRepository, businessID string, items []entity.LineItem) error

// behavior reglas propias de cada tipo de transacción.
type behavior struct {
	validate func(t *entity.Transaction) error
	reserve  stockHook // al crear
	restore  stockHook // al borrar
}

func noStock(context.Context, repository.ProductRepository, string, []entity.LineItem) error { return nil }

func anyLines(*entity.Transaction) error { return nil }

var behaviors = map[entity.TransactionType]behavior{
	entity.TransactionIncome: {
		validate: anyLines,
		reserve:  inventory.Reserve,
		restore:  inventory.Restore,
	},
	entity.TransactionExpense: {
		validate: anyLines,
		reserve:  noStock,
		restore:  noStock,
	},
	entity.TransactionWithdrawal: {
		validate: func(t *entity.Transaction) error {
			if len(t.Products) > 0 {
				return domain.NewValidationError("products", "un retiro no puede incluir productos", len(t.Products))
			}
			return nil
		},
		reserve: noStock,
		restore: noStock,
	},
}

// behaviorFor asume un tipo ya validado por Normalize.
func behaviorFor(t entity.TransactionType) behavior {
	return behaviors[t]
}
