package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
)

// TransactionFilter filtros del listado. End es exclusivo.
type TransactionFilter struct {
	Type          string
	Category      string
	PaymentMethod string
	Start         *time.Time
	End           *time.Time
	SortBy        string // date, amount, category, createdAt
	Order         string // asc, desc
	Page          int
	Limit         int
}

// TransactionRepository define el puerto de persistencia para Transaction.
// Las líneas se guardan junto a la transacción; al leer se resuelve el nombre actual del producto.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, businessID, id string) (*entity.Transaction, error)
	// Update reemplaza cabecera y líneas.
	Update(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, businessID, id string) (bool, error)
	List(ctx context.Context, businessID string, f TransactionFilter) ([]*entity.Transaction, int, error)
	// Categories categorías distintas usadas, opcionalmente por tipo, ascendentes.
	Categories(ctx context.Context, businessID string, txType entity.TransactionType) ([]string, error)
}

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Users        UserRepository
	Businesses   BusinessRepository
	Products     ProductRepository
	Transactions TransactionRepository
}
