// Package memory implementa los repositorios en memoria para los tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Bizboard-api/internal/application/ports"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

// Store guarda todas las entidades y hace de TxRunner: Run toma una instantánea y la
// restaura si fn falla. Las transacciones se serializan entre sí.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users        map[string]entity.User
	businesses   map[string]entity.Business
	products     map[string]entity.Product
	transactions map[string]entity.Transaction
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:        map[string]entity.User{},
		businesses:   map[string]entity.Business{},
		products:     map[string]entity.Product{},
		transactions: map[string]entity.Transaction{},
	}
}

// Repos devuelve los repositorios sobre este almacén.
func (s *Store) Repos() repository.TxRepos {
	return repository.TxRepos{
		Users:        &UserRepo{s: s},
		Businesses:   &BusinessRepo{s: s},
		Products:     &ProductRepo{s: s},
		Transactions: &TransactionRepo{s: s},
	}
}

// Analytics devuelve el repositorio de analítica.
func (s *Store) Analytics() *AnalyticsRepo {
	return &AnalyticsRepo{s: s}
}

// Run ejecuta fn con rollback a la instantánea previa si devuelve error.
// Las escrituras hechas fuera de Run mientras fn corre no están aisladas: el rollback también las deshace.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snap := s.snapshot()
	if err := fn(s.Repos()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	users        map[string]entity.User
	businesses   map[string]entity.Business
	products     map[string]entity.Product
	transactions map[string]entity.Transaction
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		users:        make(map[string]entity.User, len(s.users)),
		businesses:   make(map[string]entity.Business, len(s.businesses)),
		products:     make(map[string]entity.Product, len(s.products)),
		transactions: make(map[string]entity.Transaction, len(s.transactions)),
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.businesses {
		snap.businesses[k] = v
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.transactions {
		snap.transactions[k] = cloneTransaction(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.businesses = snap.businesses
	s.products = snap.products
	s.transactions = snap.transactions
}

func cloneTransaction(t entity.Transaction) entity.Transaction {
	if t.Products != nil {
		t.Products = append([]entity.LineItem(nil), t.Products...)
	}
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	return t
}

func paginate[T any](list []T, page, limit int) []T {
	if limit <= 0 {
		return list
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(list) {
		return []T{}
	}
	end := start + limit
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}
