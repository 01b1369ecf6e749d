package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo transacciones en memoria.
type TransactionRepo struct {
	s *Store
}

// resolve completa el nombre actual de cada producto. Requiere el lock tomado.
func (r *TransactionRepo) resolve(t entity.Transaction) *entity.Transaction {
	t = cloneTransaction(t)
	for i := range t.Products {
		t.Products[i].ProductName = ""
		if p, ok := r.s.products[t.Products[i].ProductID]; ok {
			t.Products[i].ProductName = p.Name
		}
	}
	return &t
}

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[t.ID] = cloneTransaction(*t)
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, businessID, id string) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transactions[id]
	if !ok || t.BusinessID != businessID {
		return nil, nil
	}
	return r.resolve(t), nil
}

func (r *TransactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.transactions[t.ID]
	if !ok || cur.BusinessID != t.BusinessID {
		return domain.ErrNotFound
	}
	upd := cloneTransaction(*t)
	upd.CreatedAt = cur.CreatedAt
	r.s.transactions[t.ID] = upd
	return nil
}

func (r *TransactionRepo) Delete(_ context.Context, businessID, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok || t.BusinessID != businessID {
		return false, nil
	}
	delete(r.s.transactions, id)
	return true, nil
}

// inRange requiere el lock tomado.
func (r *TransactionRepo) inRange(businessID string, dr repository.DateRange, keep func(t *entity.Transaction) bool) []entity.Transaction {
	var out []entity.Transaction
	for _, t := range r.s.transactions {
		if t.BusinessID != businessID || !dr.Contains(t.Date) {
			continue
		}
		if keep == nil || keep(&t) {
			out = append(out, t)
		}
	}
	return out
}

func (r *TransactionRepo) List(_ context.Context, businessID string, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matches := r.inRange(businessID, repository.DateRange{Start: f.Start, End: f.End}, func(t *entity.Transaction) bool {
		return (f.Type == "" || string(t.Type) == f.Type) &&
			(f.Category == "" || t.Category == f.Category) &&
			(f.PaymentMethod == "" || t.PaymentMethod == f.PaymentMethod)
	})

	less := transactionLess(f.SortBy)
	asc := f.Order == "asc"
	sort.SliceStable(matches, func(i, j int) bool {
		if asc {
			return less(&matches[i], &matches[j])
		}
		return less(&matches[j], &matches[i])
	})

	page := paginate(matches, f.Page, f.Limit)
	out := make([]*entity.Transaction, 0, len(page))
	for _, t := range page {
		out = append(out, r.resolve(t))
	}
	return out, len(matches), nil
}

func transactionLess(sortBy string) func(a, b *entity.Transaction) bool {
	switch sortBy {
	case "amount":
		return func(a, b *entity.Transaction) bool { return a.Amount.LessThan(b.Amount) }
	case "category":
		return func(a, b *entity.Transaction) bool { return a.Category < b.Category }
	case "createdAt":
		return func(a, b *entity.Transaction) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b *entity.Transaction) bool {
			if a.Date.Equal(b.Date) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.Date.Before(b.Date)
		}
	}
}

func (r *TransactionRepo) Categories(_ context.Context, businessID string, txType entity.TransactionType) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := map[string]bool{}
	out := []string{}
	for _, t := range r.inRange(businessID, repository.DateRange{}, nil) {
		if txType != "" && t.Type != txType {
			continue
		}
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}
