package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/inventory"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s *Store
}

// skuTaken requiere el lock tomado.
func (r *ProductRepo) skuTaken(p *entity.Product) bool {
	if p.SKU == "" {
		return false
	}
	for _, other := range r.s.products {
		if other.ID != p.ID && other.BusinessID == p.BusinessID && other.SKU == p.SKU {
			return true
		}
	}
	return false
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.skuTaken(p) {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, businessID, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok || p.BusinessID != businessID {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok || cur.BusinessID != p.BusinessID {
		return domain.ErrNotFound
	}
	if r.skuTaken(p) {
		return domain.ErrDuplicate
	}
	upd := *p
	upd.StockQuantity = cur.StockQuantity
	upd.CreatedAt = cur.CreatedAt
	r.s.products[p.ID] = upd
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, businessID, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.BusinessID != businessID {
		return false, nil
	}
	delete(r.s.products, id)
	return true, nil
}

func (r *ProductRepo) byBusiness(businessID string, keep func(p *entity.Product) bool) []*entity.Product {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.BusinessID != businessID {
			continue
		}
		p := p
		if keep == nil || keep(&p) {
			out = append(out, &p)
		}
	}
	return out
}

func (r *ProductRepo) List(_ context.Context, businessID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(f.Search)
	list := r.byBusiness(businessID, func(p *entity.Product) bool {
		if f.Category != "" && p.Category != f.Category {
			return false
		}
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			return false
		}
		return true
	})

	less := productLess(f.SortBy)
	desc := f.Order == "desc"
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
	return paginate(list, f.Page, f.Limit), len(list), nil
}

func productLess(sortBy string) func(a, b *entity.Product) bool {
	switch sortBy {
	case "salePrice":
		return func(a, b *entity.Product) bool { return a.SalePrice.LessThan(b.SalePrice) }
	case "stockQuantity":
		return func(a, b *entity.Product) bool { return a.StockQuantity < b.StockQuantity }
	case "createdAt":
		return func(a, b *entity.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b *entity.Product) bool { return a.Name < b.Name }
	}
}

func (r *ProductRepo) Categories(_ context.Context, businessID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := map[string]bool{}
	out := []string{}
	for _, p := range r.byBusiness(businessID, nil) {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *ProductRepo) ListLowStock(_ context.Context, businessID string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := r.byBusiness(businessID, func(p *entity.Product) bool {
		return p.IsActive && p.IsLowStock()
	})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].StockQuantity == list[j].StockQuantity {
			return list[i].Name < list[j].Name
		}
		return list[i].StockQuantity < list[j].StockQuantity
	})
	return list, nil
}

func (r *ProductRepo) Count(_ context.Context, businessID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.byBusiness(businessID, nil)), nil
}

func (r *ProductRepo) DecrementStock(_ context.Context, businessID, id string, qty int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.BusinessID != businessID || p.StockQuantity < qty {
		return false, nil
	}
	p.StockQuantity -= qty
	p.UpdatedAt = time.Now().UTC()
	r.s.products[id] = p
	return true, nil
}

func (r *ProductRepo) IncrementStock(_ context.Context, businessID, id string, qty int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.BusinessID != businessID {
		return false, nil
	}
	p.StockQuantity += qty
	p.UpdatedAt = time.Now().UTC()
	r.s.products[id] = p
	return true, nil
}

func (r *ProductRepo) AdjustStock(_ context.Context, businessID, id string, op inventory.Operation, qty int) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.BusinessID != businessID {
		return nil, nil
	}
	p.StockQuantity = inventory.Apply(op, p.StockQuantity, qty)
	p.UpdatedAt = time.Now().UTC()
	r.s.products[id] = p
	return &p, nil
}
