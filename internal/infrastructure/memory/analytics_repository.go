package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/domain/period"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregaciones calculadas recorriendo las transacciones en memoria.
type AnalyticsRepo struct {
	s *Store
}

func (r *AnalyticsRepo) txs(businessID string, dr repository.DateRange, keep func(t *entity.Transaction) bool) []entity.Transaction {
	return (&TransactionRepo{s: r.s}).inRange(businessID, dr, keep)
}

func (r *AnalyticsRepo) Summary(_ context.Context, businessID string, dr repository.DateRange) (repository.SummaryResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := repository.SummaryResult{Income: decimal.Zero, Expenses: decimal.Zero, Withdrawals: decimal.Zero}
	for _, t := range r.txs(businessID, dr, nil) {
		switch t.Type {
		case entity.TransactionIncome:
			res.Income = res.Income.Add(t.Amount)
		case entity.TransactionExpense:
			res.Expenses = res.Expenses.Add(t.Amount)
		case entity.TransactionWithdrawal:
			res.Withdrawals = res.Withdrawals.Add(t.Amount)
		}
		res.Count++
	}
	return res, nil
}

func (r *AnalyticsRepo) BucketTotals(_ context.Context, businessID string, p period.Period, dr repository.DateRange, types ...entity.TransactionType) ([]repository.BucketTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	wanted := map[entity.TransactionType]bool{}
	for _, tt := range types {
		wanted[tt] = true
	}
	type key struct {
		start time.Time
		typ   entity.TransactionType
	}
	b := period.For(p)
	acc := map[key]*repository.BucketTotal{}
	for _, t := range r.txs(businessID, dr, nil) {
		if len(wanted) > 0 && !wanted[t.Type] {
			continue
		}
		k := key{start: b.Truncate(t.Date), typ: t.Type}
		bt, ok := acc[k]
		if !ok {
			bt = &repository.BucketTotal{Start: k.start, Type: k.typ, Amount: decimal.Zero}
			acc[k] = bt
		}
		bt.Amount = bt.Amount.Add(t.Amount)
		bt.Count++
	}
	out := make([]repository.BucketTotal, 0, len(acc))
	for _, bt := range acc {
		out = append(out, *bt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].Type < out[j].Type
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out, nil
}

func (r *AnalyticsRepo) ExpensesByCategory(_ context.Context, businessID string, dr repository.DateRange) ([]repository.CategoryTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	acc := map[string]*repository.CategoryTotal{}
	for _, t := range r.txs(businessID, dr, func(t *entity.Transaction) bool { return t.Type == entity.TransactionExpense }) {
		ct, ok := acc[t.Category]
		if !ok {
			ct = &repository.CategoryTotal{Category: t.Category, Amount: decimal.Zero}
			acc[t.Category] = ct
		}
		ct.Amount = ct.Amount.Add(t.Amount)
		ct.Count++
	}
	out := make([]repository.CategoryTotal, 0, len(acc))
	for _, ct := range acc {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Equal(out[j].Amount) {
			return out[i].Category < out[j].Category
		}
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out, nil
}

func (r *AnalyticsRepo) ProductSales(_ context.Context, businessID string, dr repository.DateRange) ([]repository.ProductSales, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	acc := map[string]*repository.ProductSales{}
	incomes := r.txs(businessID, dr, func(t *entity.Transaction) bool {
		return t.Type == entity.TransactionIncome && len(t.Products) > 0
	})
	for _, t := range incomes {
		for _, li := range t.Products {
			ps, ok := acc[li.ProductID]
			if !ok {
				ps = &repository.ProductSales{ProductID: li.ProductID, Revenue: decimal.Zero, Cost: decimal.Zero}
				if p, found := r.s.products[li.ProductID]; found {
					ps.ProductName = p.Name
				}
				acc[li.ProductID] = ps
			}
			qty := decimal.NewFromInt(int64(li.Quantity))
			ps.UnitsSold += li.Quantity
			ps.Revenue = ps.Revenue.Add(li.TotalPrice)
			ps.Cost = ps.Cost.Add(li.UnitCost.Mul(qty))
		}
	}
	out := make([]repository.ProductSales, 0, len(acc))
	for _, ps := range acc {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	return out, nil
}
