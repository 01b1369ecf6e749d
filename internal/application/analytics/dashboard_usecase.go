package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

const dashboardTopProducts = 5

// DashboardUseCase vista general: resumen, alertas de stock y productos más vendidos.
type DashboardUseCase struct {
	analytics *UseCase
	products  repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analytics *UseCase, products repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{analytics: analytics, products: products}
}

// Get ejecuta las consultas en paralelo y arma el DashboardDTO.
func (uc *DashboardUseCase) Get(ctx context.Context, businessID string, q dto.DateRangeQuery) (*dto.DashboardDTO, error) {
	dr, err := q.Parse()
	if err != nil {
		return nil, err
	}

	type summaryResult struct {
		summary *dto.SummaryDTO
		err     error
	}
	type topResult struct {
		top []dto.ProductPerformanceDTO
		err error
	}
	type stockResult struct {
		count int
		low   []dto.ProductResponse
		err   error
	}

	summaryCh := make(chan summaryResult, 1)
	topCh := make(chan topResult, 1)
	stockCh := make(chan stockResult, 1)

	go func() {
		s, err := uc.analytics.summary(ctx, businessID, dr)
		summaryCh <- summaryResult{s, err}
	}()
	go func() {
		top, err := uc.analytics.productPerformance(ctx, businessID, dr)
		if len(top) > dashboardTopProducts {
			top = top[:dashboardTopProducts]
		}
		topCh <- topResult{top, err}
	}()
	go func() {
		count, err := uc.products.Count(ctx, businessID)
		if err != nil {
			stockCh <- stockResult{err: err}
			return
		}
		low, err := uc.products.ListLowStock(ctx, businessID)
		stockCh <- stockResult{count: count, low: dto.ToProductResponses(low), err: err}
	}()

	s := <-summaryCh
	top := <-topCh
	stock := <-stockCh

	if s.err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", s.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard top products: %w", top.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard stock: %w", stock.err)
	}

	return &dto.DashboardDTO{
		Summary:          *s.summary,
		ProductCount:     stock.count,
		LowStockCount:    len(stock.low),
		LowStockProducts: stock.low,
		TopProducts:      top.top,
	}, nil
}
