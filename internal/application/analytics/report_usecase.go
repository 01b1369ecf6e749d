package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/application/ports"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

const reportTopProducts = 10

// ReportUseCase genera el reporte analítico en PDF.
type ReportUseCase struct {
	analytics  *UseCase
	businesses repository.BusinessRepository
	renderer   ports.ReportRenderer
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(analytics *UseCase, businesses repository.BusinessRepository, renderer ports.ReportRenderer) *ReportUseCase {
	return &ReportUseCase{analytics: analytics, businesses: businesses, renderer: renderer}
}

// Generate arma los datos del período y delega el render.
func (uc *ReportUseCase) Generate(ctx context.Context, businessID string, q dto.DateRangeQuery) ([]byte, error) {
	dr, err := q.Parse()
	if err != nil {
		return nil, err
	}
	b, err := uc.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("report business: %w", err)
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}

	summary, err := uc.analytics.summary(ctx, businessID, dr)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.analytics.expenses(ctx, businessID, dr)
	if err != nil {
		return nil, err
	}
	top, err := uc.analytics.productPerformance(ctx, businessID, dr)
	if err != nil {
		return nil, err
	}
	if len(top) > reportTopProducts {
		top = top[:reportTopProducts]
	}

	report := dto.AnalyticsReport{
		BusinessName: b.Name,
		Currency:     b.Currency,
		From:         dr.Start,
		To:           dr.End,
		GeneratedAt:  time.Now().UTC(),
		Summary:      *summary,
		Expenses:     expenses,
		TopProducts:  top,
	}
	pdf, err := uc.renderer.RenderAnalytics(report)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return pdf, nil
}
