package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bizboard-api/internal/application/analytics"
	"github.com/jhoicas/Bizboard-api/internal/application/dto"
)

// AnalyticsHandler endpoints de solo lectura del módulo de analítica.
type AnalyticsHandler struct {
	uc        *analytics.UseCase
	dashboard *analytics.DashboardUseCase
	report    *analytics.ReportUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase, dashboard *analytics.DashboardUseCase, report *analytics.ReportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, dashboard: dashboard, report: report}
}

func dateRange(c *fiber.Ctx) (dto.DateRangeQuery, error) {
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	return q, nil
}

// Expenses godoc
// @Summary      Gastos por categoría
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        startDate  query     string  false  "Desde"
// @Param        endDate    query     string  false  "Hasta, inclusive"
// @Success      200        {object}  dto.APIResponse{data=[]dto.ExpenseCategoryDTO}
// @Failure      400        {object}  dto.APIResponse
// @Router       /api/analytics/expenses [get]
func (h *AnalyticsHandler) Expenses(c *fiber.Ctx) error {
	q, err := dateRange(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ExpenseAnalysis(c.UserContext(), GetBusinessID(c), q)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// ProductPerformance godoc
// @Summary      Rendimiento por producto
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        startDate  query     string  false  "Desde"
// @Param        endDate    query     string  false  "Hasta, inclusive"
// @Success      200        {object}  dto.APIResponse{data=[]dto.ProductPerformanceDTO}
// @Failure      400        {object}  dto.APIResponse
// @Router       /api/analytics/product-performance [get]
func (h *AnalyticsHandler) ProductPerformance(c *fiber.Ctx) error {
	q, err := dateRange(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ProductPerformance(c.UserContext(), GetBusinessID(c), q)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// CashFlow godoc
// @Summary      Flujo de caja por período
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        period     query     string  false  "daily, weekly, monthly"  default(monthly)
// @Param        startDate  query     string  false  "Desde"
// @Param        endDate    query     string  false  "Hasta, inclusive"
// @Success      200        {object}  dto.APIResponse{data=[]dto.CashFlowPoint}
// @Failure      400        {object}  dto.APIResponse
// @Router       /api/analytics/cash-flow [get]
func (h *AnalyticsHandler) CashFlow(c *fiber.Ctx) error {
	var q dto.TrendQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	out, err := h.uc.CashFlow(c.UserContext(), GetBusinessID(c), q)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Dashboard godoc
// @Summary      Vista general del negocio
// @Description  Resumen financiero, conteo de productos, stock bajo y productos más vendidos en una llamada.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        startDate  query     string  false  "Desde"
// @Param        endDate    query     string  false  "Hasta, inclusive"
// @Success      200        {object}  dto.APIResponse{data=dto.DashboardDTO}
// @Router       /api/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	q, err := dateRange(c)
	if err != nil {
		return err
	}
	out, err := h.dashboard.Get(c.UserContext(), GetBusinessID(c), q)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Report godoc
// @Summary      Reporte analítico en PDF
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        startDate  query     string  false  "Desde"
// @Param        endDate    query     string  false  "Hasta, inclusive"
// @Success      200        {file}    binary
// @Failure      400        {object}  dto.APIResponse
// @Router       /api/analytics/report.pdf [get]
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	q, err := dateRange(c)
	if err != nil {
		return err
	}
	pdf, err := h.report.Generate(c.UserContext(), GetBusinessID(c), q)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("reporte-%s.pdf", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(pdf)
}
