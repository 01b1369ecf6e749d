package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bizboard-api/internal/application/analytics"
	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/application/transaction"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/pkg/metrics"
)

// TransactionHandler CRUD de transacciones más resumen y tendencia de ventas.
type TransactionHandler struct {
	uc        *transaction.UseCase
	analytics *analytics.UseCase
	metrics   *metrics.Registry
}

// NewTransactionHandler construye el handler. m puede ser nil.
func NewTransactionHandler(uc *transaction.UseCase, an *analytics.UseCase, m *metrics.Registry) *TransactionHandler {
	return &TransactionHandler{uc: uc, analytics: an, metrics: m}
}

// Create godoc
// @Summary      Registrar transacción
// @Description  Un ingreso con productos descuenta stock de forma atómica; si falta stock no se guarda nada.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TransactionRequest  true  "Datos de la transacción"
// @Success      201   {object}  dto.APIResponse{data=dto.TransactionResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	out, err := h.uc.Create(c.UserContext(), GetBusinessID(c), in)
	if err != nil {
		if h.metrics != nil && errors.Is(err, domain.ErrInsufficientStock) {
			h.metrics.StockRejections.Inc()
		}
		return err
	}
	if h.metrics != nil {
		h.metrics.TransactionsCreated.WithLabelValues(out.Type).Inc()
	}
	return created(c, out, "transacción registrada")
}

// GetByID godoc
// @Summary      Obtener transacción
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la transacción"
// @Success      200  {object}  dto.APIResponse{data=dto.TransactionResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetBusinessID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, out)
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        page           query     int     false  "Página"  default(1)
// @Param        limit          query     int     false  "Límite"  default(20)
// @Param        type           query     string  false  "income, expense, withdrawal"
// @Param        category       query     string  false  "Categoría"
// @Param        paymentMethod  query     string  false  "Medio de pago"
// @Param        startDate      query     string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        endDate        query     string  false  "Hasta, inclusive"
// @Param        sortBy         query     string  false  "date, amount, category, createdAt"
// @Param        order          query     string  false  "asc, desc"
// @Success      200            {object}  dto.APIResponse{data=[]dto.TransactionResponse}
// @Failure      400            {object}  dto.APIResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var q dto.TransactionListQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	out, err := h.uc.List(c.UserContext(), GetBusinessID(c), q)
	if err != nil {
		return err
	}
	return okPage(c, out)
}

// Update godoc
// @Summary      Actualizar transacción
// @Description  En ingresos devuelve el stock de las líneas anteriores y reserva el de las nuevas.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "ID de la transacción"
// @Param        body  body      dto.TransactionRequest  true  "Datos completos"
// @Success      200   {object}  dto.APIResponse{data=dto.TransactionResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	out, err := h.uc.Update(c.UserContext(), GetBusinessID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Eliminar transacción
// @Description  En ingresos devuelve el stock a los productos que aún existen.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la transacción"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetBusinessID(c), c.Params("id")); err != nil {
		return err
	}
	return okMessage(c, "transacción eliminada")
}

// Categories godoc
// @Summary      Categorías de transacción en uso
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        type  query     string  false  "income, expense, withdrawal"
// @Success      200   {object}  dto.APIResponse{data=[]string}
// @Router       /api/transactions/categories [get]
func (h *TransactionHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext(), GetBusinessID(c), c.Query("type"))
	if err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	return ok(c, out)
}

// Summary godoc
// @Summary      Resumen financiero
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        startDate  query     string  false  "Desde"
// @Param        endDate    query     string  false  "Hasta, inclusive"
// @Success      200        {object}  dto.APIResponse{data=dto.SummaryDTO}
// @Failure      400        {object}  dto.APIResponse
// @Router       /api/transactions/summary [get]
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	out, err := h.analytics.Summary(c.UserContext(), GetBusinessID(c), q)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// SalesTrends godoc
// @Summary      Tendencia de ventas
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        period     query     string  false  "daily, weekly, monthly"  default(monthly)
// @Param        startDate  query     string  false  "Desde"
// @Param        endDate    query     string  false  "Hasta, inclusive"
// @Success      200        {object}  dto.APIResponse{data=[]dto.SalesTrendPoint}
// @Failure      400        {object}  dto.APIResponse
// @Router       /api/transactions/sales-trends [get]
func (h *TransactionHandler) SalesTrends(c *fiber.Ctx) error {
	var q dto.TrendQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	out, err := h.analytics.SalesTrend(c.UserContext(), GetBusinessID(c), q)
	if err != nil {
		return err
	}
	return ok(c, out)
}
