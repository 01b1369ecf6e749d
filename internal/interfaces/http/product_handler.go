package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/application/inventory"
	"github.com/jhoicas/Bizboard-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	stock *inventory.StockUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, stock *inventory.StockUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, stock: stock}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	out, err := h.uc.Create(c.UserContext(), GetBusinessID(c), in)
	if err != nil {
		return err
	}
	return created(c, out, "producto creado")
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetBusinessID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page      query     int     false  "Página"  default(1)
// @Param        limit     query     int     false  "Límite"  default(20)
// @Param        category  query     string  false  "Categoría"
// @Param        isActive  query     bool    false  "Solo activos / inactivos"
// @Param        search    query     string  false  "Busca en nombre y SKU"
// @Param        sortBy    query     string  false  "name, salePrice, stockQuantity, createdAt"
// @Param        order     query     string  false  "asc, desc"
// @Success      200       {object}  dto.APIResponse{data=[]dto.ProductResponse}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductListQuery
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
// @Summary      Actualizar producto
// @Description  El stock no se modifica por aquí; usar PATCH /api/products/{id}/stock.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del producto"
// @Param        body  body      dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
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
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetBusinessID(c), c.Params("id")); err != nil {
		return err
	}
	return okMessage(c, "producto eliminado")
}

// Categories godoc
// @Summary      Categorías de producto en uso
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]string}
// @Router       /api/products/categories [get]
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext(), GetBusinessID(c))
	if err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	return ok(c, out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProductResponse}
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext(), GetBusinessID(c))
	if err != nil {
		return err
	}
	return ok(c, out)
}

// AdjustStock godoc
// @Summary      Ajustar stock
// @Description  operation: add suma, subtract resta sin bajar de 0, set fija el valor.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "ID del producto"
// @Param        body  body      dto.AdjustStockRequest  true  "quantity, operation"
// @Success      200   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/products/{id}/stock [patch]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody()
	}
	out, err := h.stock.Adjust(c.UserContext(), GetBusinessID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return ok(c, out)
}
