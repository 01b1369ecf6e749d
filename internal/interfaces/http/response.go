package http

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/domain"
	"github.com/jhoicas/Bizboard-api/pkg/logger"
)

// Códigos de error expuestos en el campo "code" del sobre.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidBody       = "INVALID_BODY"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeMissingToken      = "MISSING_TOKEN"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeTokenExpired      = "TOKEN_EXPIRED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeAmountMismatch    = "AMOUNT_MISMATCH"
	CodePriceBelowCost    = "PRICE_BELOW_COST"
	CodeDuplicate         = "DUPLICATE"
	CodeConflict          = "CONFLICT"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternal          = "INTERNAL_ERROR"
)

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(dto.APIResponse{Success: true, Data: data})
}

func created(c *fiber.Ctx, data interface{}, msg string) error {
	return c.Status(fiber.StatusCreated).JSON(dto.APIResponse{Success: true, Data: data, Message: msg})
}

func okPage[T any](c *fiber.Ctx, p *dto.Page[T]) error {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return c.JSON(dto.APIResponse{Success: true, Data: items, Pagination: p.Pagination})
}

func okMessage(c *fiber.Ctx, msg string) error {
	return c.JSON(dto.APIResponse{Success: true, Message: msg})
}

func fail(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.APIResponse{Success: false, Error: msg, Code: code})
}

// invalidBody error 400 para cuerpos que no se pueden decodificar.
func invalidBody() error {
	return fiber.NewError(fiber.StatusBadRequest, "cuerpo de la petición inválido")
}

// statusFor traduce errores de dominio a HTTP. Devuelve 0 si no es un error conocido.
func statusFor(err error) (int, string) {
	var stockErr *domain.StockError
	switch {
	case errors.As(err, &stockErr):
		return fiber.StatusBadRequest, CodeInsufficientStock
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrAmountMismatch):
		return fiber.StatusBadRequest, CodeAmountMismatch
	case errors.Is(err, domain.ErrPriceBelowCost):
		return fiber.StatusBadRequest, CodePriceBelowCost
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusBadRequest, CodeDuplicate
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, CodeInsufficientStock
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodeForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, CodeConflict
	}
	return 0, ""
}

// NewErrorHandler manejador central de errores de fiber. Fuera de producción añade el stack en errores 500.
func NewErrorHandler(production bool, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		resp := dto.APIResponse{Success: false, Error: err.Error()}
		status, code := statusFor(err)

		var fe *fiber.Error
		switch {
		case status != 0:
			resp.Code = code
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				resp.Error = "datos inválidos"
				resp.ValidationErrors = ve.Fields
			}
		case errors.As(err, &fe):
			status = fe.Code
			resp.Error = fe.Message
			resp.Code = codeForStatus(fe.Code)
		default:
			status = fiber.StatusInternalServerError
			resp.Code = CodeInternal
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Interface("request_id", c.Locals("requestid")).
				Msg("error no controlado")
			if production {
				resp.Error = "error interno del servidor"
			} else {
				resp.Stack = string(debug.Stack())
			}
		}
		return c.Status(status).JSON(resp)
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return CodeInvalidBody
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusForbidden:
		return CodeForbidden
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusTooManyRequests:
		return CodeRateLimited
	case fiber.StatusRequestEntityTooLarge:
		return CodeValidation
	}
	if status >= fiber.StatusInternalServerError {
		return CodeInternal
	}
	return ""
}
