package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bizboard-api/pkg/jwt"
)

// Locals keys para el principal autenticado en Fiber.
const (
	LocalUserID     = "user_id"
	LocalBusinessID = "business_id"
)

// AuthMiddleware valida el Bearer Token JWT y carga el principal en c.Locals.
// Un token vencido responde 401 con code TOKEN_EXPIRED para que el cliente lo renueve.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, CodeMissingToken, "token de acceso requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, CodeInvalidToken, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, CodeMissingToken, "token vacío")
		}
		p, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpired) {
				return fail(c, fiber.StatusUnauthorized, CodeTokenExpired, "el token expiró, inicie sesión nuevamente")
			}
			return fail(c, fiber.StatusUnauthorized, CodeInvalidToken, "token inválido")
		}
		c.Locals(LocalUserID, p.UserID)
		c.Locals(LocalBusinessID, p.BusinessID)
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetBusinessID devuelve el BusinessID del contexto (después del middleware de auth).
func GetBusinessID(c *fiber.Ctx) string { return localString(c, LocalBusinessID) }
