package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger dependencia verificable por el health check (pool de PostgreSQL, Redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler estado del proceso y de sus dependencias.
type HealthHandler struct {
	service string
	started time.Time
	deps    map[string]Pinger
}

// NewHealthHandler construye el handler; deps se consultan en cada llamada.
func NewHealthHandler(service string, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{service: service, started: time.Now(), deps: deps}
}

// Check godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.APIResponse
// @Failure      503  {object}  dto.APIResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	checks := make(fiber.Map, len(h.deps))
	healthy := true
	for name, p := range h.deps {
		if err := p.Ping(ctx); err != nil {
			checks[name] = "down: " + err.Error()
			healthy = false
			continue
		}
		checks[name] = "up"
	}

	status := fiber.StatusOK
	state := "ok"
	if !healthy {
		status = fiber.StatusServiceUnavailable
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"success": healthy,
		"data": fiber.Map{
			"status":        state,
			"service":       h.service,
			"uptimeSeconds": int64(time.Since(h.started).Seconds()),
			"timestamp":     time.Now().UTC(),
			"checks":        checks,
		},
	})
}
