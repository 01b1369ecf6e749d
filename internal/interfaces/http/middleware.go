package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bizboard-api/pkg/logger"
	"github.com/jhoicas/Bizboard-api/pkg/metrics"
)

// RequestObserver registra cada request en el log y en Prometheus.
// Resuelve el error de la cadena con el ErrorHandler de la app para conocer el status final.
// Debe montarse después de requestid.
func RequestObserver(log *logger.Logger, m *metrics.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if m != nil {
			m.RequestInFlight.Inc()
			defer m.RequestInFlight.Dec()
		}

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		if m != nil {
			m.ObserveRequest(c.Method(), route, status, start)
		}

		reqLog := log.With().
			Interface("request_id", c.Locals("requestid")).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Str("business_id", GetBusinessID(c)).
			Logger()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = reqLog.Warn()
		}
		ev.Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}
