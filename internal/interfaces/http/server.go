package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Bizboard-api/pkg/logger"
	"github.com/jhoicas/Bizboard-api/pkg/metrics"
)

// ServerConfig opciones de la app Fiber.
type ServerConfig struct {
	Name        string
	Production  bool
	CORSOrigins string
	BodyLimit   int
	RateMax     int
	RateWindow  time.Duration
	// LimiterStorage nil = contador en memoria del proceso.
	LimiterStorage fiber.Storage
}

// NewApp crea la app con el manejador central de errores y los middlewares globales.
// Las rutas se registran después con Router.
func NewApp(cfg ServerConfig, log *logger.Logger, m *metrics.Registry) *fiber.App {
	bodyLimit := cfg.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = fiber.DefaultBodyLimit
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    bodyLimit,
		ErrorHandler: NewErrorHandler(cfg.Production, log),
	})

	app.Use(requestid.New())
	app.Use(RequestObserver(log, m))
	// Después del observer: el pánico llega como error y queda registrado con su status.
	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.Production}))
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowCredentials: cfg.CORSOrigins != "*",
		}))
	}
	if cfg.RateMax > 0 && cfg.RateWindow > 0 {
		app.Use("/api", limiter.New(limiter.Config{
			Max:        cfg.RateMax,
			Expiration: cfg.RateWindow,
			Storage:    cfg.LimiterStorage,
			LimitReached: func(c *fiber.Ctx) error {
				return fail(c, fiber.StatusTooManyRequests, CodeRateLimited, "demasiadas solicitudes, intente más tarde")
			},
		}))
	}

	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}
	return app
}
