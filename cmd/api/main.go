package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/Bizboard-api/docs"
	appanalytics "github.com/jhoicas/Bizboard-api/internal/application/analytics"
	"github.com/jhoicas/Bizboard-api/internal/application/auth"
	"github.com/jhoicas/Bizboard-api/internal/application/inventory"
	"github.com/jhoicas/Bizboard-api/internal/application/transaction"
	"github.com/jhoicas/Bizboard-api/internal/application/usecase"
	"github.com/jhoicas/Bizboard-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Bizboard-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Bizboard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Bizboard-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Bizboard-api/internal/interfaces/http"
	"github.com/jhoicas/Bizboard-api/pkg/config"
	"github.com/jhoicas/Bizboard-api/pkg/logger"
	"github.com/jhoicas/Bizboard-api/pkg/metrics"
)

// @title                       Bizboard API
// @version                     1.0
// @description                 API para pequeños negocios: productos, stock, transacciones y analítica.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	// montos como números JSON, no strings
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	var sinks []io.Writer
	var mongoSink *logger.MongoWriter
	if cfg.Log.MongoURI != "" {
		mongoSink, err = logger.NewMongoWriter(ctx, cfg.Log.MongoURI, cfg.Log.MongoDatabase, cfg.Log.MongoCollection)
		if err != nil {
			panic("conectar sink de logs MongoDB: " + err.Error())
		}
		sinks = append(sinks, mongoSink)
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		Sinks: sinks,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("mongo_logs", mongoSink != nil).
		Msg("iniciando aplicación")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(applied) > 0 {
		log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
	}

	images, err := storage.NewS3ImageStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de imágenes")
	}

	health := map[string]httpRouter.Pinger{"database": pool}
	var limiterStorage fiber.Storage
	if cfg.Redis.Addr != "" {
		rs, err := cache.NewRedisStorage(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rs.Close()
		limiterStorage = rs
		health["redis"] = rs
	}

	userRepo := postgres.NewUserRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(txRunner, userRepo, businessRepo, images, auth.Config{
		Secret:       cfg.JWT.Secret,
		ExpMinutes:   cfg.JWT.Expiration,
		Issuer:       cfg.JWT.Issuer,
		MaxLogoBytes: cfg.Upload.MaxSizeBytes,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	stockUC := inventory.NewStockUseCase(productRepo)
	transactionUC := transaction.NewUseCase(txRunner, transactionRepo)
	analyticsUC := appanalytics.NewUseCase(analyticsRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsUC, productRepo)
	reportUC := appanalytics.NewReportUseCase(analyticsUC, businessRepo, infrapdf.NewMarotoReportRenderer())

	m := metrics.New()
	app := httpRouter.NewApp(httpRouter.ServerConfig{
		Name:           cfg.App.Name,
		Production:     cfg.App.IsProduction(),
		CORSOrigins:    cfg.CORS.AllowOrigins,
		BodyLimit:      int(cfg.Upload.MaxSizeBytes) + 1<<20,
		RateMax:        cfg.RateLimit.Max,
		RateWindow:     cfg.RateLimit.Window,
		LimiterStorage: limiterStorage,
	}, log, m)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bizboard API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		StockUC:       stockUC,
		TransactionUC: transactionUC,
		AnalyticsUC:   analyticsUC,
		DashboardUC:   dashboardUC,
		ReportUC:      reportUC,
		Health:        httpRouter.NewHealthHandler(cfg.App.Name, health),
		Metrics:       m,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if mongoSink != nil {
		mongoSink.Close()
	}

	log.Info().Msg("aplicación detenida")
}
