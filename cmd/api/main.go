package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"coursedocs/docs"
	"coursedocs/internal/cache"
	"coursedocs/internal/config"
	"coursedocs/internal/database"
	"coursedocs/internal/database/migration"
	handlers "coursedocs/internal/http/handler"
	"coursedocs/internal/http/middleware"
	"coursedocs/internal/logger"
	"coursedocs/internal/otel"
	"coursedocs/internal/repository/postgres"
	"coursedocs/internal/service"
	"coursedocs/internal/storage"
	"coursedocs/internal/validation"
)

// multipart framing and form fields on top of the file itself
const bodyOverhead = 1 << 20

// @title Course Documents API
// @version 1.0
// @description Submission, review and publication of course documents.
// @BasePath /
// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID
// @securityDefinitions.apikey UserRole
// @in header
// @name X-User-Role
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", "error", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err, "db_host", cfg.Database.Host)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log.With("db_host", cfg.Database.Host)); err != nil {
		log.Fatal("failed to migrate database", "error", err)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatal("failed to initialize object storage", "error", err)
	}

	deps := service.Dependencies{
		Store:      objStore,
		Documents:  postgres.NewDocumentPostgres(db),
		UnitOfWork: postgres.NewTxManager(db),
		Courses:    postgres.NewCoursePostgres(db),
		Notifier:   postgres.NewNotificationPostgres(db),
		Content:    validation.NewContentValidator(cfg.Upload.MaxBytes),
		Metadata:   validation.NewMetadataValidator(),
		Logger:     log.With("component", "documents"),
		PresignTTL: cfg.Access.PresignTTL,
	}

	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			log.Warn("presign cache disabled", "error", err)
		} else {
			defer rc.Close()
			deps.Cache = rc
		}
	}

	deps.Metrics, err = service.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register service metrics", "error", err)
	}
	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register http metrics", "error", err)
	}

	docSvc := service.NewDocumentService(deps)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.Upload.MaxBytes) + bodyOverhead,
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log.With("component", "http")))
	app.Use(promMW.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, docSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		host := c.Get("Host")
		if host == "" {
			host = cfg.AppHost
		}
		docs.SwaggerInfo.Host = host
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Info("listening", "addr", addr, "max_upload_bytes", cfg.Upload.MaxBytes)
	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", "error", err)
	}
}
