package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flyer_builder/internal/controller"
	"flyer_builder/internal/export"
	"flyer_builder/internal/flyer"
	"flyer_builder/internal/middleware"
	"flyer_builder/internal/store"
	"flyer_builder/pkg/config"
	"flyer_builder/pkg/cron"
	"flyer_builder/pkg/logger"
	"flyer_builder/pkg/render/document"
	"flyer_builder/pkg/render/raster"
	"flyer_builder/pkg/utils/cloudflare"
	"flyer_builder/pkg/utils/validation"
)

func setupRoutes(app *fiber.App, sessions *store.Sessions, cfg *config.Config) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", middleware.Session(sessions, cfg.Session.TTL))

	// Property form routes
	property := api.Group("/property")
	property.Get("/", controller.GetProperty)
	property.Put("/", controller.UpdateProperty)
	property.Delete("/", controller.ResetProperty)
	property.Post("/validate", controller.ValidateProperty)
	property.Post("/images", middleware.CheckImageLimit(), controller.UploadPropertyImages)
	property.Delete("/images/:index", controller.DeletePropertyImage)

	// Agent media routes
	agent := api.Group("/agent")
	agent.Post("/photo", controller.UploadAgentPhoto)
	agent.Delete("/photo", controller.DeleteAgentPhoto)
	agent.Post("/qr", controller.UploadAgentQR)
	agent.Delete("/qr", controller.DeleteAgentQR)
	agent.Post("/qr/generate", controller.GenerateAgentQR)

	// Flyer routes
	api.Get("/templates", controller.GetTemplates)
	flyerGroup := api.Group("/flyer")
	flyerGroup.Get("/layout", controller.GetLayout)
	flyerGroup.Get("/preview", controller.GetPreview)
	flyerGroup.Post("/export", controller.ExportFlyer)

	// Public contact page
	api.Get("/contact", controller.GetContact)

	api.Delete("/session", controller.EndSession)
}

func buildSinks(ctx context.Context, cfg *config.Config) ([]export.Sink, []cron.Pruner) {
	var sinks []export.Sink
	var pruners []cron.Pruner

	if cfg.Export.Dir != "" {
		local, err := export.NewLocalSink(cfg.Export.Dir)
		if err != nil {
			logger.Log.Fatalf("Could not prepare export dir: %v", err)
		}
		sinks = append(sinks, local)
		pruners = append(pruners, cron.DirPruner{Dir: cfg.Export.Dir})
		logger.Log.WithField("dir", cfg.Export.Dir).Info("Exports are kept on disk")
	}

	if cfg.R2.Enabled() {
		r2, err := cloudflare.New(ctx, cloudflare.Config{
			AccountID: cfg.R2.AccountID,
			AccessKey: cfg.R2.AccessKey,
			SecretKey: cfg.R2.SecretKey,
			Bucket:    cfg.R2.Bucket,
			PublicURL: cfg.R2.PublicURL,
		})
		if err != nil {
			logger.Log.Fatalf("Could not initialize R2 client: %v", err)
		}
		sinks = append(sinks, export.UploadSink{Uploader: r2})
		pruners = append(pruners, r2)
		logger.Log.WithField("bucket", cfg.R2.Bucket).Info("Exports are mirrored to R2")
	}
	return sinks, pruners
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.AppName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rasterizer, err := raster.New()
	if err != nil {
		logger.Log.Fatalf("Could not load fonts: %v", err)
	}

	sinks, pruners := buildSinks(ctx, cfg)
	opts := []export.Option{export.WithLogger(logger.Log)}
	for _, s := range sinks {
		opts = append(opts, export.WithSink(s))
	}
	exporter := export.New(rasterizer, document.NewPDFEncoder(cfg.Flyer.Brand, cfg.AppName), opts...)

	controller.InitPropertyController(validation.ParsePolicy(cfg.Flyer.ValidationPolicy))
	controller.InitUploadController(cfg.Upload.MaxImageSize)
	controller.InitFlyerController(flyer.NewRenderer(cfg.Flyer.Brand), exporter)
	controller.InitContactController(cfg.ContactURL)

	if len(pruners) > 0 {
		scheduler, err := cron.InitExportCleanupCron(cfg.Export.CleanupSchedule, cfg.Export.Retention, pruners...)
		if err != nil {
			logger.Log.Fatalf("Could not schedule export cleanup: %v", err)
		}
		defer scheduler.Stop()
	}

	sessions := store.NewSessions(cfg.Session.MaxSessions, cfg.Session.TTL)
	controller.InitSessionController(sessions)

	app := fiber.New(fiber.Config{
		AppName:   cfg.AppName,
		BodyLimit: int(cfg.Upload.MaxImageSize) * store.MaxImages,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				logger.Log.WithError(err).WithField("path", c.Path()).Error("Request failed")
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowCredentials: true,
	}))
	app.Use(middleware.Metrics())

	setupRoutes(app, sessions, cfg)

	go func() {
		<-ctx.Done()
		logger.Log.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Log.WithError(err).Error("Shutdown failed")
		}
	}()

	logger.Log.Infof("Server is running on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.Log.Fatal(err)
	}
}
