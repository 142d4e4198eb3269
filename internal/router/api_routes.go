package router

import (
	"noticegen-web/internal/config"
	"noticegen-web/internal/handler"
	"noticegen-web/internal/middleware"
	"noticegen-web/internal/repository"
	"noticegen-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	redis *redis.Client,
	cfg *config.Config,
) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	bankRepo := repository.NewBankRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg)
	excelService := service.NewExcelService()
	noticeService := service.NewNoticeService(noticeRepo, templateRepo, bankRepo, excelService, cfg)
	statsService := service.NewStatsService(statsRepo)

	// Initialize Asynq client (optional - only if Redis is available)
	var asynqClient *asynq.Client
	if redis != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	noticeHandler := handler.NewNoticeHandler(noticeRepo, noticeService, excelService, asynqClient, redis, cfg)
	templateHandler := handler.NewTemplateHandler(templateRepo, cfg)
	bankHandler := handler.NewBankHandler(bankRepo, noticeService, excelService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Public routes
	auth := router.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/logout", authHandler.Logout)

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(cfg))

	// Auth routes
	protected.Get("/auth/me", authHandler.Me)

	// Batch routes. Static paths are registered before /:batch_code so they
	// are not swallowed by the parameter route.
	batches := protected.Group("/batches")
	batches.Post("/upload", noticeHandler.UploadBatch)
	batches.Get("/", noticeHandler.GetBatches)
	batches.Get("/export", noticeHandler.ExportBatches)
	batches.Get("/template", noticeHandler.DownloadRecipientsTemplate)
	batches.Get("/error-report/:filename", noticeHandler.DownloadErrorReport)
	batches.Get("/:batch_code", noticeHandler.GetBatchDetail)
	batches.Get("/:batch_code/recipients", noticeHandler.GetRecipients)
	batches.Get("/:batch_code/notices", noticeHandler.GetNotices)
	batches.Get("/:batch_code/progress", noticeHandler.GetProgress)
	batches.Get("/:batch_code/archive", noticeHandler.DownloadArchive)
	batches.Post("/:batch_code/cancel", noticeHandler.CancelBatch)
	batches.Delete("/:batch_code", noticeHandler.DeleteBatch)

	// Notice routes
	protected.Get("/notices/:id/download", noticeHandler.DownloadNotice)

	// Template routes
	templates := protected.Group("/templates")
	templates.Get("/", templateHandler.GetTemplates)
	templates.Get("/:id/download", templateHandler.DownloadTemplate)
	templates.Post("/", middleware.AdminOnly(), templateHandler.UploadTemplate)
	templates.Put("/:id/default", middleware.AdminOnly(), templateHandler.SetDefaultTemplate)
	templates.Delete("/:id", middleware.AdminOnly(), templateHandler.DeleteTemplate)

	// Bank routes
	banks := protected.Group("/banks")
	banks.Get("/", bankHandler.GetBanks)
	banks.Get("/overrides", bankHandler.GetOverrides)
	banks.Post("/overrides", middleware.AdminOnly(), bankHandler.CreateOverride)
	banks.Post("/overrides/import", middleware.AdminOnly(), bankHandler.ImportOverrides)
	banks.Put("/overrides/:id", middleware.AdminOnly(), bankHandler.UpdateOverride)
	banks.Delete("/overrides/:id", middleware.AdminOnly(), bankHandler.DeleteOverride)

	// Stats routes
	stats := protected.Group("/stats")
	stats.Get("/summary", statsHandler.GetSummary)
	stats.Get("/banks", statsHandler.GetTopBanks)
}
