package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"landing-builder-backend/internal/background"
	"landing-builder-backend/internal/config"
	"landing-builder-backend/internal/handlers"
	"landing-builder-backend/internal/middleware"
	"landing-builder-backend/internal/models"
	"landing-builder-backend/internal/repository"
	"landing-builder-backend/internal/service"
	"landing-builder-backend/internal/storage"
	"landing-builder-backend/pkg/cache"
	"landing-builder-backend/pkg/logger"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache
	media storage.MediaStore

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	workers      *background.Pool
	adminLimiter *middleware.RateLimiter
	stopLimiter  context.CancelFunc

	router *gin.Engine
	server *http.Server
}

type repositoryContainer struct {
	LandingPage repository.LandingPageRepository
}

type serviceContainer struct {
	LandingPage *service.LandingPageService
	Upload      *service.UploadService
}

type handlerContainer struct {
	LandingPage *handlers.LandingPageHandler
	Upload      *handlers.UploadHandler
}

func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	app.initCache(ctx)

	if err := app.initMediaStore(ctx); err != nil {
		return nil, err
	}

	app.initRepositories()
	app.initWorkers()
	app.initServices()
	app.initHandlers()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":          a.cfg.Port,
		"environment":   a.cfg.Environment,
		"media_storage": a.cfg.MediaStorage,
		"cache":         a.cache.Enabled(),
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.workers != nil {
		if err := a.workers.Shutdown(ctx); err != nil {
			logger.Error(err, "Background workers did not stop in time", nil)
		}
	}

	if a.stopLimiter != nil {
		a.stopLimiter()
		a.adminLimiter.Wait()
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(&models.LandingPage{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_landing_pages_published_slug ON landing_pages(slug) WHERE published = true",
		"CREATE INDEX IF NOT EXISTS idx_landing_pages_updated_at ON landing_pages(updated_at DESC)",
	}
	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	logger.Info("Database migration completed", nil)
	return nil
}

// initCache connects to Redis when enabled. An unreachable Redis degrades to
// an uncached service instead of failing startup.
func (a *Application) initCache(ctx context.Context) {
	enabled := a.cfg.EnableRedis && a.cfg.EnableCache
	c, err := cache.NewCache(a.cfg.RedisURL, enabled)
	if err != nil {
		logger.Warn("Redis unavailable, rendering without cache", map[string]interface{}{
			"redis_url": a.cfg.RedisURL,
			"error":     err.Error(),
		})
		c, _ = cache.NewCache("", false)
	}

	// HTML rendered by a previous build may not match the current renderer.
	if err := c.InvalidateLandingPages(ctx); err != nil {
		logger.Warn("Failed to clear cached landing pages", map[string]interface{}{"error": err.Error()})
	}
	a.cache = c
}

func (a *Application) initMediaStore(ctx context.Context) error {
	if a.cfg.UsesS3() {
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:       a.cfg.S3Bucket,
			Region:       a.cfg.S3Region,
			Endpoint:     a.cfg.S3Endpoint,
			AccessKey:    a.cfg.S3AccessKey,
			SecretKey:    a.cfg.S3SecretKey,
			UsePathStyle: a.cfg.S3UsePathStyle,
			PublicURL:    a.cfg.S3PublicURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize S3 media store: %w", err)
		}
		a.media = store
		return nil
	}

	store, err := storage.NewLocalStore(a.cfg.UploadDir, "/uploads")
	if err != nil {
		return fmt.Errorf("failed to initialize upload directory: %w", err)
	}
	a.media = store
	return nil
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		LandingPage: repository.NewLandingPageRepository(a.db),
	}
}

// initWorkers starts the pool that re-renders published pages into the
// cache. Without a cache there is nothing to warm.
func (a *Application) initWorkers() {
	if !a.cache.Enabled() || !a.cfg.EnableWarmup {
		return
	}
	a.workers = background.NewPool(a.cfg.BackgroundWorkers, 256)
	a.workers.Start(context.Background())
}

func (a *Application) initServices() {
	uploads := service.NewUploadService(a.media, a.cfg.MaxUploadSize)
	ttl := time.Duration(a.cfg.RenderCacheTTL) * time.Second

	pages := service.NewLandingPageService(a.repositories.LandingPage, a.cache, uploads, ttl)
	if a.workers != nil {
		pages.SetScheduler(a.workers)
	}

	a.services = serviceContainer{
		Upload:      uploads,
		LandingPage: pages,
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		LandingPage: handlers.NewLandingPageHandler(a.services.LandingPage),
		Upload:      handlers.NewUploadHandler(a.services.Upload),
	}
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = 8 << 20

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.Metrics())
	}
	router.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		MediaOrigins:   []string{a.cfg.S3PublicURL},
		FrameAncestors: a.cfg.CORSOrigins,
	}))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if !a.cfg.UsesS3() {
		uploads := router.Group("/uploads")
		uploads.Use(middleware.UploadsProtection())
		uploads.Static("/", a.cfg.UploadDir)
	}

	pages := a.handlers.LandingPage

	router.GET("/landing/:slug", pages.RenderPublic)
	router.GET("/api/landing/:slug", pages.PublicContent)

	limiterCtx, stop := context.WithCancel(context.Background())
	a.adminLimiter = middleware.NewRateLimiter(limiterCtx, a.cfg.AdminRateLimit, a.cfg.AdminRateBurst)
	a.stopLimiter = stop

	admin := router.Group("/api/admin")
	admin.Use(middleware.RateLimit(a.adminLimiter))
	{
		admin.POST("/uploads", a.handlers.Upload.Upload)

		landing := admin.Group("/landing-pages")
		{
			landing.GET("/builder/config", pages.BuilderConfig)
			landing.GET("/by-slug/:slug", pages.GetBySlug)

			landing.GET("", pages.List)
			landing.POST("", pages.Create)
			landing.GET("/:id", pages.GetByID)
			landing.PUT("/:id", pages.Update)
			landing.DELETE("/:id", pages.Delete)
			landing.POST("/:id/publish", pages.Publish)
			landing.POST("/:id/unpublish", pages.Unpublish)
			landing.POST("/:id/duplicate", pages.Duplicate)
			landing.GET("/:id/preview", pages.Preview)

			template := landing.Group("/:id/template")
			{
				template.PATCH("/sections/:section", pages.UpdateSection)
				template.PUT("/colors/:slot", pages.UpdateColor)
				template.POST("/lists/:section/:list", pages.AppendItem)
				template.PATCH("/lists/:section/:list/:index", pages.UpdateItem)
				template.DELETE("/lists/:section/:list/:index", pages.RemoveItem)
				template.PUT("/media", pages.SetMedia)
				template.PUT("/media-settings", pages.SetMediaOptions)
				template.POST("/media/upload", pages.UploadMedia)
				template.POST("/reorder", pages.ReorderSections)
				template.PUT("/floating-button", pages.SetFloatingButton)
			}

			document := landing.Group("/:id/document")
			{
				document.POST("/nodes", pages.InsertNode)
				document.PATCH("/nodes", pages.UpdateNodeAttrs)
				document.DELETE("/nodes", pages.DeleteNode)
				document.POST("/convert-single-column", pages.ConvertToSingleColumn)
				document.PUT("/settings", pages.UpdateSettings)
				document.POST("/markdown", pages.ImportMarkdown)
			}
		}
	}

	a.router = router
}
