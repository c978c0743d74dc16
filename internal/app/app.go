package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"formeo_backend/internal/config"
	"formeo_backend/internal/controller"
	"formeo_backend/internal/repository"
	"formeo_backend/internal/service"
	"formeo_backend/pkg/database"
	"formeo_backend/pkg/logger"
	"formeo_backend/pkg/monitoring"
	"formeo_backend/pkg/security"
	"formeo_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	form       *repository.FormRepository
	submission *repository.SubmissionRepository
	catalog    *repository.CatalogRepository
	enrollment *repository.EnrollmentRepository
	quote      *repository.QuoteRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	form       *service.FormService
	assessment *service.AssessmentService
	catalog    *service.CatalogService
	enrollment *service.EnrollmentService
	quote      *service.QuoteService
}

type controllers struct {
	auth       *controller.AuthController
	assessment *controller.AssessmentController
	formAdmin  *controller.FormAdminController
	catalog    *controller.CatalogController
	enrollment *controller.EnrollmentController
	quote      *controller.QuoteController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig distributes a reloaded config to registered listeners. Values
// read once at startup (ports, DSNs) keep their old settings.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		form:       repository.NewFormRepository(db),
		submission: repository.NewSubmissionRepository(db),
		catalog:    repository.NewCatalogRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		quote:      repository.NewQuoteRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.form = service.NewFormService(repos.form, repos.submission)
	s.assessment = service.NewAssessmentService(s.form, rdb, cfg)
	s.catalog = service.NewCatalogService(repos.catalog)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.catalog)
	s.quote = service.NewQuoteService(repos.quote, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		assessment: controller.NewAssessmentController(s.assessment),
		formAdmin:  controller.NewFormAdminController(s.form),
		catalog:    controller.NewCatalogController(s.catalog),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		quote:      controller.NewQuoteController(s.quote),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("formeo-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
