package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bed-admission-service/config"
	deliveryHttp "bed-admission-service/internal/delivery/http"
	"bed-admission-service/internal/delivery/http/handler"
	"bed-admission-service/internal/delivery/http/middleware"
	"bed-admission-service/internal/infrastructure/cache"
	"bed-admission-service/internal/infrastructure/database"
	"bed-admission-service/internal/observability/metrics"
	"bed-admission-service/internal/repository"
	"bed-admission-service/internal/service"
	"bed-admission-service/internal/usecase"
	"bed-admission-service/pkg/jwt"
	"bed-admission-service/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Reconciler  *service.BedReconciler
	Publisher   *service.RedisEventPublisher
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log := NewLogger(cfg.App.LogLevel)
	app.Log = log
	log.Info("Configuration loaded successfully")

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.App.Timezone, err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, log, loc.String())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	if err := database.Migrate(db, log); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize all layers
	app.initialize(loc)

	return app, nil
}

// NewLogger configures a JSON logrus logger at the given level, falling back to info
func NewLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
		log.Warnf("Unknown LOG_LEVEL %q, using info", level)
	}
	log.SetLevel(parsed)
	return log
}

// initialize wires repositories, services, usecases and the HTTP server
func (app *App) initialize(loc *time.Location) {
	cfg := app.Config
	log := app.Log
	db := app.DB

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bedMetrics := metrics.NewBedMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	bedRepo := repository.NewBedRepository()
	admissionRepo := repository.NewAdmissionRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	publisher := service.NewRedisEventPublisher(app.RedisClient, cfg.Events.Channel, cfg.Events.WebhookURL, log, bedMetrics)
	locker := service.NewRedisPatientLocker(app.RedisClient, cfg.Allocation.PatientLockTTL)
	reconciler := service.NewBedReconciler(db, log, bedRepo, admissionRepo, auditService, publisher, bedMetrics,
		cfg.Reconciler.Interval, cfg.Reconciler.Grace)
	app.Publisher = publisher
	app.Reconciler = reconciler

	// Initialize usecases
	bedUsecase := usecase.NewBedUsecase(db, log, bedRepo, auditService, publisher)
	admissionUsecase := usecase.NewAdmissionUsecase(db, log, bedRepo, admissionRepo, auditService, publisher, locker,
		bedMetrics, cfg.Allocation.MaxAttempts)
	analyticsUsecase := usecase.NewAnalyticsUsecase(db, log, bedRepo, admissionRepo, loc)
	reportUsecase := usecase.NewReportUsecase(db, log, bedRepo, admissionRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	sessionUsecase := usecase.NewSessionUsecase(db, log, app.RedisClient, auditService, cfg.JWT.RevocationTTL)

	// Initialize handlers
	bedHandler := handler.NewBedHandler(log, bedUsecase, analyticsUsecase, reportUsecase, customValidator)
	admissionHandler := handler.NewAdmissionHandler(log, admissionUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(log, auditLogUsecase)
	adminHandler := handler.NewAdminHandler(log, reconciler)
	sessionHandler := handler.NewSessionHandler(log, sessionUsecase)

	// Initialize middleware
	if cfg.App.IsDevelopment() {
		log.Warn("Development mode: requests without a token run as the dev admin")
	}
	authMiddleware := middleware.NewAuthMiddleware(jwtService, app.RedisClient, cfg.App.IsDevelopment())
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log, httpMetrics)

	// Initialize router
	router := deliveryHttp.NewRouter(
		bedHandler,
		admissionHandler,
		auditLogHandler,
		adminHandler,
		sessionHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	app.Reconciler.Start()

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Stop background workers before closing their connections
	app.Reconciler.Stop()
	app.Publisher.Close()

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
