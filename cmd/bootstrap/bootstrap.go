package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-api/config"
	deliveryHttp "clinic-api/internal/delivery/http"
	"clinic-api/internal/delivery/http/handler"
	"clinic-api/internal/delivery/http/middleware"
	"clinic-api/internal/domain/entity"
	"clinic-api/internal/infrastructure/cache"
	"clinic-api/internal/infrastructure/database"
	"clinic-api/internal/repository"
	"clinic-api/internal/usecase"
	"clinic-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(configPath string) (*App, error) {
	app := &App{}

	cfg, err := Configure(configPath)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.DB, database.Up); err != nil {
			return nil, err
		}
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Redis only backs the rate limiter
	if cfg.RateLimit.Enabled() {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.RedisClient = redisClient
	}

	app.Server = initializeServer(cfg, db, app.RedisClient)

	return app, nil
}

// Configure loads configuration and sets up the global logger from it.
func Configure(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogger(cfg.Log)
	logrus.Info("Configuration loaded successfully")
	return cfg, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// newResource wires repository, usecase and handler for one entity.
func newResource[E any, P entity.Record[E]](
	path string,
	db *gorm.DB,
	log *logrus.Logger,
	v *validator.CustomValidator,
	policy usecase.Policy[E],
) deliveryHttp.Resource {
	repo := repository.NewCrudRepository[E](db)
	uc := usecase.NewCrudUsecase[E, P](log, repo, policy)
	return deliveryHttp.Resource{
		Path:    path,
		Handler: handler.NewCrudHandler(uc, v, policy.Name),
	}
}

func buildResources(db *gorm.DB, log *logrus.Logger, v *validator.CustomValidator) []deliveryHttp.Resource {
	return []deliveryHttp.Resource{
		newResource[entity.UserType]("tipousuarios", db, log, v, usecase.UserTypePolicy()),
		newResource[entity.User]("usuarios", db, log, v, usecase.UserPolicy()),
		newResource[entity.Specialty]("especialidades", db, log, v, usecase.SpecialtyPolicy()),
		newResource[entity.Doctor]("medicos", db, log, v, usecase.DoctorPolicy()),
		newResource[entity.Patient]("pacientes", db, log, v, usecase.PatientPolicy()),
		newResource[entity.Appointment]("consultas", db, log, v, usecase.AppointmentPolicy(time.Now)),
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	log := logrus.StandardLogger()
	customValidator := validator.NewValidator()

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, log, cfg.RateLimit.PerMinute, time.Minute, cfg.RateLimit.TrustProxy)
		logrus.Infof("Rate limiting enabled: %s", rateLimiter)
	}

	router := deliveryHttp.NewRouter(
		buildResources(db, log, customValidator),
		middleware.NewRequestLogger(log),
		middleware.NewRecovery(log),
		middleware.NewCORSMiddleware(),
		rateLimiter,
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	return app.waitForShutdown(errCh)
}

// waitForShutdown blocks until an interrupt signal is received or the server fails
func (app *App) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.App.ShutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
