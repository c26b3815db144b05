package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/campuslink/internal/app/controllers"
	appMigrations "github.com/yigit/campuslink/internal/app/migrations"
	appRepos "github.com/yigit/campuslink/internal/app/repositories"
	"github.com/yigit/campuslink/internal/app/repositories/memory"
	appRoutes "github.com/yigit/campuslink/internal/app/routes"
	appServices "github.com/yigit/campuslink/internal/app/services"
	"github.com/yigit/campuslink/internal/config"
	"github.com/yigit/campuslink/internal/db"
	appMiddleware "github.com/yigit/campuslink/internal/middleware"
	pkgAuth "github.com/yigit/campuslink/internal/pkg/auth"
	"github.com/yigit/campuslink/internal/pkg/helpers"
	"github.com/yigit/campuslink/internal/pkg/logger"
	"github.com/yigit/campuslink/internal/pkg/websocket"
	"github.com/yigit/campuslink/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store          appRepos.Store
	Services       *appServices.Services
	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Metrics        *appMiddleware.Metrics
	Hub            *websocket.Hub
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH and ENV_FILE override the default file locations.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")
	envPath := config.GetEnv("ENV_FILE", ".env")

	cfg, err := config.LoadConfig(configPath, envPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured store. For postgres it connects, runs the
// migrations and returns a function that closes the pool.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (appRepos.Store, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using the in-memory store; data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := appMigrations.NewMigrator(database.Pool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return appRepos.NewPostgresStore(database), database.Close, nil
}

// BuildDependencies initializes services, middleware and controllers on top of store
func BuildDependencies(cfg *config.Config, store appRepos.Store, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Store: store, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.Services = appServices.NewServices(store, deps.JWTService, logger.Component(lgr, "services"))
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.Metrics = appMiddleware.NewMetrics()
	if stats, ok := store.(interface{ Collector() prometheus.Collector }); ok {
		if err := deps.Metrics.Register(stats.Collector()); err != nil {
			lgr.Warn().Err(err).Msg("Failed to register store metrics")
		}
	}
	deps.Hub = websocket.NewHub(logger.Component(lgr, "live"))
	deps.Services.Announcement.SetNotifier(deps.Hub)

	// the memory store has nothing to ping
	var pinger appControllers.Pinger
	if p, ok := store.(appControllers.Pinger); ok {
		pinger = p
	}

	svc := deps.Services
	deps.Controllers = appRoutes.Controllers{
		Health:       appControllers.NewHealthController(pinger, lgr),
		Auth:         appControllers.NewAuthController(svc.Auth, svc.Admin),
		Department:   appControllers.NewDepartmentController(svc.Department, svc.Semester),
		Teacher:      appControllers.NewTeacherController(svc.Teacher),
		Student:      appControllers.NewStudentController(svc.Student),
		Paper:        appControllers.NewPaperController(svc.Paper),
		TimeSchedule: appControllers.NewTimeScheduleController(svc.TimeSchedule),
		Internal:     appControllers.NewInternalController(svc.Internal),
		Announcement: appControllers.NewAnnouncementController(svc.Announcement),
		Live:         websocket.NewHandler(deps.Hub, logger.Component(lgr, "live")),
	}
	return deps
}

// SeedData creates the default administrator
func SeedData(ctx context.Context, cfg *config.Config, deps *Dependencies) error {
	return seed.CreateDefaultAdmin(ctx, deps.Services.Admin, cfg, deps.Logger)
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production", "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("mode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(lgr),
		deps.Metrics.Middleware(),
	)
	router.GET("/metrics", deps.Metrics.Handler())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	return router
}
