package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/lockersys/internal/app/controllers"
	appJobs "github.com/yigit/lockersys/internal/app/jobs"
	appMigrations "github.com/yigit/lockersys/internal/app/migrations"
	"github.com/yigit/lockersys/internal/app/models"
	appRepos "github.com/yigit/lockersys/internal/app/repositories"
	"github.com/yigit/lockersys/internal/app/repositories/memory"
	"github.com/yigit/lockersys/internal/app/repositories/postgres"
	appRoutes "github.com/yigit/lockersys/internal/app/routes"
	appServices "github.com/yigit/lockersys/internal/app/services"
	"github.com/yigit/lockersys/internal/config"
	"github.com/yigit/lockersys/internal/db"
	appMiddleware "github.com/yigit/lockersys/internal/middleware"
	pkgAuth "github.com/yigit/lockersys/internal/pkg/auth"
	"github.com/yigit/lockersys/internal/pkg/cache"
	"github.com/yigit/lockersys/internal/pkg/helpers"
	"github.com/yigit/lockersys/internal/pkg/logger"
	"github.com/yigit/lockersys/internal/pkg/tokenstore"
	"github.com/yigit/lockersys/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	OverdueJob     *appJobs.OverdueJob
	Logger         zerolog.Logger
}

// App is a fully wired service: router, dependencies and the resources to release
type App struct {
	Config *config.Config
	Router *gin.Engine
	Deps   *Dependencies
	DB     *db.PostgresDB
	Redis  *redis.Client
	Logger zerolog.Logger
}

// Close releases the database pool and the redis client
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close redis client")
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLogger configures the global logger from cfg
func SetupLogger(cfg *config.Config) zerolog.Logger {
	return logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "text",
	})
}

// Build wires storage, cache, services and router from cfg
func Build(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: lgr}

	repos, database, err := SetupStorage(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}
	app.DB = database

	app.Redis, err = SetupRedis(ctx, cfg, lgr)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Deps, err = BuildDependencies(cfg, repos, app.Redis, lgr)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Router = SetupRouter(cfg, app.Deps, lgr)
	return app, nil
}

// SetupStorage opens the configured store, migrating and seeding it as needed.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, *db.PostgresDB, error) {
	var (
		repos    *appRepos.Repositories
		database *db.PostgresDB
	)

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		lgr.Info().Msg("Establishing database connection...")
		var err error
		database, err = db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}

		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database).Up(ctx); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			database.Close()
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
		repos = postgres.NewRepositories(database.Pool)
	default:
		lgr.Info().Msg("Using in-memory storage")
		repos = memory.NewRepositories()
	}

	if cfg.Storage.Seed {
		if err := seed.CreateDefaultData(ctx, repos, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}
	return repos, database, nil
}

// SetupRedis connects to redis when an address is configured. It returns nil
// when redis is disabled.
func SetupRedis(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*redis.Client, error) {
	if !cfg.RedisEnabled() {
		lgr.Info().Msg("Redis not configured, using in-process cache and session registry")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to reach redis")
		return nil, fmt.Errorf("redis: %w", err)
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to redis")
	return rdb, nil
}

// BuildDependencies initializes services, controllers and middleware.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, rdb *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	var (
		statsCache cache.Cache
		registry   tokenstore.Registry
	)
	if rdb != nil {
		statsCache = cache.NewRedisCache(rdb, "lockersys:cache:")
		registry = tokenstore.NewRedisRegistry(rdb)
	} else {
		statsCache = cache.NewMemoryCache()
		registry = tokenstore.NewMemoryRegistry()
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 12*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	dashboard := appServices.NewDashboardService(repos, statsCache, cfg.Cache.StatsTTL, logger.Component("dashboard"))
	authService, err := appServices.NewAuthService(
		[]appServices.Account{{
			Name:     cfg.Auth.AdminName,
			Email:    cfg.Auth.AdminEmail,
			Password: cfg.Auth.AdminPassword,
			Role:     models.RoleAdmin,
		}},
		deps.JWTService,
		registry,
		logger.Component("auth"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	deps.Services = &appServices.Services{
		Students:  appServices.NewStudentService(repos, dashboard),
		Lockers:   appServices.NewLockerService(repos, dashboard),
		Rentals:   appServices.NewRentalService(repos, dashboard),
		Dashboard: dashboard,
		Auth:      authService,
	}

	deps.OverdueJob = appJobs.NewOverdueJob(repos.Rentals, dashboard, logger.Component("jobs"))
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(authService)
	deps.Controllers = appRoutes.Controllers{
		Auth:      appControllers.NewAuthController(authService, lgr),
		Students:  appControllers.NewStudentController(deps.Services.Students),
		Lockers:   appControllers.NewLockerController(deps.Services.Lockers),
		Rentals:   appControllers.NewRentalController(deps.Services.Rentals),
		Dashboard: appControllers.NewDashboardController(dashboard),
	}
	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery(lgr), appMiddleware.RequestLogger(lgr))
	if len(cfg.CORS.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": cfg.Storage.Driver})
	})

	return router
}
