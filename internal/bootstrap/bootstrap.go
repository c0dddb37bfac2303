package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/codewisehub/codewisehub-backend/internal/app/controllers"
	appMigrations "github.com/codewisehub/codewisehub-backend/internal/app/migrations"
	appRepos "github.com/codewisehub/codewisehub-backend/internal/app/repositories"
	appRoutes "github.com/codewisehub/codewisehub-backend/internal/app/routes"
	appServices "github.com/codewisehub/codewisehub-backend/internal/app/services"
	"github.com/codewisehub/codewisehub-backend/internal/config"
	"github.com/codewisehub/codewisehub-backend/internal/db"
	appMiddleware "github.com/codewisehub/codewisehub-backend/internal/middleware"
	pkgAuth "github.com/codewisehub/codewisehub-backend/internal/pkg/auth"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/logger"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/validation"
	"github.com/codewisehub/codewisehub-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos              *appRepos.Repositories
	TokenService       *pkgAuth.TokenService
	SessionService     *appServices.SessionService
	AuthService        *appServices.AuthService
	UserService        *appServices.UserService
	SchoolService      *appServices.SchoolService
	FamilyService      *appServices.FamilyService
	CatalogService     *appServices.CatalogService
	ProgressService    *appServices.ProgressService
	AuthController     *appControllers.AuthController
	UserController     *appControllers.UserController
	SchoolController   *appControllers.SchoolController
	FamilyController   *appControllers.FamilyController
	CatalogController  *appControllers.CatalogController
	ProgressController *appControllers.ProgressController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Missing seed data is recoverable; admins can create it by hand.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	sessionTTL, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	deps.TokenService = pkgAuth.NewTokenService(pkgAuth.TokenConfig{
		SecretKey:   cfg.Session.Secret,
		SessionTTL:  sessionTTL,
		TokenIssuer: cfg.Session.Issuer,
	})

	deps.SessionService = appServices.NewSessionService(
		deps.Repos.Session, deps.Repos.User, deps.TokenService, cfg.Policy, lgr)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.User, deps.Repos.School, deps.Repos.Package, deps.SessionService, cfg.Policy, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.User, deps.Repos.Package, lgr)
	deps.SchoolService = appServices.NewSchoolService(deps.Repos.School, deps.Repos.User, cfg.Policy, lgr)
	deps.FamilyService = appServices.NewFamilyService(deps.Repos.Relation, deps.Repos.User, cfg.Policy, lgr)
	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.Package, deps.Repos.Course, deps.Repos.Robotics, lgr)
	deps.ProgressService = appServices.NewProgressService(
		deps.Repos.Progress, deps.Repos.Course, deps.Repos.Relation, lgr)

	cookie := appControllers.SessionCookieConfig{
		Name:   cfg.Session.CookieName,
		MaxAge: sessionTTL,
		Secure: cfg.IsProduction(),
	}

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, cookie, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.SchoolController = appControllers.NewSchoolController(deps.SchoolService, lgr)
	deps.FamilyController = appControllers.NewFamilyController(deps.FamilyService, lgr)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService, lgr)
	deps.ProgressController = appControllers.NewProgressController(deps.ProgressService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.SessionService, cfg.Session.CookieName)

	return deps, nil
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.RegisterCustomRules(v); err != nil {
			lgr.Error().Err(err).Msg("Failed to register custom validation rules")
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.CORS(cfg.Server.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.UserController,
		deps.SchoolController,
		deps.FamilyController,
		deps.CatalogController,
		deps.ProgressController,
		deps.AuthMiddleware,
	)

	lgr.Info().Msg("Router configured")
	return router
}
