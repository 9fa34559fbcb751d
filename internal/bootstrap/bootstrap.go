// Package bootstrap wires the stub server: config, logger, repositories, controllers and the router.
package bootstrap

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/researchconnect/internal/app/controllers"
	appRepos "github.com/yigit/researchconnect/internal/app/repositories"
	appRoutes "github.com/yigit/researchconnect/internal/app/routes"
	appServices "github.com/yigit/researchconnect/internal/app/services"
	"github.com/yigit/researchconnect/internal/config"
	appMiddleware "github.com/yigit/researchconnect/internal/middleware"
	pkgAuth "github.com/yigit/researchconnect/internal/pkg/auth"
	"github.com/yigit/researchconnect/internal/pkg/email"
	"github.com/yigit/researchconnect/internal/pkg/helpers"
	"github.com/yigit/researchconnect/internal/pkg/logger"
	"github.com/yigit/researchconnect/internal/pkg/metrics"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Mailer                email.EmailService
	AuthMiddleware        *appMiddleware.AuthMiddleware
	AuthController        *appControllers.AuthController
	ProjectController     *appControllers.ProjectController
	ApplicationController *appControllers.ApplicationController
	ProfileController     *appControllers.ProfileController
	RoadmapController     *appControllers.RoadmapController
	ProblemController     *appControllers.ProblemStatementController
	Registry              *prometheus.Registry
	Metrics               *metrics.ServerMetrics
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}
	if err := cfg.ValidateServer(); err != nil {
		logger.Error().Err(err).Msg("Invalid server configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.FromSettings(cfg.Logging.Level, cfg.Logging.Format, os.Stdout))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("failed to setup dependencies: JWT secret is empty")
	}
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	baseURL := "http://localhost:" + cfg.Server.Port
	deps.Mailer = email.NewLogEmailService(baseURL, lgr.With().Str("component", "email").Logger())

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Metrics = metrics.NewServerMetrics(deps.Registry)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Repos, deps.JWTService, deps.Mailer, lgr)
	deps.ProjectController = appControllers.NewProjectController(deps.Repos, lgr)
	deps.ApplicationController = appControllers.NewApplicationController(deps.Repos, deps.Mailer, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.Repos, appServices.NewRecommendationService(), lgr)
	cooldown := appMiddleware.NewCooldown(helpers.ParseDuration(cfg.Server.RoadmapCooldown, 0))
	deps.RoadmapController = appControllers.NewRoadmapController(deps.Repos, appServices.NewRoadmapService(), cooldown, lgr)
	deps.ProblemController = appControllers.NewProblemStatementController(deps.Repos, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.CORS(cfg.AllowedOrigins()),
		appMiddleware.RequestLogger(lgr, deps.Metrics),
	)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProjectController,
		deps.ApplicationController,
		deps.ProfileController,
		deps.RoadmapController,
		deps.ProblemController,
		deps.AuthMiddleware,
	)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}
