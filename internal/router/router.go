package router

import (
	"github.com/anonto42/high-five/backend/internal/handlers"
	"github.com/anonto42/high-five/backend/internal/mailer"
	"github.com/anonto42/high-five/backend/internal/middleware"
	"github.com/anonto42/high-five/backend/internal/models"
	"github.com/anonto42/high-five/backend/internal/nonce"
	"github.com/anonto42/high-five/backend/internal/repositories"
	"github.com/anonto42/high-five/backend/internal/services"
	"github.com/anonto42/high-five/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger zerolog.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	logger.Info().Msg("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// pusher may be nil when Firebase is not configured.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, pusher services.Pusher, cfg *config.Config, logger zerolog.Logger) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.HighFive{},
		&models.Notification{},
		&models.NotificationPreference{},
		&models.TermsDecision{},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to auto migrate models")
	}
	logger.Info().Msg("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	highFiveRepo := repositories.NewPostgresHighFiveRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	preferenceRepo := repositories.NewPostgresPreferenceRepository(pgdb)
	termsRepo := repositories.NewPostgresTermsRepository(pgdb)
	activityRepo := repositories.NewMongoActivityRepository(mgClient.Database("highfive"))

	// --- Mailer + nonce service ---
	var m mailer.Mailer = mailer.DisabledMailer{}
	if cfg.SMTPHost != "" {
		m = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		logger.Info().Msg("No SMTP host configured, email notifications disabled.")
	}
	nonces := nonce.NewService(cfg.JWTSecret)

	// --- Initialize Services ---
	notificationService := services.NewNotificationService(
		notificationRepo, preferenceRepo, userRepo, m, pusher, cfg.BaseURL, cfg.SiteName, logger)
	highFiveService := services.NewHighFiveService(
		highFiveRepo, activityRepo, userRepo, notificationService, cfg.HighFiveActivityDedup, logger)
	termsService := services.NewTermsService(termsRepo, activityRepo, userRepo, logger)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	logger.Info().Msg("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, highFiveRepo, notificationRepo, preferenceRepo, activityRepo)
	userHandler.RegisterProfileRoutes(api)
	api.GET("/users/search", userHandler.SearchUsers)
	logger.Info().Msg("User profile routes configured.")

	// Example component screens (high fives, terms)
	exampleHandler := handlers.NewExampleHandler(
		highFiveService, termsService, notificationService, activityRepo, userRepo, nonces)
	exampleHandler.RegisterExampleRoutes(api)
	logger.Info().Msg("Example component routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, notificationService, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	logger.Info().Msg("Notification routes configured.")

	// Settings routes
	settingsHandler := handlers.NewSettingsHandler(preferenceRepo)
	settingsHandler.RegisterSettingsRoutes(api)
	logger.Info().Msg("Settings routes configured.")

	logger.Info().Msg("All routes configured.")
}
