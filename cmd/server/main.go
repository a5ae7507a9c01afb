package main

import (
	"context"
	"os"
	"time"

	"github.com/anonto42/high-five/backend/internal/push"
	"github.com/anonto42/high-five/backend/internal/router"
	"github.com/anonto42/high-five/backend/internal/services"
	"github.com/anonto42/high-five/backend/pkg/config"
	"github.com/anonto42/high-five/backend/pkg/firebase"
	"github.com/anonto42/high-five/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	log.Logger = logger

	cfg := config.Load()
	if cfg.Env == "production" {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		log.Logger = logger
	}

	// Initialize database connections (PostgreSQL and MongoDB)
	db, err := config.InitDB()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize databases")
	}
	defer db.CloseDB()

	// Firebase Cloud Messaging is optional; without credentials the push
	// channel stays disabled.
	var pusher services.Pusher
	if cfg.FirebaseCredentialsPath != "" {
		fbApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize Firebase")
		}
		pusher = push.NewFCMPusher(fbApp.MessagingClient)
		logger.Info().Msg("Firebase Cloud Messaging initialized.")
	} else {
		logger.Info().Msg("No Firebase credentials configured, push notifications disabled.")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e, logger)
	router.SetupRoutes(e, db.Postgres, db.Mongo, pusher, cfg, logger)

	logger.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped")
	}
}
