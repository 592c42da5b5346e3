package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"habit-tracker-go/internal/ai"
	"habit-tracker-go/internal/auth"
	"habit-tracker-go/internal/config"
	"habit-tracker-go/internal/database"
	httpserver "habit-tracker-go/internal/http"
	"habit-tracker-go/internal/models"
	"habit-tracker-go/internal/s3"
	"habit-tracker-go/internal/store"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.Habit{},
		&models.SubHabit{},
		&models.Check{},
		&models.Count{},
		&models.WeightUpdate{},
		&models.ActiveDay{},
		&models.Nugget{},
	); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	var verifier httpserver.TokenVerifier
	var userinfo httpserver.ProfileFetcher
	if cfg.Auth0Configured() {
		verifier = auth.NewVerifier(cfg.Auth0Domain, cfg.Auth0Audience, cfg.LogJWTClaims, logger)
		userinfo = auth.NewUserInfoClient(cfg.Auth0Domain,
			time.Duration(cfg.UserinfoTimeoutSec)*time.Second, logger)
	} else {
		// The server still starts so /health works, but every authenticated
		// route will reject requests.
		logger.Warn("AUTH0_DOMAIN or AUTH0_AUDIENCE not set")
	}

	var uploader httpserver.ObjectUploader
	if cfg.S3Configured() {
		up, err := s3.NewUploader(context.Background(), cfg)
		if err != nil {
			logger.Warn("s3 client initialization failed", zap.Error(err))
		} else {
			uploader = up
		}
	}

	r := httpserver.NewServer(cfg, logger, store.New(db), verifier, userinfo,
		ai.NewOpenAIClient(cfg), uploader)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
