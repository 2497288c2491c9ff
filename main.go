package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/toptours/api-go/config"
	"github.com/toptours/api-go/routes"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using process environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration is invalid", "error", err)
		os.Exit(1)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(1)
	}

	cache, err := config.InitRedis(cfg)
	if err != nil {
		logger.Error("redis init failed", "error", err)
		os.Exit(1)
	}

	r := gin.Default()

	routes.SetupRoutes(r, routes.Deps{
		DB:     db,
		Cfg:    cfg,
		Stripe: config.NewStripeClient(cfg),
		Viator: config.NewViatorClient(cfg),
		Cache:  cache,
		Mailer: config.NewMailer(cfg),
		Logger: logger,
	})

	logger.Info("starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
