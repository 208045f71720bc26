package main

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/boardhq/board/internal/router"
	"github.com/boardhq/board/pkg/config"
	"github.com/boardhq/board/pkg/logger"
	"github.com/boardhq/board/pkg/validators"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	if err := router.SetupRoutes(e, db.Postgres, db.Mongo, cfg, log); err != nil {
		log.Fatal("failed to set up routes", zap.Error(err))
	}

	log.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
