package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/divyansh956/Aarohan/backend/config"
	"github.com/divyansh956/Aarohan/backend/routes"
	"github.com/divyansh956/Aarohan/backend/utils"

	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	// Initialize logger
	logger := utils.InitLogger(cfg)

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("error initializing database")
	}

	app := routes.NewApp(cfg, logger)
	routes.SetupRoutes(app, db, cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().Str("port", cfg.ServerPort).Msg("starting server")
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
