package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatarra-market/internal/adapters/http/middleware"
	"chatarra-market/internal/adapters/http/routes"
	"chatarra-market/internal/adapters/persistence/models"
	"chatarra-market/internal/adapters/persistence/repositories"
	"chatarra-market/internal/adapters/storage"
	"chatarra-market/internal/config"
	"chatarra-market/internal/core/services"
	"chatarra-market/internal/pkg/cache"
	"chatarra-market/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// chatarra serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// boot loads config, installs the logger and opens the database
func boot() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	logger.New(logger.Config{Mode: cfg.AppMode, Level: cfg.LogLevel})

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func serve() error {
	cfg, db, err := boot()
	if err != nil {
		return err
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info().Msg("database migration completed")

	ctx := context.Background()
	if err := config.NewSeeder(db, cfg.Admin).Run(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to seed admin")
	}

	rdb := cache.New(cfg.Redis)
	defer rdb.Close()
	if err := rdb.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, cache calls will fail open")
	}

	disk, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	log.Info().Str("driver", disk.Driver()).Msg("image storage ready")

	cronService := services.NewCronService(repositories.NewRefreshTokenRepository(db), cfg.Cron.TokenCleanup)
	if err := cronService.Start(); err != nil {
		return err
	}
	defer cronService.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "Chatarra Market API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    6 * 1024 * 1024, // image uploads are capped at 5 MB
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, routes.Deps{
		DB:      db,
		Config:  cfg,
		Cache:   rdb,
		Storage: disk,
	})

	go gracefulShutdown(app)

	log.Info().Str("port", cfg.Port).Str("mode", cfg.AppMode).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped gracefully")
}
