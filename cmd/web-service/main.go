package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arpansethi30/finagent/internal/web/config"
	delivery "github.com/arpansethi30/finagent/internal/web/delivery/http"
	"github.com/arpansethi30/finagent/internal/web/repository"
	"github.com/arpansethi30/finagent/internal/web/service"
	"github.com/arpansethi30/finagent/pkg/logger"
	"github.com/arpansethi30/finagent/pkg/postgres"
	"github.com/arpansethi30/finagent/pkg/redis"
	"github.com/arpansethi30/finagent/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the web service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Web Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis response cache; a missing host disables caching.
	var cacheRepo repository.CacheRepository
	if cfg.Redis.Host != "" {
		redisCfg := redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		}
		redisClient, err := redis.NewClient(redisCfg)
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		cacheRepo = repository.NewRedisCacheRepository(redisClient.Client)
	} else {
		appLogger.Warn("Redis not configured, response caching disabled")
	}

	// Initialize Telegram health alerts when configured.
	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	analyzerRepo := repository.NewAnalyzerRepository(cfg, appLogger)
	recordRepo := repository.NewAnalysisRecordRepository(db.DB)

	// Initialize services
	analysisSvc := service.NewAnalysisService(analyzerRepo, cacheRepo, recordRepo, cfg, appLogger)
	historySvc := service.NewHistoryService(recordRepo, cfg.History.MaxListLimit, appLogger)
	healthSvc := service.NewHealthService(analyzerRepo, notifier, cfg, appLogger)

	// Start the backend health monitor
	if err := healthSvc.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start health monitor", logger.ErrorField(err))
	}
	defer healthSvc.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	renderer, err := delivery.NewTemplateRenderer()
	if err != nil {
		appLogger.Fatal("Failed to parse templates", logger.ErrorField(err))
	}
	e.Renderer = renderer

	validator, err := delivery.NewRequestValidator()
	if err != nil {
		appLogger.Fatal("Failed to build request validator", logger.ErrorField(err))
	}
	e.Validator = validator

	// Initialize handlers and routes
	pageHandler := delivery.NewPageHandler(analysisSvc, healthSvc, historySvc, appLogger)
	pageHandler.RegisterRoutes(e)

	healthHandler := delivery.NewHealthHandler(healthSvc)
	e.GET("/healthz", healthHandler.Healthz)

	apiV1 := e.Group("/api/v1")

	analysisHandler := delivery.NewAnalysisHandler(analysisSvc, appLogger)
	analysisHandler.RegisterRoutes(apiV1)

	historyHandler := delivery.NewHistoryHandler(historySvc, appLogger)
	historyHandler.RegisterRoutes(apiV1)

	healthHandler.RegisterRoutes(apiV1)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "web-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-web.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing web-service CLI: %s\n", err)
		os.Exit(1)
	}
}
