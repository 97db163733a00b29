package main

// @title Walkability Pathfinder API
// @version 1.0.0
// @description Сервис анализа пешеходной доступности городских районов по данным OpenStreetMap.
// @description
// @description Клиент отправляет полигон, получает task_id и опрашивает задачу, пока она не станет терминальной.
// @description Затем читает кластеры дорожной сети с оценкой walkability и приоритизированные рекомендации.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Chintnn/walkability-pathfinder/docs"
	"github.com/Chintnn/walkability-pathfinder/internal/config"
	httpDelivery "github.com/Chintnn/walkability-pathfinder/internal/delivery/http"
	"github.com/Chintnn/walkability-pathfinder/internal/delivery/http/handler"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/logger"
	"github.com/Chintnn/walkability-pathfinder/internal/repository/cache"
	"github.com/Chintnn/walkability-pathfinder/internal/repository/postgres"
	redisRepo "github.com/Chintnn/walkability-pathfinder/internal/repository/redis"
	"github.com/Chintnn/walkability-pathfinder/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "walkability-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Walkability Pathfinder API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Float64("max_area_km2", cfg.Analysis.MaxAreaKm2),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	areaRepo := postgres.NewAreaRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	analysisRepo := postgres.NewAnalysisRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	cacheRepo := cache.NewCacheRepository(redisClient)

	// 7. Initialize use cases
	intakeUC := usecase.NewIntakeUseCase(areaRepo, taskRepo, streamRepo, log, cfg.Analysis.MaxAreaKm2)
	taskUC := usecase.NewTaskUseCase(taskRepo, log)
	resultsUC := usecase.NewResultsUseCase(areaRepo, analysisRepo, cacheRepo, log, cfg.Cache.ResultsCacheTTL)

	// 8. Initialize HTTP handlers
	pollAfterSec := int(cfg.Analysis.PollInterval / time.Second)
	if pollAfterSec < 1 {
		pollAfterSec = 1
	}
	analysisHandler := handler.NewAnalysisHandler(intakeUC, taskUC, resultsUC, pollAfterSec, log)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthChecker{
		"postgres": db,
		"redis":    redisClient,
	}, log)

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, analysisHandler, healthHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully", zap.String("address", cfg.GetServerAddr()))

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
