package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Chintnn/walkability-pathfinder/internal/config"
	"github.com/Chintnn/walkability-pathfinder/internal/infrastructure/overpass"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/logger"
	"github.com/Chintnn/walkability-pathfinder/internal/repository/cache"
	"github.com/Chintnn/walkability-pathfinder/internal/repository/postgres"
	redisRepo "github.com/Chintnn/walkability-pathfinder/internal/repository/redis"
	"github.com/Chintnn/walkability-pathfinder/internal/usecase"
	"github.com/Chintnn/walkability-pathfinder/internal/worker"
	"github.com/Chintnn/walkability-pathfinder/internal/worker/analysis"
	"github.com/Chintnn/walkability-pathfinder/internal/worker/sweeper"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "walkability-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Walkability Analysis Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.String("overpass_url", cfg.Overpass.URL),
		zap.Duration("stale_timeout", cfg.Analysis.StaleTimeout),
		zap.String("sweep_schedule", cfg.Analysis.SweepSchedule))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	areaRepo := postgres.NewAreaRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	featureRepo := postgres.NewFeatureRepository(db)
	analysisRepo := postgres.NewAnalysisRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	osmRepo := overpass.NewOverpassClient(&cfg.Overpass, log)

	// 6. Initialize use cases
	extractionUC := usecase.NewExtractionUseCase(areaRepo, taskRepo, featureRepo, osmRepo, streamRepo, log)
	scoringUC := usecase.NewScoringUseCase(areaRepo, taskRepo, featureRepo, analysisRepo, log)
	taskUC := usecase.NewTaskUseCase(taskRepo, log)

	// 7. Initialize workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(analysis.NewExtractionWorker(streamRepo, extractionUC, cfg.Worker.ConsumerGroup, cfg.Worker.BatchSize, log))
	workerManager.Register(analysis.NewScoringWorker(streamRepo, scoringUC, cfg.Worker.ConsumerGroup, cfg.Worker.BatchSize, log))
	workerManager.Register(sweeper.NewSweeper(taskUC, cfg.Analysis.SweepSchedule, cfg.Analysis.StaleTimeout, log))

	// 8. Start workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
