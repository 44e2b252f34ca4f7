package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvales/lingolog/internal/api"
	"github.com/mvales/lingolog/internal/config"
	"github.com/mvales/lingolog/internal/db"
	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/repository/sqlite"
	"github.com/mvales/lingolog/internal/services"
	"github.com/mvales/lingolog/internal/session"
	"github.com/mvales/lingolog/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("LingoLog Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("free_daily_review_limit=%d", cfg.FreeDailyReviewLimit)
	log.Debug("attempt_writer_count=%d", cfg.AttemptWriterCount)
	log.Debug("attempt_queue_size=%d", cfg.AttemptQueueSize)
	log.Debug("session_ttl_minutes=%d", cfg.SessionTTLMinutes)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	learnerRepo := sqlite.NewLearnerRepository(database.DB)
	diaryRepo := sqlite.NewDiaryRepository(database.DB)
	exerciseRepo := sqlite.NewExerciseRepository(database.DB)
	attemptRepo := sqlite.NewAttemptRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Best-effort attempt persistence channel
	attemptPool := worker.NewPool(cfg.AttemptWriterCount, cfg.AttemptQueueSize)
	persister := services.NewAttemptPersister(attemptPool, attemptRepo, nil)

	// Live sessions
	registry := session.NewRegistry(time.Duration(cfg.SessionTTLMinutes) * time.Minute)

	// Services
	learnerService := services.NewLearnerService(learnerRepo)
	diaryService := services.NewDiaryService(diaryRepo, exerciseRepo)
	exerciseService := services.NewExerciseService(exerciseRepo, attemptRepo)
	reviewService := services.NewReviewService(exerciseRepo, attemptRepo, registry, persister, cfg.FreeDailyReviewLimit, nil)
	statsService := services.NewStatsService(statsRepo)

	srv := api.NewServer(learnerService, diaryService, exerciseService, reviewService, statsService)

	ctx, cancel := context.WithCancel(context.Background())
	attemptPool.Start(ctx)
	registry.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain pending attempt writes before closing the database.
	log.Debug("stopping attempt writer pool")
	attemptPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("LingoLog Server Stopped")
	log.Info("===========================================")
}
