package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-comments-api/internal/config"
	"github.com/BuzzLyutic/task-comments-api/internal/handler"
	"github.com/BuzzLyutic/task-comments-api/internal/repo"
	"github.com/BuzzLyutic/task-comments-api/internal/service"
)

const seedTaskID = 1

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Подключаем логгер
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Подключаем БД и создаем схему
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := repo.Open(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal("Failed to open the Database", zap.Error(err)) // дальнейшая работа теряет смысл
	}
	defer store.Close()
	logger.Info("Successfully connected to the Database!", zap.String("driver", string(cfg.Driver())))

	taskService := service.NewTaskService(store.Tasks)
	commentService := service.NewCommentService(store.Tasks, store.Comments)

	seeded, err := taskService.EnsureSeed(context.Background(), seedTaskID, cfg.SeedTitle)
	if err != nil {
		logger.Fatal("Failed to seed initial task", zap.Error(err))
	}
	if seeded {
		logger.Info("Seeded initial task", zap.Int64("task_id", seedTaskID), zap.String("title", cfg.SeedTitle))
	}

	r := handler.NewRouter(handler.RouterDeps{
		Tasks:          handler.NewTaskHandler(taskService, logger),
		Comments:       handler.NewCommentHandler(commentService, logger),
		DB:             store,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
		return
	}
	logger.Info("Server stopped successfully!")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	if lvl.Level() == zap.DebugLevel {
		return zap.NewDevelopment()
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}
