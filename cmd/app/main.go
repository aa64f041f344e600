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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-calendar-api/internal/auth"
	"github.com/BuzzLyutic/task-calendar-api/internal/config"
	"github.com/BuzzLyutic/task-calendar-api/internal/handler"
	"github.com/BuzzLyutic/task-calendar-api/internal/repo"
	"github.com/BuzzLyutic/task-calendar-api/internal/service"
	"github.com/BuzzLyutic/task-calendar-api/internal/watch"
	"github.com/BuzzLyutic/task-calendar-api/internal/worker"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	cfg := config.Load()

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to Database.")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping the Database.")
	}
	logger.Info("Successfully connected to the Database!")

	taskRepo := repo.NewTaskRepo(pool)
	userRepo := repo.NewUserRepo(pool)
	hub := watch.NewHub()

	authService := auth.NewService(userRepo, cfg.SessionTTL)
	taskService := service.NewTaskService(taskRepo, hub, cfg.Timezone)

	reminders := worker.NewPool(pool, logger, cfg.WorkerCount, cfg.ReminderInterval)
	reminders.Start(context.Background())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	handler.Register(r,
		authService,
		handler.NewAuthHandler(authService, logger),
		handler.NewTaskHandler(taskService, logger),
		handler.NewProfileHandler(taskService, authService, logger),
	)

	srv := http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: the SSE snapshot stream stays open indefinitely.
	}

	go func() {
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	reminders.Stop()
	logger.Info("Server stopped")
}
