package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"taskhub/internal/api"
	"taskhub/internal/app/service"
	"taskhub/internal/common/security"
	"taskhub/internal/domain/repository"
	"taskhub/internal/platform/cache"
	"taskhub/internal/platform/config"
	"taskhub/internal/platform/database"
	"time"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("service", "taskhub")))

	// 1. Load Configuration
	config.Load()
	slog.Info("Configuration loaded")

	// 2. Initialize JWT
	security.InitJWT()
	slog.Info("JWT initialized")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	database.Migrate()

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	taskRepo := repository.NewPgTaskRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	statsCache := cache.NewStatsCache(cache.RDB, config.AppConfig.StatsCacheTTL)
	taskService := service.NewTaskService(taskRepo, statsCache)
	userService := service.NewUserService(userRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, taskService, userService, userRepo)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	slog.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	slog.Info("Server stopped gracefully")
}
