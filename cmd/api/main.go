package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mindarch/studyplan/internal/api/handlers"
	"github.com/mindarch/studyplan/internal/api/router"
	"github.com/mindarch/studyplan/internal/config"
	"github.com/mindarch/studyplan/internal/domain/plan"
	"github.com/mindarch/studyplan/internal/pkg/logger"
	"github.com/mindarch/studyplan/internal/pkg/validator"
	"github.com/mindarch/studyplan/internal/providers"
	"github.com/mindarch/studyplan/internal/repository/sqlite"
	"github.com/mindarch/studyplan/internal/services"
	"github.com/mindarch/studyplan/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	log := logger.New(logCfg)
	logger.Init(logCfg)

	db, err := sqlite.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := sqlite.RunMigrations(db, migrations.GetFS()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := sqlite.NewUserRepository(db)
	planRepo := sqlite.NewPlanRepository(db)

	// Generation provider
	var generator plan.Generator
	switch cfg.AI.Provider {
	case "openai":
		generator = providers.NewOpenAIGenerator(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel)
	default:
		generator = providers.NewGeminiClient(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	}
	log.With("provider", generator.Name()).Info("Generation provider configured")

	// Services
	userService := services.NewUserService(userRepo, log, cfg.Auth.BCryptCost)
	planService := services.NewPlanService(planRepo, generator, log)

	// Handlers
	val := validator.New()
	h := &router.Handlers{
		Health: handlers.NewHealthHandler(db, log),
		Auth:   handlers.NewAuthHandler(userService, cfg, log, val),
		Plan:   handlers.NewPlanHandler(planService, log, val),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}
