package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"theaifactory-backend/config"
	v1 "theaifactory-backend/internal/delivery/http/v1"
	"theaifactory-backend/internal/repository/postgres"
	"theaifactory-backend/internal/repository/supabase"
	"theaifactory-backend/internal/usecase"
	"theaifactory-backend/pkg/auth"
	"theaifactory-backend/pkg/database"
	"theaifactory-backend/pkg/logger"
	"theaifactory-backend/pkg/redis"
	"theaifactory-backend/pkg/validation"
)

// @title           theAIfactory Backend API
// @version         1.0
// @description     Catalog backend for AI project showcases, backed by Supabase auth and Postgres.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config (missing Supabase URL/key is fatal here)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting theAIfactory backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional: rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	projectRepo := postgres.NewProjectRepository(dbPool)
	roleRepo := postgres.NewRoleRepository(dbPool)
	analyticsRepo := postgres.NewAnalyticsRepository(dbPool)
	authGateway := supabase.NewClient(cfg.SupabaseUrl, cfg.SupabaseKey)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	authUC := usecase.NewAuthUsecase(authGateway, roleRepo, analyticsRepo)
	projectUC := usecase.NewProjectUsecase(projectRepo, validate)
	analyticsUC := usecase.NewAnalyticsUsecase(analyticsRepo)

	// 7. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		ProjectUC:    projectUC,
		AnalyticsUC:  analyticsUC,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
