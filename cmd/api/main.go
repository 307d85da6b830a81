package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-portfolio-backend/config"
	_ "go-portfolio-backend/docs" // swagger spec registration
	v1 "go-portfolio-backend/internal/delivery/http/v1"
	"go-portfolio-backend/internal/repository/postgres"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/database"
	"go-portfolio-backend/pkg/email"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/redis"
	"go-portfolio-backend/pkg/security"
	"go-portfolio-backend/pkg/token"
	"go-portfolio-backend/pkg/validation"
)

// @title           Portfolio Backend API
// @version         1.0
// @description     Contact intake and admin contact management for a personal portfolio site.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.Environment)
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port)
	security.InitSecurityLogger("portfolio-backend", cfg.Environment)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; everything degrades without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory fallbacks", "error", err)
	}

	// 5. Setup Repositories
	contactRepo := postgres.NewContactRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)
	githubCache := postgres.NewGithubRepoCache(dbPool)

	// 6. Setup Email Service
	emailService := email.NewService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact notifications disabled")
	}

	// 7. Setup Auth primitives
	tokenService := token.NewService(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	tracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
	})

	// 8. Setup UseCases
	validate := validation.New()
	contactUC := usecase.NewContactUsecase(contactRepo, validate, emailService)
	authUC := usecase.NewAuthUsecase(adminRepo, tokenService, tracker)
	adminUC := usecase.NewAdminUsecase(contactRepo, cfg.DashboardRecentSize)
	githubUC := usecase.NewGithubUsecase(githubCache, cfg)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		AuthUC:    authUC,
		AdminUC:   adminUC,
		GithubUC:  githubUC,
		Config:    cfg,
	})

	// 10. Start Server
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
