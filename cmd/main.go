package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/sportsbridge/platform/config"
	"github.com/sportsbridge/platform/db"
	"github.com/sportsbridge/platform/handlers"
	"github.com/sportsbridge/platform/payments"
	"github.com/sportsbridge/platform/realtime"
	"github.com/sportsbridge/platform/repositories"
	api "github.com/sportsbridge/platform/routes"
	"github.com/sportsbridge/platform/services"
	"github.com/sportsbridge/platform/storage"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Инициализация загрузчика файлов (Cloudflare R2)
	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	// Инициализация платёжного шлюза (Stripe)
	paymentGateway, err := payments.NewStripeGateway(payments.StripeGatewayConfig{
		SecretKey: cfg.StripeSecretKey,
	})
	if err != nil {
		logger.Error("failed to initialize Stripe gateway", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Stripe gateway initialized")

	// Инициализация WebSocket Hub
	wsHub := realtime.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	opportunityRepo := repositories.NewPostgresOpportunityRepository(dbConn)
	applicationRepo := repositories.NewPostgresApplicationRepository(dbConn)
	donationRepo := repositories.NewPostgresDonationRepository(dbConn)
	mediaRepo := repositories.NewPostgresMediaRepository(dbConn)
	profileRepo := repositories.NewPostgresProfileRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	emailService := services.NewEmailService(cfg)
	authService := services.NewAuthService(userRepo)
	opportunityService := services.NewOpportunityService(opportunityRepo)
	applicationService := services.NewApplicationService(
		applicationRepo,
		opportunityRepo,
		profileRepo,
		userRepo,
		wsHub,
		emailService,
		logger,
	)
	donationService := services.NewDonationService(
		donationRepo,
		userRepo,
		paymentGateway,
		wsHub,
		logger,
	)
	mediaService := services.NewMediaService(mediaRepo, cloudflareUploader, logger)
	profileService := services.NewProfileService(profileRepo, mediaRepo, logger)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	opportunityHandler := handlers.NewOpportunityHandler(opportunityService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	donationHandler := handlers.NewDonationHandler(donationService)
	profileHandler := handlers.NewProfileHandler(profileService)
	mediaHandler := handlers.NewMediaHandler(mediaService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		cfg.CORSAllowedOrigins,
		authHandler,
		opportunityHandler,
		applicationHandler,
		donationHandler,
		profileHandler,
		mediaHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
