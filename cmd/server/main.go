package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "churchshare-backend/internal/api/http"
	"churchshare-backend/internal/config"
	"churchshare-backend/internal/jobs"
	"churchshare-backend/internal/logger"
	"churchshare-backend/internal/repository/postgres"
	"churchshare-backend/internal/security"
	"churchshare-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ChurchShare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize outbound services
	emailSvc := service.NewEmailService(cfg.Email)
	pushSvc, err := service.NewPushService(context.Background(), cfg.Push)
	if err != nil {
		logger.Error("Failed to initialize push service", "error", err)
		log.Fatalf("Failed to initialize push service: %v", err)
	}

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, store.InviteCodeRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository, store.ChurchRepository)
	invSvc := service.NewInvitationService(store.InvitationRepository, store.ActivityLogRepository, emailSvc)
	churchSvc := service.NewChurchService(store.ChurchRepository, store.UserRepository, store.ActivityLogRepository, invSvc, emailSvc)
	verifSvc := service.NewVerificationService(
		store.VerificationRepository,
		store.UserRepository,
		store.ChurchRepository,
		store.NotificationRepository,
		store.ActivityLogRepository,
		emailSvc,
		pushSvc,
	)
	itemSvc := service.NewItemService(
		store.ItemRepository,
		store.MemberItemRequestRepository,
		store.ChurchRepository,
		store.UserRepository,
		store.NotificationRepository,
		store.ActivityLogRepository,
		emailSvc,
	)
	msgSvc := service.NewMessageService(store.MessageRepository, store.ChurchRepository, store.UserRepository)
	codeSvc := service.NewInviteCodeService(store.InviteCodeRepository, store.UserRepository)
	pingSvc := service.NewPingService(store.PingRepository, store.UserRepository, store.NotificationRepository, pushSvc)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Job runner backs the cron-triggered sweep endpoints
	jobRunner := jobs.NewJobRunner(db, store, cfg)

	// Initialize HTTP handlers
	handlers := &httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		User:         httpapi.NewUserHandler(userSvc),
		Church:       httpapi.NewChurchHandler(churchSvc, verifSvc),
		Verification: httpapi.NewVerificationHandler(verifSvc),
		Item:         httpapi.NewItemHandler(itemSvc),
		Message:      httpapi.NewMessageHandler(msgSvc),
		Invitation:   httpapi.NewInvitationHandler(invSvc),
		InviteCode:   httpapi.NewInviteCodeHandler(codeSvc),
		Ping:         httpapi.NewPingHandler(pingSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
		Cron:         httpapi.NewCronHandler(jobRunner),
	}

	authMiddleware := httpapi.NewAuthMiddleware(tokenManager, store.UserRepository)
	cronMiddleware := httpapi.NewCronMiddleware(cfg.Cron.SharedSecret)
	router := httpapi.NewRouter(handlers, authMiddleware, cronMiddleware)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
