package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JLTC3111/contract-management-app-sub001/config"
	"github.com/JLTC3111/contract-management-app-sub001/handler"
	"github.com/JLTC3111/contract-management-app-sub001/middleware"
	"github.com/JLTC3111/contract-management-app-sub001/pkg/logger"
	"github.com/JLTC3111/contract-management-app-sub001/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Select the contract store
	var store service.Store
	if cfg.Database.URL != "" {
		pgStore, err := service.NewPostgresStore(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to initialize postgres store", "error", err)
			os.Exit(1)
		}
		store = pgStore
		slog.Info("connected to postgres")
	} else {
		store = service.NewMemoryStore()
	}

	// Notification sink: redis when configured, log otherwise
	var notifier service.Notifier = service.LogNotifier{}
	if cfg.Redis.Addr != "" {
		redisNotifier, err := service.NewRedisNotifier(&cfg.Redis)
		if err != nil {
			slog.Error("failed to initialize redis notifier", "error", err)
			os.Exit(1)
		}
		notifier = redisNotifier
		slog.Info("connected to redis", "channel", cfg.Redis.Channel)
	}

	// Optional attachment storage
	var attachments *service.AttachmentService
	if cfg.Minio.Endpoint != "" {
		attachments, err = service.NewAttachmentService(&cfg.Minio)
		if err != nil {
			slog.Error("failed to initialize attachment storage", "error", err)
			os.Exit(1)
		}
		if err := attachments.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure attachment bucket", "error", err)
			os.Exit(1)
		}
	}

	// Core lifecycle components
	migrator := service.NewMigrator(store)
	job := service.NewLifecycleJob(store, notifier, &cfg.Lifecycle)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	contractHandler := handler.NewContractHandler(store, attachments)
	lifecycleHandler := handler.NewLifecycleHandler(job, migrator, &cfg.Lifecycle)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit(100, time.Minute))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		// Scheduler entry points, guarded by the shared trigger secret
		api.POST("/lifecycle/run", lifecycleHandler.Run)
		api.POST("/lifecycle/migrate", lifecycleHandler.Migrate)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)
		protected.GET("/contracts", contractHandler.List)
		protected.GET("/contracts/:id", contractHandler.Get)
		protected.POST("/contracts/:id/attachments", contractHandler.UploadAttachment)
		protected.GET("/contracts/:id/attachments", contractHandler.ListAttachments)
		protected.GET("/contracts/:id/attachments/url", contractHandler.AttachmentURL)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}
