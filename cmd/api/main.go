package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"streampulse/internal/core/services"
	httphandlers "streampulse/internal/handlers/http"
	"streampulse/internal/infrastructure/chatfeed"
	"streampulse/internal/infrastructure/middleware"
	"streampulse/internal/infrastructure/monitoring"
	"streampulse/internal/infrastructure/repositories/postgres"
	"streampulse/pkg/config"
	"streampulse/pkg/logger"
	"streampulse/pkg/tracing"
)

func main() {
	startTime := time.Now()

	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	configPath := os.Getenv("STREAMPULSE_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	// Tracing
	tp, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "streampulse",
		JaegerURL:   cfg.Tracing.JaegerURL,
		Environment: cfg.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		log.Fatalw("failed to initialize tracing", "error", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Errorw("error shutting down tracer", "error", err)
		}
	}()

	// Database
	db, err := postgres.Connect(cfg)
	if err != nil {
		log.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := postgres.EnsureSchema(schemaCtx, db); err != nil {
		schemaCancel()
		log.Fatalw("failed to ensure database schema", "error", err)
	}
	schemaCancel()
	log.Info("database schema ready")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	channelRepo := postgres.NewChannelRepository(db)
	streamRepo := postgres.NewStreamRepository(db)
	viewerRepo := postgres.NewViewerRepository(db)
	chatRepo := postgres.NewChatRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	// Monitoring and chat feed
	collector := monitoring.NewPrometheusCollector()
	hub := chatfeed.NewHub(zapLogger)
	healthChecker := monitoring.NewHealthChecker()
	healthChecker.AddDatabaseCheck(db, 2*time.Second)

	// Services
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, zapLogger)
	channelService := services.NewChannelService(channelRepo, zapLogger)
	streamService := services.NewStreamService(streamRepo, channelRepo, collector, zapLogger)
	viewerService := services.NewViewerService(viewerRepo, collector, zapLogger)
	chatService := services.NewChatService(chatRepo, hub, collector, zapLogger)
	statsService := services.NewStatsService(statsRepo, streamRepo, zapLogger)

	// Handlers
	authHandler := httphandlers.NewAuthHandler(authService)
	channelHandler := httphandlers.NewChannelHandler(channelService)
	streamHandler := httphandlers.NewStreamHandler(streamService)
	viewerHandler := httphandlers.NewViewerHandler(viewerService)
	chatHandler := httphandlers.NewChatHandler(chatService)
	statsHandler := httphandlers.NewStatsHandler(statsService)

	// Router
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.ErrorHandlerMiddleware(log, cfg.IsDevelopment()))
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.NewHTTPRateLimitMiddleware(cfg))
	router.Use(collector.HTTPMiddleware())
	if cfg.Tracing.Enabled {
		router.Use(middleware.TracingMiddleware())
	}

	requireAuth := middleware.AuthMiddleware(authService)
	authHandler.SetupRoutes(router, requireAuth)
	channelHandler.SetupRoutes(router, requireAuth)
	streamHandler.SetupRoutes(router, requireAuth)
	viewerHandler.SetupRoutes(router)
	chatHandler.SetupRoutes(router)
	statsHandler.SetupRoutes(router)

	// Live chat feed (WebSocket)
	router.GET("/api/chat/stream/:streamId/live", hub.ServeFeed)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"uptime":    time.Since(startTime).String(),
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		status := healthChecker.CheckAll(c.Request.Context())
		if status.Status != "healthy" {
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	})

	if cfg.Monitoring.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Info("Prometheus metrics enabled")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting StreamPulse API server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("Server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("Received shutdown signal", "signal", sig)
	}

	log.Info("Shutting down StreamPulse API server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error during server shutdown", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			log.Errorw("Error force closing server", "error", closeErr)
		}
	} else {
		log.Info("Server shutdown gracefully")
	}

	log.Info("StreamPulse API server stopped")
}
