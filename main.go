package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/ai"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/config"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/events"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/handlers"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories/postgres"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/services"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/slides"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
	"github.com/Adam07-9-24/NeuroLearn-AI/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(slogLogger)
	logger := utils.NewSlogLogger(slogLogger)

	logger.Info("starting neurolearn api", "environment", cfg.Environment, "port", cfg.Port)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		logger.Info("redis cache enabled")
	} else {
		logger.Warn("REDIS_URL not set, running without cache")
	}

	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		logger.Error("failed to initialize repositories", "error", err)
		os.Exit(1)
	}
	repo := repoManager.GetRepository()

	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			logger.Error("failed to create kafka publisher", "error", err)
			os.Exit(1)
		}
		logger.Info("kafka event publisher enabled", "brokers", cfg.KafkaBrokers)
	} else {
		publisher = events.NewInProcessPublisher(slogLogger)
		logger.Info("in-process event publisher enabled")
	}

	chatClient := ai.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	if !chatClient.Configured() {
		logger.Warn("OPENAI_API_KEY not set, quiz and slide generation will fail")
	}
	deckRenderer := slides.NewRenderer(cfg.SlidesRendererURL)

	serviceManager := services.NewServiceManager(services.ServiceManagerConfig{
		Repo:      repo,
		Validator: validator.New(),
		Chat:      chatClient,
		Renderer:  deckRenderer,
		Publisher: publisher,
		JWTConfig: cfg.JWT,
		Logger:    logger,
	})

	handlerManager := handlers.NewHandlerManager(serviceManager, repo, cfg.JWT, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("event publisher close failed", "error", err)
	}
	if err := repoManager.Shutdown(ctx); err != nil {
		logger.Error("repository shutdown failed", "error", err)
	}

	logger.Info("shutdown complete")
}
