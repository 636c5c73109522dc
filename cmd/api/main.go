package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"clientportal/internal/ai"
	"clientportal/internal/config"
	"clientportal/internal/db"
	"clientportal/internal/handler"
	"clientportal/internal/httpserver"
	"clientportal/internal/repository"
	"clientportal/internal/seed"
	"clientportal/internal/service"
	"clientportal/internal/tool"
	"clientportal/pkg/mq"
	redisclient "clientportal/pkg/redis"
)

func main() {
	// Load config
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Redis
	rdb := redisclient.NewClient(cfg.Redis)
	defer rdb.Close()

	// Init RabbitMQ Publisher. The portal degrades to no event publishing
	// when no broker is configured or reachable.
	var publisher *mq.Publisher
	if cfg.MQ.URL != "" {
		publisher, err = mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			logger.Warn("MQ unavailable, events disabled", zap.Error(err))
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn, logger)
	requestRepo := repository.NewServiceRequestRepository(dbConn)
	messageRepo := repository.NewMessageRepository(dbConn)
	contactRepo := repository.NewContactRepository(dbConn)

	// Init Services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, logger)
	requestService := service.NewRequestService(requestRepo, publisher, logger)
	gemini := ai.NewGeminiClient(cfg.Gemini, logger)
	registry := tool.NewProjectRegistry(projectRepo, gemini, logger)

	// Seed bootstrap accounts
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := seed.Run(seedCtx, userRepo, cfg.Admin, logger); err != nil {
		logger.Error("seeding failed", zap.Error(err))
	}
	cancel()

	// Init Handlers
	handlers := httpserver.Handlers{
		Auth:      handler.NewAuthHandler(authService, logger),
		Project:   handler.NewProjectHandler(projectRepo, logger),
		MCP:       handler.NewMCPHandler(registry, logger),
		AI:        handler.NewAIHandler(gemini),
		Request:   handler.NewRequestHandler(requestService, logger),
		Contact:   handler.NewContactHandler(contactRepo, publisher, logger),
		Message:   handler.NewMessageHandler(messageRepo, userRepo, publisher, logger),
		User:      handler.NewUserHandler(userRepo, logger),
		Dashboard: handler.NewDashboardHandler(userRepo, projectRepo, requestRepo, rdb, logger),
	}

	// Router
	router := httpserver.NewRouter(handlers, cfg.JWT.Secret, dbConn)

	// Start API server
	if err := router.Run(cfg.Server.Port); err != nil {
		logger.Fatal("server start failed", zap.Error(err))
	}
}
