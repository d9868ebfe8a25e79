package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mass-chat/internal/config"
	"mass-chat/internal/db"
	apihttp "mass-chat/internal/http"
	"mass-chat/internal/repository"
	"mass-chat/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	conversationRepo := repository.NewPgConversationRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	orderRepo := repository.NewPgOrderRepository(pool)

	contextSvc := service.NewBasicContextService(messageRepo)
	supportAgent := service.NewSupportAgent(contextSvc)
	orderAgent := service.NewOrderAgent(orderRepo, contextSvc)
	billingAgent := service.NewBillingAgent(orderRepo, contextSvc)
	routerAgent := service.NewRouterAgent(supportAgent, orderAgent, billingAgent)

	streamDelay := time.Duration(cfg.StreamDelayMS) * time.Millisecond
	chatSvc := service.NewChatService(logger, conversationRepo, messageRepo, routerAgent, streamDelay)

	rateInterval := time.Duration(cfg.RateLimitIntervalMS) * time.Millisecond
	var limiter service.RateLimiter = service.NewMemoryRateLimiter(cfg.RateLimitTokens, rateInterval)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory rate limiter", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, cfg.RateLimitTokens, rateInterval)
		}
		cancel()
	}

	catalog := service.NewAgentCatalog()
	chatHandler := apihttp.NewChatHandler(logger, chatSvc)
	agentHandler := apihttp.NewAgentHandler(logger, catalog)
	router := apihttp.NewRouter(logger, limiter, chatHandler, agentHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
