package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mindcare/internal/agents"
	"mindcare/internal/classifier"
	"mindcare/internal/config"
	"mindcare/internal/db"
	apihttp "mindcare/internal/http"
	"mindcare/internal/orchestrator"
	"mindcare/internal/repository"
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

	var messageRepo repository.MessageRepository
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}
		messageRepo = repository.NewPgMessageRepository(pool)
	}

	sessionStore := repository.NewMemorySessionStore()
	feedbackStore := repository.NewMemoryFeedbackStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory stores", zap.Error(err))
		} else {
			ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
			sessionStore = repository.NewRedisSessionStore(redisClient, ttl)
			feedbackStore = repository.NewRedisFeedbackStore(redisClient)
		}
		cancel()
	}

	var (
		emotions classifier.EmotionClassifier
		toxicity classifier.ToxicityScorer
	)
	if cfg.ClassifierBaseURL != "" {
		remote := classifier.NewHTTPClassifier(cfg.ClassifierBaseURL, cfg.ClassifierAPIKey, logger)
		emotions = remote
		toxicity = remote
	} else {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		emotions = classifier.NewKeywordEmotionClassifier(rng)
		scorer := classifier.NewKeywordToxicityScorer(rng)
		scorer.Jitter = true
		toxicity = scorer
	}

	orch := orchestrator.New(
		agents.NewSafetyAgent(toxicity, logger),
		agents.NewTriageAgent(emotions, logger),
		agents.NewEmpathyAgent(nil, logger),
		agents.NewResourceAgent(logger),
		agents.NewMemoryAgent(nil, logger),
		logger,
	)

	chatHandler := apihttp.NewChatHandler(logger, orch, sessionStore, messageRepo)
	feedbackHandler := apihttp.NewFeedbackHandler(logger, feedbackStore)
	router := apihttp.NewRouter(logger, chatHandler, feedbackHandler)

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
