package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/cmsforge/translate-gateway/internal/api"
	"github.com/cmsforge/translate-gateway/internal/core/ports"
	"github.com/cmsforge/translate-gateway/internal/core/service"
	"github.com/cmsforge/translate-gateway/internal/infrastructure/auth"
	"github.com/cmsforge/translate-gateway/internal/infrastructure/db/mongo"
	redisinfra "github.com/cmsforge/translate-gateway/internal/infrastructure/db/redis"
	"github.com/cmsforge/translate-gateway/internal/infrastructure/ollama"
	"github.com/cmsforge/translate-gateway/internal/pkg/config"
	"github.com/cmsforge/translate-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Translate Gateway API
// @version      1.0
// @description  Authenticated translation and summarization gateway backed by Ollama.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Token trust anchor ---
	var verifier ports.TokenVerifier
	if cfg.Auth.TestMode {
		log.Warn().Msg("AUTH_TEST_MODE enabled: verifying tokens with the local signing secret")
		verifier = auth.NewLocalVerifier(cfg.Auth.TestSigningSecret, cfg.Auth.GoogleClientID)
	} else {
		verifier = auth.NewGoogleVerifier(cfg.Auth.GoogleClientID)
	}

	// --- Translation backend ---
	backend, err := ollama.New(cfg.Ollama.BaseURL, cfg.Ollama.Timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build ollama client")
	}
	if health := backend.CheckHealth(ctx); !health.Reachable {
		// Startup proceeds anyway: the backend may come up later, and the
		// readiness probe reports the current state.
		log.Warn().Str("base_url", cfg.Ollama.BaseURL).Msg("ollama backend unreachable at startup")
	}

	// --- Optional translation history (MongoDB) ---
	var (
		history     ports.TranslationRepository
		mongoClient *mongodriver.Client
		mongoDB     *mongodriver.Database
	)
	if cfg.Mongo.URI != "" {
		mongoClient, mongoDB, err = mongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		history = mongo.NewTranslationRepository(mongoDB)
		log.Info().Str("database", cfg.Mongo.Database).Msg("translation history enabled")
	} else {
		log.Info().Msg("MONGO_URI not set, translation history disabled")
	}

	// --- Optional translation cache (Redis) ---
	var (
		redisClient *redis.Client
		cache       service.Cache
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = redisinfra.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		cache = redisinfra.NewTranslationCache(redisClient, cfg.Redis.TTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("translation cache enabled")
	} else {
		log.Info().Msg("REDIS_ADDR not set, translation cache disabled")
	}

	svc := service.NewTranslationService(
		backend,
		history,
		cache,
		cfg.Ollama.DefaultModel,
		cfg.Ollama.DefaultTargetLanguage,
		log,
	)

	e := api.NewRouter(api.RouterDeps{
		Service:  svc,
		Backend:  backend,
		Verifier: verifier,
		History:  history,
		MongoDB:  mongoDB,
		Redis:    redisClient,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting translate gateway")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}
	log.Info().Msg("translate gateway stopped")
}
