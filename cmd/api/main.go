package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/chefcito/backend/config"
	"github.com/pageza/chefcito/backend/internal/database"
	"github.com/pageza/chefcito/backend/internal/logging"
	"github.com/pageza/chefcito/backend/internal/router"
	"github.com/pageza/chefcito/backend/internal/server"
	"github.com/pageza/chefcito/backend/internal/service"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	gin.SetMode(config.GinMode())

	ctx := context.Background()

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis only backs rate limiting; continue without it
	var redisClient *redis.Client
	if database.RedisConfigured(cfg) {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
			redisClient = nil
		}
	}

	store, err := newModelStore(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to configure model store")
	}

	// Initialize services
	corpus := service.NewCorpusService(db)
	if err := corpus.Reload(ctx); err != nil {
		logging.Fatal().Err(err).Msg("failed to load corpus")
	}

	recommender := service.NewRecommenderService(corpus, store, service.RecommenderConfigFrom(cfg))
	if err := recommender.LoadOrInit(ctx); err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize ranker")
	}

	r := router.SetupRouter(router.Dependencies{
		DB:                 db,
		Redis:              redisClient,
		Recommender:        recommender,
		Corpus:             corpus,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	srv := server.New(cfg, r)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logging.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		logging.Info().Str("signal", sig.String()).Msg("received signal")
	}

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server shutdown error")
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logging.Info().Msg("server stopped")
}

// newModelStore picks S3 when a bucket is configured, else a local file when
// a path is configured, else no persistence.
func newModelStore(ctx context.Context, cfg *config.Config) (service.ModelStore, error) {
	switch {
	case cfg.S3BucketName != "":
		s3Config, err := config.NewS3Config(ctx, cfg.S3BucketName)
		if err != nil {
			return nil, err
		}
		logging.Info().Str("bucket", cfg.S3BucketName).Str("key", cfg.ModelKey).Msg("using s3 model store")
		return service.NewS3ModelStore(s3Config, cfg.ModelKey), nil
	case cfg.ModelPath != "":
		logging.Info().Str("path", cfg.ModelPath).Msg("using file model store")
		return service.NewFileModelStore(cfg.ModelPath), nil
	default:
		return nil, nil
	}
}
