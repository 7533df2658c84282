package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"estate-crawler/config"
	"estate-crawler/internal/crawler"
	"estate-crawler/logger"
	"estate-crawler/services/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("start_url", cfg.StartURL).
		Int("max_pages", cfg.MaxPages).
		Float64("sample_rate", cfg.SampleRate).
		Int("throttle_window", cfg.ThrottleWindow).
		Dur("throttle_delay", cfg.ThrottleDelay).
		Msg("Starting crawl run")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisStore := store.NewRedisStore(cfg.RedisAddr, cfg.RedisDB)
	defer redisStore.Close()
	cache := store.NewCache(redisStore)

	fetcher := crawler.NewThrottledFetcher(cfg.ThrottleWindow, cfg.ThrottleDelay)

	c := crawler.New(cfg, fetcher, cache)
	metrics, err := c.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Crawl run failed")
	}

	log.Info().
		Str("date", metrics.Date).
		Int("categories", len(metrics.Counts)).
		Msg("Crawl run finished")
}
