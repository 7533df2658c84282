package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"estate-crawler/config"
	"estate-crawler/internal/report"
	"estate-crawler/logger"
	"estate-crawler/services/store"
)

func main() {
	godotenv.Load()

	logger.Init()
	log := logger.Default

	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisStore := store.NewRedisStore(cfg.RedisAddr, cfg.RedisDB)
	defer redisStore.Close()
	cache := store.NewCache(redisStore)

	entries, err := cache.LastNDaysMetrics(ctx, cfg.ChartDays)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read metrics range")
	}
	if len(entries) == 0 {
		log.Fatal().Int("days", cfg.ChartDays).Msg("No metrics found in range")
	}

	path, err := report.RenderTrendChart(entries, cfg.Categories, cfg.GraphDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render trend chart")
	}

	log.Info().
		Str("path", path).
		Int("days_with_data", len(entries)).
		Msg("Trend chart generated")
}
