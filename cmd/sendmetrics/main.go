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
	if err := cfg.ValidateMail(); err != nil {
		log.Fatal().Err(err).Msg("Invalid mail configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisStore := store.NewRedisStore(cfg.RedisAddr, cfg.RedisDB)
	defer redisStore.Close()
	cache := store.NewCache(redisStore)

	metrics, err := cache.TodayMetrics(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("No metrics available for today")
	}

	mailer := report.NewMailer(cfg)
	attachments := report.ChartAttachments(cfg.GraphDir)
	if err := mailer.SendMetricsEmail(metrics, attachments); err != nil {
		log.Fatal().Err(err).Msg("Failed to send metrics email")
	}

	log.Info().Str("to", cfg.SMTPTo).Msg("Metrics email sent")
}
