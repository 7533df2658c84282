package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Contains(t, cfg.StartURL, "suumo.jp")
	assert.Equal(t, 0, cfg.MaxPages)
	assert.Equal(t, 1.0, cfg.SampleRate)
	assert.Equal(t, 10, cfg.ThrottleWindow)
	assert.Equal(t, 10*time.Second, cfg.ThrottleDelay)
	assert.False(t, cfg.Quiet)
	assert.Equal(t, "./graphs", cfg.GraphDir)
	assert.Equal(t, 30, cfg.ChartDays)

	// Default category table: the aggregate bucket first, then districts
	assert.Len(t, cfg.Categories, 7)
	assert.Equal(t, Category{Name: "all", Substring: ""}, cfg.Categories[0])
	assert.Equal(t, Category{Name: "koto", Substring: "江東区"}, cfg.Categories[1])

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.example.com:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("START_URL", "https://example.com/listings")
	t.Setenv("MAX_PAGES", "5")
	t.Setenv("SAMPLE_RATE", "0.25")
	t.Setenv("THROTTLE_WINDOW", "3")
	t.Setenv("THROTTLE_DELAY_SECONDS", "2")
	t.Setenv("QUIET_MODE", "1")
	t.Setenv("CHART_DAYS", "7")

	cfg := LoadConfig()
	assert.Equal(t, "redis.example.com:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "https://example.com/listings", cfg.StartURL)
	assert.Equal(t, 5, cfg.MaxPages)
	assert.Equal(t, 0.25, cfg.SampleRate)
	assert.Equal(t, 3, cfg.ThrottleWindow)
	assert.Equal(t, 2*time.Second, cfg.ThrottleDelay)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, 7, cfg.ChartDays)
}

func TestLoadConfigFailsSoftOnInvalidValues(t *testing.T) {
	t.Setenv("MAX_PAGES", "not-a-number")
	t.Setenv("SAMPLE_RATE", "1.5")
	t.Setenv("THROTTLE_WINDOW", "abc")

	cfg := LoadConfig()
	assert.Equal(t, 0, cfg.MaxPages)
	assert.Equal(t, 1.0, cfg.SampleRate)
	assert.Equal(t, 10, cfg.ThrottleWindow)
}

func TestParseCategories(t *testing.T) {
	t.Setenv("CATEGORIES", "all=;koto=江東区; broken ;=nameless;meguro=目黒区")

	cfg := LoadConfig()
	assert.Equal(t, []Category{
		{Name: "all", Substring: ""},
		{Name: "koto", Substring: "江東区"},
		{Name: "meguro", Substring: "目黒区"},
	}, cfg.Categories)
}

func TestParseCategoriesFallsBackToDefault(t *testing.T) {
	t.Setenv("CATEGORIES", " ;; ")

	cfg := LoadConfig()
	assert.Len(t, cfg.Categories, 7)
}

func TestValidateRequiresStartURL(t *testing.T) {
	t.Setenv("START_URL", " ")

	cfg := LoadConfig()
	assert.Error(t, cfg.Validate())
}

func TestValidateMail(t *testing.T) {
	cfg := LoadConfig()
	assert.Error(t, cfg.ValidateMail())

	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "reports@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("SMTP_TO", "me@example.com")

	cfg = LoadConfig()
	assert.NoError(t, cfg.ValidateMail())
	assert.Equal(t, "reports@example.com", cfg.SMTPFrom)
	assert.Equal(t, 587, cfg.SMTPPort)
}
