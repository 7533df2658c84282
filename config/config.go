package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"estate-crawler/pkg/errors"
)

// Category names a subset of listings whose location contains Substring.
// An empty Substring matches every listing ("all").
type Category struct {
	Name      string
	Substring string
}

// Config represents the application configuration
type Config struct {
	// Redis configuration
	RedisAddr string
	RedisDB   int

	// Crawler configuration
	StartURL       string
	MaxPages       int // <= 0 means unlimited
	SampleRate     float64
	ThrottleWindow int // <= 0 disables throttling
	ThrottleDelay  time.Duration
	Quiet          bool

	// Metrics categories, in report order
	Categories []Category

	// Reporting configuration
	GraphDir  string
	ChartDays int

	// SMTP configuration (sendmetrics only)
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
	SMTPTo   string

	// Environment
	Environment string
}

// defaultStartURL is the suumo.jp used-mansion search the crawler walks.
const defaultStartURL = "https://suumo.jp/jj/bukken/ichiran/JJ012FC001/?ar=030&bs=011&cn=9999999&cnb=0&ekTjCd=&ekTjNm=&kb=1&kt=9999999&mb=0&mt=9999999&ta=13&tj=0&po=0&pj=1&pc=100"

// defaultCategories mirrors the report category table: the aggregate bucket
// plus the districts of interest.
var defaultCategories = []Category{
	{Name: "all", Substring: ""},
	{Name: "koto", Substring: "江東区"},
	{Name: "kamedo", Substring: "亀戸"},
	{Name: "shinagawa", Substring: "品川区"},
	{Name: "minamioi", Substring: "南大井"},
	{Name: "meguro", Substring: "目黒区"},
	{Name: "honcho", Substring: "目黒本町"},
}

// LoadConfig loads the configuration from environment variables with defaults.
// Every value fails soft to its default on invalid input; only Validate
// rejects a configuration outright.
func LoadConfig() *Config {
	return &Config{
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		StartURL:       getEnv("START_URL", defaultStartURL),
		MaxPages:       getEnvInt("MAX_PAGES", 0),
		SampleRate:     getEnvRate("SAMPLE_RATE", 1.0),
		ThrottleWindow: getEnvInt("THROTTLE_WINDOW", 10),
		ThrottleDelay:  time.Duration(getEnvInt("THROTTLE_DELAY_SECONDS", 10)) * time.Second,
		Quiet:          os.Getenv("QUIET_MODE") == "1",
		Categories:     parseCategories(os.Getenv("CATEGORIES")),
		GraphDir:       getEnv("GRAPH_DIR", "./graphs"),
		ChartDays:      getEnvInt("CHART_DAYS", 30),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		SMTPFrom:       getEnv("SMTP_FROM", os.Getenv("SMTP_USER")),
		SMTPTo:         os.Getenv("SMTP_TO"),
		Environment:    getEnv("ESTATE_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration required for a crawl run
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StartURL) == "" {
		return errors.NewConfiguration("start URL is required", nil)
	}
	if len(c.Categories) == 0 {
		return errors.NewConfiguration("at least one metrics category is required", nil)
	}
	return nil
}

// ValidateMail checks the configuration required to send the metrics email
func (c *Config) ValidateMail() error {
	switch {
	case c.SMTPHost == "":
		return errors.NewConfiguration("SMTP_HOST is required", nil)
	case c.SMTPUser == "":
		return errors.NewConfiguration("SMTP_USER is required", nil)
	case c.SMTPPass == "":
		return errors.NewConfiguration("SMTP_PASS is required", nil)
	case c.SMTPTo == "":
		return errors.NewConfiguration("SMTP_TO is required", nil)
	}
	return nil
}

// parseCategories parses "name=substring;name=substring" pairs, preserving
// order. Malformed entries are dropped; an empty or fully malformed value
// falls back to the default table.
func parseCategories(raw string) []Category {
	if strings.TrimSpace(raw) == "" {
		return defaultCategories
	}

	var categories []Category
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, substring, found := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			continue
		}
		categories = append(categories, Category{
			Name:      name,
			Substring: strings.TrimSpace(substring),
		})
	}

	if len(categories) == 0 {
		return defaultCategories
	}
	return categories
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an integer environment variable or returns a default
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvRate retrieves a sampling rate in [0, 1] or returns a default
func getEnvRate(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil || rate < 0 || rate > 1 {
		return defaultValue
	}
	return rate
}
