package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is built once in main and handed to collaborators. Nothing in this
// service reads the environment after startup.
type Config struct {
	Port string

	Sync     SyncConfig
	Pike13   Pike13Config
	GHL      GHLConfig
	DB       DatabaseConfig
	RabbitMQ RabbitMQConfig
	SMTP     SMTPConfig
}

type SyncConfig struct {
	ThresholdDays  int           // days without a visit before a client counts as inactive
	DryRun         bool          // decide everything, write nothing
	TestEmail      string        // when set, only this address is processed
	PageSize       int           // report page size, capped at 500 by the API
	MaxPages       int           // safety cap against a source that never clears has_more
	RetryAttempts  int
	RetryBaseDelay time.Duration
	WriteDelay     time.Duration // courtesy spacing between CRM writes
	InactiveTag    string
	Schedule       string // cron expression, evaluated in America/New_York
}

type Pike13Config struct {
	BaseURL   string
	TokenFile string
}

type GHLConfig struct {
	BaseURL    string
	APIKey     string
	LocationID string
}

type DatabaseConfig struct {
	URL string
}

type RabbitMQConfig struct {
	User string
	Pass string
	Host string
	Port string
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Sync: SyncConfig{
			ThresholdDays:  getEnvInt("INACTIVITY_THRESHOLD_DAYS", 10),
			DryRun:         getEnvBool("DRY_RUN", false),
			TestEmail:      os.Getenv("TEST_EMAIL"),
			PageSize:       getEnvInt("REPORT_PAGE_SIZE", 500),
			MaxPages:       getEnvInt("REPORT_MAX_PAGES", 1000),
			RetryAttempts:  getEnvInt("RETRY_ATTEMPTS", 3),
			RetryBaseDelay: getEnvDuration("RETRY_BASE_DELAY", time.Second),
			WriteDelay:     getEnvDuration("WRITE_DELAY", 250*time.Millisecond),
			InactiveTag:    getEnv("INACTIVE_TAG", "inactive_10days"),
			Schedule:       getEnv("SYNC_SCHEDULE", "0 8 * * *"),
		},
		Pike13: Pike13Config{
			BaseURL:   getEnv("PIKE13_BASE_URL", "https://method3fitness.pike13.com/desk/api/v3"),
			TokenFile: getEnv("PIKE13_TOKEN_FILE", "token.json"),
		},
		GHL: GHLConfig{
			BaseURL:    getEnv("GHL_BASE_URL", "https://rest.gohighlevel.com/v1"),
			APIKey:     os.Getenv("GHL_API_KEY"),
			LocationID: os.Getenv("GHL_LOCATION_ID"),
		},
		DB: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		RabbitMQ: RabbitMQConfig{
			User: getEnv("RABBITMQ_USER", "guest"),
			Pass: getEnv("RABBITMQ_PASS", "guest"),
			Host: getEnv("RABBITMQ_HOST", "localhost"),
			Port: getEnv("RABBITMQ_PORT", "5672"),
		},
		SMTP: SMTPConfig{
			Host: os.Getenv("MAIL_HOST"),
			Port: getEnvInt("MAIL_PORT", 587),
			User: os.Getenv("MAIL_USER"),
			Pass: os.Getenv("MAIL_PASS"),
			From: getEnv("MAIL_FROM", "hello@method3fitness.com"),
		},
	}

	if cfg.GHL.APIKey == "" {
		return nil, fmt.Errorf("GHL_API_KEY is required")
	}
	if cfg.Sync.PageSize <= 0 || cfg.Sync.PageSize > 500 {
		cfg.Sync.PageSize = 500
	}
	if cfg.Sync.RetryAttempts < 1 {
		cfg.Sync.RetryAttempts = 1
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
