package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	DatabaseURL        string
	RedisURL           string
	NATSURL            string
	BadgeEventSubject  string
	BadgeThresholdPath string
	ProgressCacheTTL   time.Duration
	CheckRateLimit     int
	CheckRateWindow    time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an
// optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("VOCAB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Proto Vocab API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("badges.event_subject", "vocab.badges.earned")
	v.SetDefault("progress.cache_ttl", "5m")
	v.SetDefault("check.rate_limit", 5)
	v.SetDefault("check.rate_window", "1s")

	ttl, err := time.ParseDuration(v.GetString("progress.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid progress cache ttl: %w", err)
	}

	window, err := time.ParseDuration(v.GetString("check.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid check rate window: %w", err)
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		NATSURL:            v.GetString("nats.url"),
		BadgeEventSubject:  v.GetString("badges.event_subject"),
		BadgeThresholdPath: v.GetString("badges.threshold_file"),
		ProgressCacheTTL:   ttl,
		CheckRateLimit:     v.GetInt("check.rate_limit"),
		CheckRateWindow:    window,
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	return cfg, nil
}
