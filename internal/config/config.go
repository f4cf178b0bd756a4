package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Webhook   WebhookConfig
	Export    ExportConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	BodyLimitBytes        int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// WebhookConfig points at the external automation endpoint.
// TimeoutSeconds of 0 disables the client timeout; the request context still applies.
type WebhookConfig struct {
	URL            string
	TimeoutSeconds int
}

// ExportConfig locates the latest-ticket CSV artifact.
type ExportConfig struct {
	Dir      string
	FileName string
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	LatestKey  string
	TTLSeconds int
}

// RateLimitConfig bounds submissions per client IP.
type RateLimitConfig struct {
	Max           int
	WindowSeconds int
}

var defaults = map[string]any{
	"APP_NAME":                     "review-router",
	"APP_ENV":                      "development",
	"APP_HOST":                     "0.0.0.0",
	"APP_PORT":                     "8080",
	"APP_VERSION":                  "dev",
	"HTTP_REQUEST_TIMEOUT_SECONDS": 60,
	"HTTP_BODY_LIMIT_BYTES":        10 * 1024 * 1024,
	"LOG_LEVEL":                    "info",
	"WEBHOOK_URL":                  "",
	"WEBHOOK_TIMEOUT_SECONDS":      30,
	"EXPORT_DIR":                   ".",
	"EXPORT_FILE":                  "latest_ticket.csv",
	"REDIS_ADDR":                   "",
	"REDIS_PASSWORD":               "",
	"REDIS_DB":                     0,
	"REDIS_LATEST_KEY":             "review-router:export:latest",
	"REDIS_TTL_SECONDS":            0,
	"RATE_LIMIT_MAX":               30,
	"RATE_LIMIT_WINDOW_SECONDS":    60,
}

// Load reads configuration from .env, an optional config file and the environment,
// applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	redisDB, err := intValue(v, "REDIS_DB")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  v.GetString("APP_NAME"),
			Env:                   v.GetString("APP_ENV"),
			Host:                  v.GetString("APP_HOST"),
			Port:                  v.GetString("APP_PORT"),
			Version:               v.GetString("APP_VERSION"),
			RequestTimeoutSeconds: v.GetInt("HTTP_REQUEST_TIMEOUT_SECONDS"),
			BodyLimitBytes:        v.GetInt("HTTP_BODY_LIMIT_BYTES"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Webhook: WebhookConfig{
			URL:            strings.TrimSpace(v.GetString("WEBHOOK_URL")),
			TimeoutSeconds: v.GetInt("WEBHOOK_TIMEOUT_SECONDS"),
		},
		Export: ExportConfig{
			Dir:      v.GetString("EXPORT_DIR"),
			FileName: v.GetString("EXPORT_FILE"),
		},
		Redis: RedisConfig{
			Addr:       v.GetString("REDIS_ADDR"),
			Password:   v.GetString("REDIS_PASSWORD"),
			DB:         redisDB,
			LatestKey:  v.GetString("REDIS_LATEST_KEY"),
			TTLSeconds: v.GetInt("REDIS_TTL_SECONDS"),
		},
		RateLimit: RateLimitConfig{
			Max:           v.GetInt("RATE_LIMIT_MAX"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	if cfg.Webhook.URL == "" {
		return nil, errors.New("WEBHOOK_URL is required")
	}
	if cfg.Export.FileName == "" {
		return nil, errors.New("EXPORT_FILE must not be empty")
	}

	return cfg, nil
}

func intValue(v *viper.Viper, key string) (int, error) {
	n, err := cast.ToIntE(v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the outbound call timeout, zero meaning none.
func (w WebhookConfig) Timeout() time.Duration {
	if w.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// TTL returns the expiry for the mirrored export record, zero meaning none.
func (r RedisConfig) TTL() time.Duration {
	if r.TTLSeconds <= 0 {
		return 0
	}
	return time.Duration(r.TTLSeconds) * time.Second
}

// Window returns the rate limit window.
func (r RateLimitConfig) Window() time.Duration {
	if r.WindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(r.WindowSeconds) * time.Second
}
