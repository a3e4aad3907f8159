package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Env         string `mapstructure:"APP_ENV"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	RedisURL    string `mapstructure:"REDIS_URL"`

	StoreTimeout    time.Duration `mapstructure:"STORE_TIMEOUT"`
	SummaryCacheTTL time.Duration `mapstructure:"SUMMARY_CACHE_TTL"`

	ConnectionRequestDailyLimit int           `mapstructure:"CONNECTION_REQUEST_DAILY_LIMIT"`
	LiveBufferSize              int           `mapstructure:"LIVE_BUFFER_SIZE"`
	LiveHeartbeat               time.Duration `mapstructure:"LIVE_HEARTBEAT"`
	JobWorkers                  int           `mapstructure:"JOB_WORKERS"`

	S3Bucket       string `mapstructure:"S3_BUCKET"`
	S3Region       string `mapstructure:"S3_REGION"`
	S3Endpoint     string `mapstructure:"S3_ENDPOINT"`
	S3AccessKey    string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey    string `mapstructure:"S3_SECRET_KEY"`
	MediaPublicURL string `mapstructure:"MEDIA_PUBLIC_URL"`

	FCMProjectID       string `mapstructure:"FCM_PROJECT_ID"`
	FCMCredentialsFile string `mapstructure:"FCM_CREDENTIALS_FILE"`

	WebhookSecret string `mapstructure:"WEBHOOK_SECRET"`
}

var defaults = map[string]any{
	"APP_ENV":                        "dev",
	"PORT":                           "8080",
	"LOG_LEVEL":                      "info",
	"DATABASE_URL":                   "",
	"JWT_SECRET":                     "",
	"REDIS_URL":                      "",
	"STORE_TIMEOUT":                  "5s",
	"SUMMARY_CACHE_TTL":              "1m",
	"CONNECTION_REQUEST_DAILY_LIMIT": 20,
	"LIVE_BUFFER_SIZE":               16,
	"LIVE_HEARTBEAT":                 "25s",
	"JOB_WORKERS":                    8,
	"S3_BUCKET":                      "",
	"S3_REGION":                      "",
	"S3_ENDPOINT":                    "",
	"S3_ACCESS_KEY":                  "",
	"S3_SECRET_KEY":                  "",
	"MEDIA_PUBLIC_URL":               "",
	"FCM_PROJECT_ID":                 "",
	"FCM_CREDENTIALS_FILE":           "",
	"WEBHOOK_SECRET":                 "",
}

// LoadConfig loads the configuration from a .env file in the working
// directory and environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")

	cfg, err := load(v)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// load reads v into a Config. Every key carries a default so AutomaticEnv
// can bind it during Unmarshal.
func load(v *viper.Viper) (*Config, error) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	switch c.Env {
	case "dev", "test", "prod":
	default:
		return errors.New("APP_ENV: must be one of dev, test, prod")
	}
	if c.StoreTimeout <= 0 {
		return errors.New("STORE_TIMEOUT: must be > 0")
	}
	if c.ConnectionRequestDailyLimit <= 0 {
		return errors.New("CONNECTION_REQUEST_DAILY_LIMIT: must be > 0")
	}
	if c.LiveBufferSize <= 0 {
		return errors.New("LIVE_BUFFER_SIZE: must be > 0")
	}
	if c.JobWorkers <= 0 {
		return errors.New("JOB_WORKERS: must be > 0")
	}
	if c.IsProd() {
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL: required in prod")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET: must be at least 32 bytes in prod")
		}
	}
	return nil
}

func (c *Config) IsProd() bool { return c.Env == "prod" }

// MediaEnabled reports whether S3 media storage is configured.
func (c *Config) MediaEnabled() bool {
	return c.S3Bucket != "" && c.S3Region != "" && c.MediaPublicURL != ""
}

// PushEnabled reports whether FCM push notifications are configured.
func (c *Config) PushEnabled() bool {
	return c.FCMCredentialsFile != ""
}
