// Package config loads the process configuration from .env and the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Recognizer backends.
const (
	RecognizerGemini = "gemini"
	RecognizerVision = "vision"
)

// Config holds every setting read at startup.
type Config struct {
	Port               string   `mapstructure:"port"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	GeminiAPIKey            string        `mapstructure:"gemini_api_key"`
	GeminiBaseURL           string        `mapstructure:"gemini_base_url"`
	GeminiTimeout           time.Duration `mapstructure:"gemini_timeout"`
	GeminiRequestsPerMinute int           `mapstructure:"gemini_requests_per_minute"`

	ModelFlash    string `mapstructure:"model_flash"`
	ModelPro      string `mapstructure:"model_pro"`
	ModelImage    string `mapstructure:"model_image"`
	ModelImagePro string `mapstructure:"model_image_pro"`

	RecognizerBackend    string `mapstructure:"recognizer_backend"`
	VariationConcurrency int    `mapstructure:"variation_concurrency"`

	RedisHost     string        `mapstructure:"redis_host"`
	RedisPort     string        `mapstructure:"redis_port"`
	RedisPassword string        `mapstructure:"redis_password"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`

	DBHost        string `mapstructure:"db_host"`
	DBPort        string `mapstructure:"db_port"`
	DBUser        string `mapstructure:"db_user"`
	DBPassword    string `mapstructure:"db_password"`
	DBName        string `mapstructure:"db_name"`
	DBSSLMode     string `mapstructure:"db_sslmode"`
	DBInstance    string `mapstructure:"instance_connection_name"`
	RunMigrations bool   `mapstructure:"run_migrations"`

	JWTSecret string `mapstructure:"jwt_secret"`
}

// RedisEnabled reports whether a Redis host was configured.
func (c *Config) RedisEnabled() bool { return c.RedisHost != "" }

// RedisAddr returns host:port for the Redis client.
func (c *Config) RedisAddr() string { return c.RedisHost + ":" + c.RedisPort }

// DBEnabled reports whether a database was configured.
func (c *Config) DBEnabled() bool {
	return c.DBName != "" && (c.DBHost != "" || c.DBInstance != "")
}

// Load reads .env (when present) and then the environment, applying defaults for unset keys.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.RecognizerBackend = strings.ToLower(strings.TrimSpace(cfg.RecognizerBackend))
	if cfg.RecognizerBackend != RecognizerGemini && cfg.RecognizerBackend != RecognizerVision {
		return nil, fmt.Errorf("unknown RECOGNIZER_BACKEND %q", cfg.RecognizerBackend)
	}
	return &cfg, nil
}

// setDefaults registers every key so that AutomaticEnv picks it up during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("cors_allowed_origins", []string{"*"})

	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_base_url", "")
	v.SetDefault("gemini_timeout", "120s")
	v.SetDefault("gemini_requests_per_minute", 60)

	// empty model IDs fall back to the design usecase defaults
	v.SetDefault("model_flash", "")
	v.SetDefault("model_pro", "")
	v.SetDefault("model_image", "")
	v.SetDefault("model_image_pro", "")

	v.SetDefault("recognizer_backend", RecognizerGemini)
	v.SetDefault("variation_concurrency", 3)

	v.SetDefault("redis_host", "")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("cache_ttl", "10m")
	v.SetDefault("session_ttl", "30m")

	v.SetDefault("db_host", "")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("instance_connection_name", "")
	v.SetDefault("run_migrations", false)

	v.SetDefault("jwt_secret", "")
}
