package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"`       // current application environment (local, dev, production)
	TelegramAPIToken string   `mapstructure:"-"`         // Telegram API token loaded from environment
	BotDebug         bool     `mapstructure:"bot_debug"` // log raw Telegram API traffic
	DB               DB       `mapstructure:"database"`  // database configuration section
	Practice         Practice `mapstructure:"practice"`  // practice session configuration section
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // connection string loaded from environment; empty disables history
	MaxConnections  int32         `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Enabled reports whether practice history is stored.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// Practice contains in-memory session parameters.
type Practice struct {
	SessionTTL    time.Duration `mapstructure:"session_ttl"`    // idle time after which a chat's session is dropped
	SweepInterval time.Duration `mapstructure:"sweep_interval"` // how often idle sessions are looked for
}

// Load reads configuration from an optional .env file, config files and environment variables.
func Load() (*Config, error) {
	return load(".env", "./config")
}

func load(envFile, configPath string) (*Config, error) {
	// Values already set in the environment win over the .env file.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	v.SetDefault("env", "local")
	v.SetDefault("bot_debug", false)
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("practice.session_ttl", "24h")
	v.SetDefault("practice.sweep_interval", "10m")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")

	if cfg.Practice.SessionTTL <= 0 || cfg.Practice.SweepInterval <= 0 {
		return nil, fmt.Errorf("practice session_ttl and sweep_interval must be positive")
	}

	return &cfg, nil
}
