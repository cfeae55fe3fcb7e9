package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "BOOKBRAIN"

// keys lists every setting so viper can resolve it from the environment
// during Unmarshal.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.cors_allowed_origins",
	"server.rate_limit_rps",
	"server.rate_limit_burst",
	"database.driver",
	"database.url",
	"database.max_open_conns",
	"database.max_idle_conns",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"stats.timezone",
	"stats.cache_ttl_seconds",
	"cache.redis_url",
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return load(".")
}

func load(configPaths ...string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.rate_limit_rps", 10)
	v.SetDefault("server.rate_limit_burst", 20)
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("stats.timezone", "UTC")
	v.SetDefault("stats.cache_ttl_seconds", 30)
}
