package config

// Config is the full server configuration, one section per concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Stats    StatsConfig    `mapstructure:"stats"    validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig configures the HTTP listener, logging and request limits.
type ServerConfig struct {
	Port               int      `mapstructure:"port"                 validate:"required,gt=0,lt=65536"`
	LogLevel           string   `mapstructure:"log_level"            validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	RateLimitRPS       float64  `mapstructure:"rate_limit_rps"       validate:"gte=0"`
	RateLimitBurst     int      `mapstructure:"rate_limit_burst"     validate:"gte=0"`
}

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig selects the storage backend and sizes the connection pool.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"         validate:"required,oneof=postgres memory"`
	URL          string `mapstructure:"url"            validate:"required_if=Driver postgres"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// AuthConfig holds the HMAC secret shared with the token issuer.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// StatsConfig controls how reading activity is bucketed and cached.
type StatsConfig struct {
	Timezone        string `mapstructure:"timezone"          validate:"required,timezone"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// CacheConfig configures the optional Redis cache. An empty URL disables it.
type CacheConfig struct {
	RedisURL string `mapstructure:"redis_url" validate:"omitempty,url"`
}
