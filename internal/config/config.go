package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Pagination PaginationConfig `mapstructure:"pagination" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error fatal"`
	// PublicBaseURL is the scheme+host used for hypermedia links. When empty
	// links are built from the incoming request.
	PublicBaseURL          string `mapstructure:"public_base_url"          validate:"omitempty,url"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds"     validate:"gte=0"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds"    validate:"gte=0"`
	CacheMaxAgeSeconds     int    `mapstructure:"cache_max_age_seconds"    validate:"gte=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                       validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gte=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"`
	BCryptCost           int    `mapstructure:"bcrypt_cost"            validate:"required,gte=4,lte=31"`
}

// CacheConfig configures the optional Redis product cache.
// An empty RedisAddr disables caching.
type CacheConfig struct {
	RedisAddr  string `mapstructure:"redis_addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"          validate:"gte=0"`
	Prefix     string `mapstructure:"prefix"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gte=0"`
}

// PaginationConfig holds list endpoint defaults.
type PaginationConfig struct {
	// DefaultLimit may not exceed the hard page size ceiling of 100.
	DefaultLimit int `mapstructure:"default_limit" validate:"required,gt=0,lte=100"`
}

// Enabled reports whether a Redis address is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}
