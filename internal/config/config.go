package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	defaultServiceName  = "feed-engine"
	defaultServicePort  = 8094
	defaultVersion      = "0.1.0"
	defaultLoggingLevel = "info"

	defaultDBHost    = "localhost"
	defaultDBPort    = 5432
	defaultDBName    = "feed_engine"
	defaultDBUser    = "postgres"
	defaultDBSSLMode = "disable"

	defaultNewsTimeout = 10 * time.Second
	defaultPageLimit   = 20
	defaultMaxLimit    = 50

	defaultAIModel     = "claude-3-5-haiku-latest"
	defaultAITimeout   = 20 * time.Second
	defaultAIMaxTokens = 1024

	defaultAuditStream = "feed:audit"

	defaultMaxRequestsPerMinute = 60
	defaultWindowSeconds        = 60
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Database  DatabaseConfig  `yaml:"database"`
	NewsAPI   NewsAPIConfig   `yaml:"news_api"`
	AI        AIConfig        `yaml:"ai"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Port      int    `env:"FEED_ENGINE_PORT"       yaml:"port"`
	Debug     bool   `env:"APP_DEBUG"              yaml:"debug"`
	JWTSecret string `env:"FEED_ENGINE_JWT_SECRET" yaml:"jwt_secret"`
	// PageLimit is the default feed page size; MaxLimit caps client requests.
	PageLimit int `yaml:"page_limit"`
	MaxLimit  int `yaml:"max_limit"`
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string `env:"POSTGRES_FEED_ENGINE_HOST"     yaml:"host"`
	Port     int    `env:"POSTGRES_FEED_ENGINE_PORT"     yaml:"port"`
	User     string `env:"POSTGRES_FEED_ENGINE_USER"     yaml:"user"`
	Password string `env:"POSTGRES_FEED_ENGINE_PASSWORD" yaml:"password"`
	Database string `env:"POSTGRES_FEED_ENGINE_DB"       yaml:"database"`
	SSLMode  string `env:"POSTGRES_FEED_ENGINE_SSLMODE"  yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// MigrateURL returns the URL form of the DSN used by golang-migrate.
func (d *DatabaseConfig) MigrateURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// NewsAPIConfig holds the external news source configuration.
type NewsAPIConfig struct {
	BaseURL string        `env:"NEWS_API_BASE_URL" yaml:"base_url"`
	APIKey  string        `env:"NEWS_API_KEY"      yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// AIConfig holds the summarization provider configuration.
type AIConfig struct {
	APIKey    string        `env:"ANTHROPIC_API_KEY" yaml:"api_key"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// RedisConfig holds the audit stream configuration. Leaving the address empty
// disables audit publishing.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB"       yaml:"db"`
	Stream   string `yaml:"stream"`
}

// RateLimitConfig holds per-IP rate limiting configuration.
type RateLimitConfig struct {
	MaxRequestsPerMinute int `yaml:"max_requests_per_minute"`
	WindowSeconds        int `yaml:"window_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return load(path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setNewsAPIDefaults(&cfg.NewsAPI)
	setAIDefaults(&cfg.AI)
	setRedisDefaults(&cfg.Redis)
	setRateLimitDefaults(&cfg.RateLimit)
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLoggingLevel
	}
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
	if svc.PageLimit == 0 {
		svc.PageLimit = defaultPageLimit
	}
	if svc.MaxLimit == 0 {
		svc.MaxLimit = defaultMaxLimit
	}
}

func setDatabaseDefaults(db *DatabaseConfig) {
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Database == "" {
		db.Database = defaultDBName
	}
	if db.SSLMode == "" {
		db.SSLMode = defaultDBSSLMode
	}
}

func setNewsAPIDefaults(api *NewsAPIConfig) {
	if api.Timeout == 0 {
		api.Timeout = defaultNewsTimeout
	}
}

func setAIDefaults(ai *AIConfig) {
	if ai.Model == "" {
		ai.Model = defaultAIModel
	}
	if ai.Timeout == 0 {
		ai.Timeout = defaultAITimeout
	}
	if ai.MaxTokens == 0 {
		ai.MaxTokens = defaultAIMaxTokens
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.Stream == "" {
		r.Stream = defaultAuditStream
	}
}

func setRateLimitDefaults(rl *RateLimitConfig) {
	if rl.MaxRequestsPerMinute == 0 {
		rl.MaxRequestsPerMinute = defaultMaxRequestsPerMinute
	}
	if rl.WindowSeconds == 0 {
		rl.WindowSeconds = defaultWindowSeconds
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if c.Service.JWTSecret == "" {
		return &ValidationError{
			Field:   "service.jwt_secret",
			Message: "is required",
		}
	}
	if c.NewsAPI.BaseURL == "" {
		return &ValidationError{
			Field:   "news_api.base_url",
			Message: "is required",
		}
	}
	return nil
}
