package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	JWT            JWTConfig
	Logging        LoggingConfig
	Gemini         GeminiConfig
	Recommendation RecommendationConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	Env             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds the secret used to verify access tokens issued by the
// platform's auth service.
type JWTConfig struct {
	AccessSecret string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type RecommendationConfig struct {
	MinScore              int
	MaxResults            int
	PoolLimit             int
	CacheTTL              time.Duration
	AvailabilityWindow    time.Duration
	BidirectionalPriority bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("RECOMMENDATION_MIN_SCORE", 30)
	v.SetDefault("RECOMMENDATION_MAX_RESULTS", 20)
	v.SetDefault("RECOMMENDATION_POOL_LIMIT", 500)
	v.SetDefault("RECOMMENDATION_CACHE_TTL", 10*time.Minute)
	v.SetDefault("RECOMMENDATION_AVAILABILITY_WINDOW", 72*time.Hour)
	v.SetDefault("RECOMMENDATION_BIDIRECTIONAL_PRIORITY", true)
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			Env:             v.GetString("ENV"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Gemini: GeminiConfig{
			APIKey: v.GetString("GEMINI_API_KEY"),
			Model:  v.GetString("GEMINI_MODEL"),
		},
		Recommendation: RecommendationConfig{
			MinScore:              v.GetInt("RECOMMENDATION_MIN_SCORE"),
			MaxResults:            v.GetInt("RECOMMENDATION_MAX_RESULTS"),
			PoolLimit:             v.GetInt("RECOMMENDATION_POOL_LIMIT"),
			CacheTTL:              v.GetDuration("RECOMMENDATION_CACHE_TTL"),
			AvailabilityWindow:    v.GetDuration("RECOMMENDATION_AVAILABILITY_WINDOW"),
			BidirectionalPriority: v.GetBool("RECOMMENDATION_BIDIRECTIONAL_PRIORITY"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}

	r := c.Recommendation
	if r.MinScore < 0 || r.MinScore >= 100 {
		return fmt.Errorf("recommendation min score must be in [0, 100)")
	}
	if r.MaxResults <= 0 {
		return fmt.Errorf("recommendation max results must be positive")
	}
	if r.PoolLimit < r.MaxResults {
		return fmt.Errorf("recommendation pool limit must be at least max results")
	}
	if r.CacheTTL < 0 {
		return fmt.Errorf("recommendation cache TTL must not be negative")
	}
	if r.AvailabilityWindow <= 0 {
		return fmt.Errorf("recommendation availability window must be positive")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
