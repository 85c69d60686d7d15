package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the mood service.
type Config struct {
	Store          StoreConfig
	DB             DBConfig
	Redis          RedisConfig
	TMDB           TMDBConfig
	Recommendation RecommendationConfig
	RateLimit      RateLimitConfig
	Log            LogConfig
	Port           string
	APIToken       string
}

// StoreConfig selects the key-value backend used for favorites and preferences.
type StoreConfig struct {
	Driver          string // redis, postgres, sqlite or memory
	Namespace       string
	SQLitePath      string
	ConnectAttempts uint
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	LogoBaseURL  string
	Timeout      time.Duration
}

// RecommendationConfig tunes the result aggregation pipeline.
type RecommendationConfig struct {
	MaxConcurrency     int
	FilterAvailability bool
	SessionCapacity    int
	TrailerCacheSize   int
}

// RateLimitConfig configures the Redis-backed request limiter.
type RateLimitConfig struct {
	Max           int
	WindowSeconds int
}

// LogConfig configures structured logging output.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	attempts, _ := strconv.Atoi(getEnv("STORE_CONNECT_ATTEMPTS", "3"))
	timeoutSec, _ := strconv.Atoi(getEnv("TMDB_TIMEOUT_SECONDS", "15"))
	concurrency, _ := strconv.Atoi(getEnv("RECOMMENDATION_MAX_CONCURRENCY", "8"))
	sessions, _ := strconv.Atoi(getEnv("SESSION_CAPACITY", "1024"))
	trailerCache, _ := strconv.Atoi(getEnv("TRAILER_CACHE_SIZE", "256"))
	rateLimitMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "100"))
	rateLimitWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE_MB", "50"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "3"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE_DAYS", "14"))
	filterAvailability, _ := strconv.ParseBool(getEnv("RECOMMENDATION_FILTER_AVAILABILITY", "false"))

	cfg := &Config{
		Store: StoreConfig{
			Driver:          strings.ToLower(getEnv("STORE_DRIVER", "sqlite")),
			Namespace:       getEnv("STORE_NAMESPACE", "ottmood"),
			SQLitePath:      getEnv("SQLITE_PATH", "ottmood.db"),
			ConnectAttempts: uint(max(1, attempts)),
		},
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "ott_mood"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		TMDB: TMDBConfig{
			APIKey:       getEnv("TMDB_API_KEY", ""),
			BaseURL:      strings.TrimRight(getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"), "/"),
			ImageBaseURL: getEnv("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/w500"),
			LogoBaseURL:  getEnv("TMDB_LOGO_BASE_URL", "https://image.tmdb.org/t/p/w92"),
			Timeout:      time.Duration(max(1, timeoutSec)) * time.Second,
		},
		Recommendation: RecommendationConfig{
			MaxConcurrency:     max(1, concurrency),
			FilterAvailability: filterAvailability,
			SessionCapacity:    max(1, sessions),
			TrailerCacheSize:   max(1, trailerCache),
		},
		RateLimit: RateLimitConfig{
			Max:           rateLimitMax,
			WindowSeconds: rateLimitWindow,
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAgeDays: logMaxAge,
		},
		Port:     getEnv("SERVER_PORT", "8080"),
		APIToken: getEnv("API_TOKEN", ""),
	}

	if cfg.TMDB.APIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}

	switch cfg.Store.Driver {
	case "redis", "postgres", "sqlite", "memory":
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
