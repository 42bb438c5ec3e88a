package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration shared by the binaries.
type Config struct {
	Port string

	// SourceKind and SourcePath select the candidate source; see sources.Open.
	// SourceKind "sqlite" or "postgres" reads from DBPath or DatabaseURL instead.
	SourceKind string
	SourcePath string

	DBPath      string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	LogLevel  string
	LogFormat string
}

// LoadDotEnv reads a .env file into the environment if one exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found (using environment variables)")
	}
}

// Load reads .env (if present) and the environment.
func Load() Config {
	LoadDotEnv()

	return Config{
		Port:          Get("PORT", "8080"),
		SourceKind:    Get("SOURCE_KIND", ""),
		SourcePath:    Get("SOURCE_PATH", ""),
		DBPath:        Get("DB_PATH", "data/gazetteer.db"),
		DatabaseURL:   Get("DATABASE_URL", ""),
		RedisAddr:     Get("REDIS_ADDR", ""),
		RedisPassword: Get("REDIS_PASSWORD", ""),
		RedisDB:       GetInt("REDIS_DB", 0),
		CacheTTL:      GetDuration("CACHE_TTL", 10*time.Minute),
		LogLevel:      Get("LOG_LEVEL", "info"),
		LogFormat:     Get("LOG_FORMAT", "text"),
	}
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt falls back when the variable is unset or not an integer.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid integer env var", "key", key, "value", v)
		return fallback
	}
	return n
}

// GetDuration accepts Go duration syntax ("90s", "10m").
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration env var", "key", key, "value", v)
		return fallback
	}
	return d
}
