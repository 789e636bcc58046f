package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every setting read from the environment (and .env).
type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DB DBConfig

	BaseURL         string
	AllowedOrigins  []string
	RateLimitRPS    float64
	RateLimitBurst  int
	MaxUploadMB     int64
	MetricsInterval time.Duration
	SeedData        bool
}

type DBConfig struct {
	Driver          string // "sqlite" or "mysql"
	Path            string // sqlite file
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeTime int // minutes
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Path:            getEnv("DB_PATH", "table_booking.db"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "table_booking"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifeTime: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30),
		},
		BaseURL:         getEnv("BASE_URL", ""),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:4200", "http://127.0.0.1:4200"}),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 40),
		MaxUploadMB:     int64(getEnvInt("MAX_UPLOAD_MB", 10)),
		MetricsInterval: getEnvDuration("METRICS_INTERVAL", 15*time.Second),
		SeedData:        getEnvBool("SEED_DATA", false),
	}

	switch cfg.DB.Driver {
	case "sqlite":
		if cfg.DB.Path == "" {
			return nil, fmt.Errorf("invalid DB config: DB_PATH must not be empty for sqlite")
		}
	case "mysql":
		if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
		}
	default:
		return nil, fmt.Errorf("invalid DB config: unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("invalid config: MAX_UPLOAD_MB must be positive")
	}
	if cfg.MetricsInterval <= 0 {
		return nil, fmt.Errorf("invalid config: METRICS_INTERVAL must be positive")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
