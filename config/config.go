// Package config reads runtime settings from the environment and opens the database.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Cart store backends.
const (
	CartStoreMemory = "memory"
	CartStoreDB     = "db"
	CartStoreRedis  = "redis"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver string
	DBDSN    string

	CartStore         string
	CartStoragePrefix string
	CartTTL           time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret      string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	SeedDemo bool
}

// Load builds a Config from the environment. Unset or unparsable values fall
// back to their defaults; an unknown driver or cart store is an error.
func Load() (*Config, error) {
	cfg := &Config{
		Port:    getenvDefault("PORT", "8080"),
		GinMode: os.Getenv("GIN_MODE"),

		DBDriver: strings.ToLower(getenvDefault("DB_DRIVER", "sqlite")),
		DBDSN:    getenvDefault("DB_DSN", "wildeats.db"),

		CartStore:         strings.ToLower(getenvDefault("CART_STORE", CartStoreDB)),
		CartStoragePrefix: getenvDefault("CART_STORAGE_PREFIX", "wildeats_cart"),
		CartTTL:           getenvDurationDefault("CART_TTL", 168*time.Hour),

		RedisAddr:     getenvDefault("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getenvIntDefault("REDIS_DB", 0),

		JWTSecret:      getenvDefault("JWT_SECRET", "wildeats-dev-secret"),
		CORSOrigins:    getenvList("CORS_ORIGINS"),
		RateLimitRPS:   getenvFloatDefault("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getenvIntDefault("RATE_LIMIT_BURST", 40),

		SeedDemo: getenvBoolDefault("SEED_DEMO", false),
	}

	switch cfg.DBDriver {
	case "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	switch cfg.CartStore {
	case CartStoreMemory, CartStoreDB, CartStoreRedis:
	default:
		return nil, fmt.Errorf("unsupported CART_STORE %q", cfg.CartStore)
	}
	return cfg, nil
}

// InitDB opens the configured database.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(cfg.DBDSN)
	}

	logLevel := logger.Warn
	if cfg.GinMode == "release" {
		logLevel = logger.Error
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvList splits a comma separated value, dropping blanks.
func getenvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvIntDefault(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}

func getenvFloatDefault(key string, def float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

func getenvBoolDefault(key string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return d
}
