package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "salonpay"

// Config holds the service settings read from the environment.
type Config struct {
	Port        string
	CORSOrigins string

	DB    DBConfig
	Redis RedisConfig

	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	JWTSecret string

	DefaultPlatformFee decimal.Decimal
	Currency           string
	CurrencySymbol     string
	SettingsCacheTTL   time.Duration
}

type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load builds a Config from the environment, applying defaults.
func Load() Config {
	return Config{
		Port:        GetEnv("PORT", "3000"),
		CORSOrigins: GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		DB: DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "salonpay"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},
		StripeSecretKey:    GetEnv("STRIPE_SECRET_KEY", ""),
		CheckoutSuccessURL: GetEnv("CHECKOUT_SUCCESS_URL", "http://localhost:5173/booking/success"),
		CheckoutCancelURL:  GetEnv("CHECKOUT_CANCEL_URL", "http://localhost:5173/booking/cancel"),
		JWTSecret:          GetEnv("JWT_SECRET", DefaultJWTSecret),
		DefaultPlatformFee: GetDecimalEnv("DEFAULT_PLATFORM_FEE_PERCENTAGE", decimal.RequireFromString("0.019")),
		Currency:           strings.ToLower(GetEnv("CURRENCY", "eur")),
		CurrencySymbol:     GetEnv("CURRENCY_SYMBOL", "€"),
		SettingsCacheTTL:   GetDurationEnv("SETTINGS_CACHE_TTL", 10*time.Minute),
	}
}

// Validate rejects settings that must not reach a production deploy.
func (c Config) Validate() error {
	if IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable (e.g. "30m") or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("invalid %s=%q, using default %s", key, val, defaultVal)
	}
	return defaultVal
}

// GetDecimalEnv returns a decimal environment variable or a default value.
func GetDecimalEnv(key string, defaultVal decimal.Decimal) decimal.Decimal {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := decimal.NewFromString(strings.TrimSpace(val)); err == nil {
			return d
		}
		log.Printf("invalid %s=%q, using default %s", key, val, defaultVal)
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
