package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Token store drivers understood by the client
const (
	TokenStoreMemory = "memory"
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
)

// Config holds the configuration of both the mock API server and the
// storefront client. It is populated from environment variables.
type Config struct {
	App    AppConfig
	JWT    JWTConfig
	Mock   MockConfig
	Client ClientConfig
	Redis  RedisConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, test, production
	Port        string
	Version     string
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // hours
}

// MockConfig tunes the in-memory REST backend
type MockConfig struct {
	Latency       time.Duration // scripted delay added to every response
	PaymentSecret string        // expected X-MockPay-Signature value
	AuthRateLimit float64       // requests per second on /auth
	AuthRateBurst int
}

// ClientConfig tunes the storefront client
type ClientConfig struct {
	APIBaseURL           string
	RequestTimeout       time.Duration
	TokenStore           string // memory, file, redis
	TokenFile            string
	TokenKeyPrefix       string
	CheckoutConfirmDelay time.Duration
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// Load reads .env (when present) and the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry:  getEnvInt("JWT_ACCESS_EXPIRY", 15),  // 15 minutes
			RefreshTokenExpiry: getEnvInt("JWT_REFRESH_EXPIRY", 72), // 3 days
		},
		Mock: MockConfig{
			Latency:       getEnvDuration("MOCK_LATENCY", 150*time.Millisecond),
			PaymentSecret: getEnv("MOCK_PAYMENT_SECRET", "mockpay-dev-secret"),
			AuthRateLimit: getEnvFloat("MOCK_AUTH_RATE_LIMIT", 10),
			AuthRateBurst: getEnvInt("MOCK_AUTH_RATE_BURST", 20),
		},
		Client: ClientConfig{
			APIBaseURL:           getEnv("API_BASE_URL", "http://localhost:8080/api/v1"),
			RequestTimeout:       getEnvDuration("API_TIMEOUT", 10*time.Second),
			TokenStore:           getEnv("TOKEN_STORE", TokenStoreFile),
			TokenFile:            getEnv("TOKEN_FILE", defaultTokenFile()),
			TokenKeyPrefix:       getEnv("TOKEN_KEY_PREFIX", "mini_ecommerce"),
			CheckoutConfirmDelay: getEnvDuration("CHECKOUT_CONFIRM_DELAY", 2*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings that would make the process misbehave
func (c *Config) Validate() error {
	if c.App.Environment == "production" && c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	switch c.Client.TokenStore {
	case TokenStoreMemory, TokenStoreFile, TokenStoreRedis:
	default:
		return fmt.Errorf("unknown TOKEN_STORE %q", c.Client.TokenStore)
	}

	if c.Client.TokenStore == TokenStoreFile && c.Client.TokenFile == "" {
		return fmt.Errorf("TOKEN_FILE must be set when TOKEN_STORE=file")
	}

	if c.JWT.AccessTokenExpiry <= 0 || c.JWT.RefreshTokenExpiry <= 0 {
		return fmt.Errorf("token expiries must be positive")
	}

	return nil
}

// AccessTokenTTL is the access token lifetime as a duration
func (c JWTConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpiry) * time.Minute
}

// RefreshTokenTTL is the refresh token lifetime as a duration
func (c JWTConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpiry) * time.Hour
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storefront-tokens.json"
	}
	return dir + string(os.PathSeparator) + "storefront" + string(os.PathSeparator) + "tokens.json"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
