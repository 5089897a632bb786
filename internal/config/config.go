package config

import (
	"errors"  // Validation errors
	"fmt"     // Error formatting
	"net/url" // Escaping database credentials
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // Token and cache durations

	"github.com/joho/godotenv" // For loading .env files
)

// Store drivers
const (
	StoreMongo  = "mongo"  // MongoDB backed store
	StoreMemory = "memory" // In-process store for local runs
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	MongoURI        string        // MongoDB connection string
	DBName          string        // Database name
	StoreDriver     string        // mongo or memory
	TokenSecret     string        // JWT signing secret
	TokenTTL        time.Duration // Lifetime of issued tokens
	StripeSecretKey string        // Payment gateway secret key
	PaymentCurrency string        // Currency for payment intents
	RedisAddr       string        // Redis server address, empty disables the cache
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	CacheTTL        time.Duration // Catalog cache lifetime
	IsProd          bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:         getEnv("APP_PORT", "5000"),
		MongoURI:        mongoURI(),
		DBName:          getEnv("DB_NAME", "pc-house"),
		StoreDriver:     getEnv("STORE_DRIVER", StoreMongo),
		TokenSecret:     os.Getenv("ACCESS_TOKEN_SECRET"),
		TokenTTL:        getDuration("TOKEN_TTL", 7*24*time.Hour),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		PaymentCurrency: getEnv("PAYMENT_CURRENCY", "usd"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPass:       os.Getenv("REDIS_PASS"),
		RedisDB:         redisDB,
		CacheTTL:        getDuration("CACHE_TTL", 60*time.Second),
		IsProd:          os.Getenv("IS_PROD") == "true",
	}
}

// Validate reports configuration that would leave the server unusable
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return errors.New("config: ACCESS_TOKEN_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	switch c.StoreDriver {
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("config: MONGO_URI or DB_USER/DB_PASS/DB_HOST is required for the mongo store")
		}
	default:
		return fmt.Errorf("config: unsupported STORE_DRIVER %q (supported: mongo, memory)", c.StoreDriver)
	}
	return nil
}

// mongoURI prefers an explicit MONGO_URI and otherwise assembles an Atlas style URI
func mongoURI() string {
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		return uri
	}
	user, pass, host := os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_HOST")
	if user == "" || host == "" {
		return ""
	}
	return "mongodb+srv://" + url.QueryEscape(user) + ":" + url.QueryEscape(pass) + "@" + host + "/?retryWrites=true&w=majority"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration falls back when the variable is unset or unparsable
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
