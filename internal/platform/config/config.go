package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Exchange rate provider
	RateProviderURL        string
	RateFetchTimeout       time.Duration
	RateFetchAttempts      int
	RateFetchBackoff       time.Duration
	RateFetchBackoffFactor int

	// Receipt storage
	ReceiptBucket string
	AWSRegion     string
	PresignTTL    time.Duration

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "expense-management-server")
	viper.SetDefault("RATE_PROVIDER_URL", "https://open.er-api.com/v6/latest/USD")
	viper.SetDefault("RATE_FETCH_TIMEOUT", "10s")
	viper.SetDefault("RATE_FETCH_ATTEMPTS", 3)
	viper.SetDefault("RATE_FETCH_BACKOFF", "1s")
	viper.SetDefault("RATE_FETCH_BACKOFF_FACTOR", 2)
	viper.SetDefault("RECEIPT_BUCKET", "")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("PRESIGN_TTL", "1h")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = parseDurationOr("JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RateProviderURL = viper.GetString("RATE_PROVIDER_URL")
	cfg.RateFetchTimeout = parseDurationOr("RATE_FETCH_TIMEOUT", 10*time.Second)
	cfg.RateFetchAttempts = viper.GetInt("RATE_FETCH_ATTEMPTS")
	cfg.RateFetchBackoff = parseDurationOr("RATE_FETCH_BACKOFF", time.Second)
	cfg.RateFetchBackoffFactor = viper.GetInt("RATE_FETCH_BACKOFF_FACTOR")

	cfg.ReceiptBucket = viper.GetString("RECEIPT_BUCKET")
	if cfg.ReceiptBucket == "" {
		log.Println("Warning: RECEIPT_BUCKET not set. Receipt upload and download will not function.")
	}
	cfg.AWSRegion = viper.GetString("AWS_REGION")
	cfg.PresignTTL = parseDurationOr("PRESIGN_TTL", time.Hour)

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	if cfg.PosthogAPIKey == "" {
		log.Println("Warning: POSTHOG_API_KEY not set. Analytics events will be skipped.")
	}

	return cfg, nil
}

// parseDurationOr reads a duration-valued key, falling back when the value
// does not parse.
func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
