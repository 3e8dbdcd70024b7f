package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/artilectsolutions/budgetsplit-backend/internal/distribution"
	"github.com/artilectsolutions/budgetsplit-backend/internal/validation"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	CORS         CORSConfig
	Auth         AuthConfig
	Share        ShareConfig
	RateLimit    RateLimitConfig
	Distribution DistributionConfig
	Log          LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a reverse proxy that sets those headers.
	TrustProxy bool
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig holds session token and admin account configuration
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	AdminEmail    string
	AdminPassword string
	AdminName     string
	PurgeSchedule string
}

// ShareConfig holds share-link configuration. Key is a base64 Fernet key;
// when empty an ephemeral key is generated at startup.
type ShareConfig struct {
	Key string
	TTL time.Duration
}

// RateLimitConfig holds request rate limiting configuration. When RedisURL is
// set the counters are kept in Redis, otherwise in process memory.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	RedisURL string
}

// DistributionConfig holds the defaults applied when a request omits them.
type DistributionConfig struct {
	ConversionRate float64
	Policy         distribution.Policy
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	var errs []string
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return d
	}
	integer := func(key string, def int) int {
		n, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return n
	}
	boolean := func(key string, def bool) bool {
		b, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(def)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return b
	}
	float := func(key string, def float64) float64 {
		f, err := strconv.ParseFloat(getEnv(key, strconv.FormatFloat(def, 'f', -1, 64)), 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return f
	}

	config := &Config{
		Server: ServerConfig{
			Port:       getEnv("SERVER_PORT", "5000"),
			Host:       getEnv("SERVER_HOST", "localhost"),
			TrustProxy: boolean("TRUST_PROXY", false),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/budgetsplit.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost")),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTL:      duration("JWT_EXPIRE", "24h"),
			BcryptCost:    integer("BCRYPT_COST", 0),
			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
			AdminName:     getEnv("ADMIN_NAME", "Admin User"),
			PurgeSchedule: getEnv("TOKEN_PURGE_SCHEDULE", "@every 1h"),
		},
		Share: ShareConfig{
			Key: getEnv("SHARE_KEY", ""),
			TTL: duration("SHARE_TTL", "168h"),
		},
		RateLimit: RateLimitConfig{
			Requests: integer("RATE_LIMIT_REQUESTS", 100),
			Window:   duration("RATE_LIMIT_WINDOW", "15m"),
			RedisURL: getEnv("REDIS_URL", ""),
		},
		Distribution: DistributionConfig{
			ConversionRate: float("DEFAULT_CONVERSION_RATE", distribution.DefaultConversionRate),
			Policy: distribution.Policy{
				CompanyPct:      float("DEFAULT_COMPANY_PERCENTAGE", distribution.DefaultCompanyPct),
				DeveloperPct:    float("DEFAULT_DEVELOPER_PERCENTAGE", distribution.DefaultDeveloperPct),
				JobHunterPct:    float("DEFAULT_JOB_HUNTER_PERCENTAGE", distribution.DefaultJobHunterPct),
				CommunicatorPct: float("DEFAULT_COMMUNICATOR_PERCENTAGE", distribution.DefaultCommunicatorPct),
			},
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if config.Auth.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}
	if config.Distribution.ConversionRate <= 0 {
		errs = append(errs, "DEFAULT_CONVERSION_RATE must be positive")
	}
	if err := validation.ValidatePolicy(config.Distribution.Policy); err != nil {
		errs = append(errs, fmt.Sprintf("DEFAULT_*_PERCENTAGE: %v", err))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
