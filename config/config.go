package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes supported by the admin session manager.
const (
	AuthModeJWT     = "jwt"
	AuthModeSession = "session"
)

// Order status policies.
const (
	StatusPolicyStrict     = "strict"
	StatusPolicyPermissive = "permissive"
)

// Config holds all configuration for the storefront API.
type Config struct {
	Env         string
	Port        string
	ServiceName string
	LogLevel    string

	CloudWatchLogGroup string
	MetricsNamespace   string
	MetricsEnabled     bool

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	MongoURL string
	MongoDB  string

	RedisURL string

	// AuthMode selects the admin session implementation: "jwt" or "session".
	AuthMode          string
	JWTSecret         string
	IdentityJWTSecret string
	SessionTTL        time.Duration
	CookieDomain      string
	CookieSecure      bool

	OrderStatusPolicy string
	IdempotencyTTL    time.Duration
	CartCookieName    string

	AllowedOrigins []string

	S3Bucket       string
	S3Prefix       string
	CDNDomain      string
	MaxUploadBytes int64

	AnalyticsTable string

	KafkaBrokers        []string
	KafkaTopic          string
	OrderEventsTopicARN string

	LoginRatePerMinute int
}

// SecretGetter fetches a secret string by name.
type SecretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Load reads configuration from the environment (and a .env file when present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		ServiceName: getEnv("SERVICE_NAME", "streetwear-api"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		CloudWatchLogGroup: os.Getenv("CLOUDWATCH_LOG_GROUP"),
		MetricsNamespace:   getEnv("METRICS_NAMESPACE", "Streetwear"),
		MetricsEnabled:     getEnvBool("CLOUDWATCH_METRICS_ENABLED", false),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "Asia/Kolkata"),

		MongoURL: getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "streetwear"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		AuthMode:          strings.ToLower(getEnv("AUTH_MODE", AuthModeJWT)),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		IdentityJWTSecret: os.Getenv("IDENTITY_JWT_SECRET"),
		SessionTTL:        getEnvDuration("ADMIN_SESSION_TTL", 24*time.Hour),
		CookieDomain:      os.Getenv("COOKIE_DOMAIN"),
		CookieSecure:      getEnvBool("COOKIE_SECURE", false),

		OrderStatusPolicy: strings.ToLower(getEnv("ORDER_STATUS_POLICY", StatusPolicyPermissive)),
		IdempotencyTTL:    getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		CartCookieName:    getEnv("CART_COOKIE_NAME", "cart_session"),

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		S3Bucket:       getEnv("S3_BUCKET", "streetwear-uploads"),
		S3Prefix:       getEnv("S3_PREFIX", "uploads/"),
		CDNDomain:      os.Getenv("CDN_DOMAIN"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5*1024*1024)),

		AnalyticsTable: getEnv("ANALYTICS_TABLE", "streetwear-product-stats"),

		KafkaBrokers:        splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:          getEnv("KAFKA_TOPIC", "store.order-events"),
		OrderEventsTopicARN: os.Getenv("ORDER_EVENTS_TOPIC_ARN"),

		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 10),
	}

	return cfg, nil
}

// ApplySecrets overrides database credentials and signing secrets with values
// stored in Secrets Manager. Missing secrets leave the env values in place.
func (c *Config) ApplySecrets(ctx context.Context, sm SecretGetter) {
	if dbjson, err := sm.GetSecret(ctx, "streetwear/DB_CREDENTIALS"); err == nil && dbjson != "" {
		var m map[string]string
		if err := json.Unmarshal([]byte(dbjson), &m); err == nil {
			overlay(&c.PostgresUser, m["POSTGRES_USER"])
			overlay(&c.PostgresPassword, m["POSTGRES_PASSWORD"])
			overlay(&c.PostgresDB, m["POSTGRES_DB"])
			overlay(&c.PostgresHost, m["POSTGRES_HOST"])
			overlay(&c.PostgresPort, m["POSTGRES_PORT"])
		}
	}
	if v, err := sm.GetSecret(ctx, "streetwear/JWT_SECRET"); err == nil {
		overlay(&c.JWTSecret, strings.TrimSpace(v))
	}
	if v, err := sm.GetSecret(ctx, "streetwear/IDENTITY_JWT_SECRET"); err == nil {
		overlay(&c.IdentityJWTSecret, strings.TrimSpace(v))
	}
}

// UseSecrets reports whether Secrets Manager overrides are enabled.
func UseSecrets() bool {
	return os.Getenv("AWS_USE_SECRETS") == "true"
}

// Validate fails fast on configuration the server cannot run without.
func (c *Config) Validate() error {
	if c.PostgresUser == "" || c.PostgresPassword == "" || c.PostgresDB == "" || c.PostgresHost == "" {
		return fmt.Errorf("database config incomplete")
	}
	switch c.AuthMode {
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
		}
	case AuthModeSession:
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}
	switch c.OrderStatusPolicy {
	case StatusPolicyStrict, StatusPolicyPermissive:
	default:
		return fmt.Errorf("unknown ORDER_STATUS_POLICY %q", c.OrderStatusPolicy)
	}
	return nil
}

// PostgresDSN builds the gorm postgres DSN.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB,
		c.PostgresPort, c.PostgresSSLMode, c.PostgresTimeZone,
	)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p), "/"))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
