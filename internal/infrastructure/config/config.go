// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"rental-service/internal/domain/apperror"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL (audit trail, optional)
	PostgresURI string

	// Redis (thumbnail cache, optional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// OwnerRez
	OwnerRezUsername    string
	OwnerRezAccessToken string
	OwnerRezV2URL       string
	OwnerRezV1URL       string
	OwnerRezTimeout     time.Duration
	OwnerRezRetryCount  int
	GuestPageSize       int
	GuestMaxPages       int
	GuestFetchTimeout   time.Duration
	DefaultSince        string

	// Thumbnails
	ThumbnailServiceURL string
	ThumbnailTimeout    time.Duration
	ThumbnailCacheTTL   time.Duration

	// Session
	SessionSecret string
	SessionCookie string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 60)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "premiere-stays"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		OwnerRezUsername:    getEnv("OWNERREZ_USERNAME", ""),
		OwnerRezAccessToken: getEnv("OWNERREZ_ACCESS_TOKEN", ""),
		OwnerRezV2URL:       getEnv("OWNERREZ_API_V2", "https://api.ownerrez.com/v2"),
		OwnerRezV1URL:       getEnv("OWNERREZ_API_V1", "https://api.ownerrez.com/v1"),
		OwnerRezTimeout:     getEnvAsDuration("OWNERREZ_TIMEOUT", 30*time.Second),
		OwnerRezRetryCount:  getEnvAsInt("OWNERREZ_RETRY_COUNT", 2),
		GuestPageSize:       getEnvAsInt("GUEST_PAGE_SIZE", 1000),
		GuestMaxPages:       getEnvAsInt("GUEST_MAX_PAGES", 50),
		GuestFetchTimeout:   getEnvAsDuration("GUEST_FETCH_TIMEOUT", 45*time.Second),
		DefaultSince:        getEnv("DEFAULT_SINCE", "2024-01-01T00:00:00Z"),

		ThumbnailServiceURL: getEnv("THUMBNAIL_SERVICE_URL", ""),
		ThumbnailTimeout:    getEnvAsDuration("THUMBNAIL_TIMEOUT", 10*time.Second),
		ThumbnailCacheTTL:   getEnvAsDuration("THUMBNAIL_CACHE_TTL", 24*time.Hour),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionCookie: getEnv("SESSION_COOKIE", "authToken"),
	}

	return config, nil
}

// Validate checks the settings every request depends on. It runs once at startup.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"OWNERREZ_USERNAME", c.OwnerRezUsername},
		{"OWNERREZ_ACCESS_TOKEN", c.OwnerRezAccessToken},
		{"OWNERREZ_API_V2", c.OwnerRezV2URL},
		{"MONGODB_DSN", c.MongoURI},
		{"SESSION_SECRET", c.SessionSecret},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key)
		}
	}

	if len(missing) > 0 {
		return &apperror.ConfigurationError{Missing: missing}
	}
	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("45s") or a plain number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
