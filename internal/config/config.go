package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL   string
	RunMigrations bool

	RedisURL string

	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIORegion         string
	MinIOUseSSL         bool
	MinIOPublicUseSSL   bool
	StorageTimeout      time.Duration

	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	ClassifierTimeout time.Duration

	IdentityIssuer    string
	IdentityAudience  string
	IdentityPublicKey string
	IdentitySecret    string
	AdminSecretHash   string

	IssueDailyLimit int
	MaxUploadSize   int64
	MaxImages       int

	CORSOrigins string

	ResendAPIKey  string
	FromEmail     string
	Domain        string
	DefaultLocale string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RunMigrations: getBoolEnv("RUN_MIGRATIONS", true),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOPublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "localhost:9000")),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:         getEnv("MINIO_BUCKET", "public-pulse-images"),
		MinIORegion:         getEnv("MINIO_REGION", "us-east-1"),
		MinIOUseSSL:         getBoolEnv("MINIO_USE_SSL", false),
		MinIOPublicUseSSL:   getBoolEnv("MINIO_PUBLIC_USE_SSL", true),
		StorageTimeout:      getDurationEnv("STORAGE_TIMEOUT", 30*time.Second),

		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		ClassifierTimeout: getDurationEnv("CLASSIFIER_TIMEOUT", 15*time.Second),

		IdentityIssuer:    getEnv("IDENTITY_ISSUER", ""),
		IdentityAudience:  getEnv("IDENTITY_AUDIENCE", ""),
		IdentityPublicKey: getEnv("IDENTITY_PUBLIC_KEY", ""),
		IdentitySecret:    getEnv("IDENTITY_SECRET", ""),
		AdminSecretHash:   getEnv("ADMIN_SECRET_HASH", ""),

		IssueDailyLimit: getIntEnv("ISSUE_DAILY_LIMIT", 20),
		MaxUploadSize:   int64(getIntEnv("MAX_UPLOAD_SIZE", 5*1024*1024)),
		MaxImages:       getIntEnv("MAX_IMAGES", 10),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		FromEmail:     getEnv("FROM_EMAIL", "noreply@example.com"),
		Domain:        getEnv("DOMAIN", "localhost:8081"),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
