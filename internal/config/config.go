package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// Database
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Redis
	EnableRedis bool
	RedisURL    string

	// Server
	Port        string
	Environment string

	// CORS
	CORSOrigins []string

	// Admin rate limiting, per client IP
	AdminRateLimit int
	AdminRateBurst int

	// Media storage
	MediaStorage   string
	UploadDir      string
	MaxUploadSize  int64
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
	S3PublicURL    string

	// Rendering
	EnableCache       bool
	RenderCacheTTL    int
	EnableWarmup      bool
	BackgroundWorkers int

	// Observability
	EnableMetrics bool
	LogLevel      string
	LogFormat     string
}

const (
	MediaStorageLocal = "local"
	MediaStorageS3    = "s3"
)

func New() *Config {
	c := &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "landing"),
		DBPassword: getEnv("DB_PASSWORD", "landing"),
		DBName:     getEnv("DB_NAME", "landingdb"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Redis
		EnableRedis: getEnvAsBool("ENABLE_REDIS", true),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// CORS
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")),

		// Admin rate limiting
		AdminRateLimit: getEnvAsInt("ADMIN_RATE_LIMIT_PER_MINUTE", 600),
		AdminRateBurst: getEnvAsInt("ADMIN_RATE_LIMIT_BURST", 60),

		// Media storage
		MediaStorage:   strings.ToLower(getEnv("MEDIA_STORAGE", MediaStorageLocal)),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize:  int64(getEnvAsInt("MAX_UPLOAD_SIZE_MB", 50)) * 1024 * 1024,
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		S3UsePathStyle: getEnvAsBool("S3_USE_PATH_STYLE", false),
		S3PublicURL:    strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),

		// Rendering
		EnableCache:       getEnvAsBool("ENABLE_CACHE", true),
		RenderCacheTTL:    getEnvAsInt("RENDER_CACHE_TTL_SECONDS", 300),
		EnableWarmup:      getEnvAsBool("ENABLE_RENDER_WARMUP", true),
		BackgroundWorkers: getEnvAsInt("BACKGROUND_WORKERS", 1),

		// Observability
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "debug")),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if c.MaxUploadSize <= 0 {
		c.MaxUploadSize = 50 * 1024 * 1024
	}
	if c.MediaStorage != MediaStorageS3 {
		c.MediaStorage = MediaStorageLocal
	}

	// Build DSN unless one is given
	c.DatabaseURL = getEnv("DATABASE_URL", fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	))

	return c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesS3 reports whether uploaded media goes to an S3 bucket.
func (c *Config) UsesS3() bool {
	return c.MediaStorage == MediaStorageS3 && c.S3Bucket != ""
}
