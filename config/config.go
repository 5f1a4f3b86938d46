package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds application configuration loaded from environment.
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	AWS       AWSConfig
	Images    ImagesConfig
	Analytics AnalyticsConfig
}

// AppConfig holds process-wide settings.
type AppConfig struct {
	Env string // "production" switches logging to JSON
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
	MaxMultipartMemory int64  // bytes kept in memory while parsing event forms
}

// DatabaseConfig holds PostgreSQL connection settings and the store selection.
type DatabaseConfig struct {
	Driver         string // postgres or mongo
	URL            string // if set, used as-is
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int32
	MaxConnIdleSec int // 0 keeps the pgx default
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AWSConfig holds AWS credentials.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// ImagesConfig holds event image upload settings.
type ImagesConfig struct {
	Bucket        string
	PublicBaseURL string
	Folder        string
}

// AnalyticsConfig holds the PostHog settings used by the worker.
// An empty APIKey makes the worker log captures instead of sending them.
type AnalyticsConfig struct {
	APIKey           string
	Host             string // empty uses PostHog cloud
	FlushIntervalSec int
}

// DSN returns the PostgreSQL connection string.
// If DatabaseConfig.URL is set (e.g. DATABASE_URL env), it is used as-is; otherwise built from components.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()      // .env
	_ = godotenv.Load("env") // env (no leading dot)

	cfg := &Config{
		App: AppConfig{
			Env: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			MaxMultipartMemory: int64(getEnvInt("MAX_MULTIPART_MEMORY_MB", 32)) << 20,
		},
		Database: DatabaseConfig{
			Driver:         strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
			URL:            getEnv("DATABASE_URL", ""),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "dev_events"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       int32(getEnvInt("DB_MAX_CONNS", 0)),
			MaxConnIdleSec: getEnvInt("DB_MAX_CONN_IDLE_SEC", 0),
		},

		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "dev-events"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		Images: ImagesConfig{
			Bucket:        getEnv("AWS_S3_IMAGES_BUCKET", "dev-events-images"),
			PublicBaseURL: getEnv("AWS_S3_PUBLIC_BASE_URL", ""),
			Folder:        getEnv("IMAGE_UPLOAD_FOLDER", "dev-events"),
		},
		Analytics: AnalyticsConfig{
			APIKey:           getEnv("POSTHOG_API_KEY", ""),
			Host:             getEnv("POSTHOG_HOST", ""),
			FlushIntervalSec: getEnvInt("POSTHOG_FLUSH_INTERVAL_SEC", 5),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at startup.
func (c *Config) Validate() error {
	var errs []string
	switch c.Database.Driver {
	case DriverPostgres, DriverMongo:
	default:
		errs = append(errs, fmt.Sprintf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMongo, c.Database.Driver))
	}
	if c.Server.MaxMultipartMemory <= 0 {
		errs = append(errs, "MAX_MULTIPART_MEMORY_MB must be positive")
	}
	if c.Images.Bucket == "" {
		errs = append(errs, "AWS_S3_IMAGES_BUCKET is required")
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
