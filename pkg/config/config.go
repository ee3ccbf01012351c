package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Flyer      FlyerConfig
	Session    SessionConfig
	Export     ExportConfig
	R2         R2Config
	Upload     UploadConfig
	LogLevel   string
	AppName    string
	ContactURL string
}

type ServerConfig struct {
	Port string
	// AllowOrigins is the comma separated CORS origin list; session cookies need
	// explicit origins.
	AllowOrigins string
}

type FlyerConfig struct {
	Brand            string
	ValidationPolicy string
}

type SessionConfig struct {
	MaxSessions int
	TTL         time.Duration
}

type ExportConfig struct {
	Dir             string
	Retention       time.Duration
	CleanupSchedule string
}

// R2Config is optional; exports are only mirrored to R2 when Enabled reports true.
type R2Config struct {
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

type UploadConfig struct {
	MaxImageSize int64
}

func Load() *Config {
	godotenv.Load() // .env is optional

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			AllowOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Flyer: FlyerConfig{
			Brand:            getEnv("FLYER_BRAND", "ANGKORLISTING"),
			ValidationPolicy: getEnv("VALIDATION_POLICY", "strict"),
		},
		Session: SessionConfig{
			MaxSessions: getEnvInt("SESSION_MAX", 256),
			TTL:         getEnvDuration("SESSION_TTL", 12*time.Hour),
		},
		Export: ExportConfig{
			Dir:             getEnv("EXPORT_DIR", ""),
			Retention:       getEnvDuration("EXPORT_RETENTION", 24*time.Hour),
			CleanupSchedule: getEnv("EXPORT_CLEANUP_SCHEDULE", "@hourly"),
		},
		R2: R2Config{
			AccountID: getEnv("R2_ACCOUNT_ID", ""),
			AccessKey: getEnv("R2_ACCESS_KEY", ""),
			SecretKey: getEnv("R2_SECRET_KEY", ""),
			Bucket:    getEnv("R2_BUCKET_NAME", ""),
			PublicURL: getEnv("R2_PUBLIC_URL", ""),
		},
		Upload: UploadConfig{
			MaxImageSize: int64(getEnvInt("MAX_IMAGE_SIZE", 10*1024*1024)),
		},
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		AppName:    getEnv("APP_NAME", "flyer-builder"),
		ContactURL: getEnv("CONTACT_PAGE_URL", "http://localhost:3000/api/contact"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
