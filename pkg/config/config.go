package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port    string
	BaseURL string
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Address  string
	Password string
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type ReportConfig struct {
	// WeeklyCron is a robfig/cron expression; the default fires Mondays 06:00 UTC.
	WeeklyCron string
	ArchiveDir string
}

type StorageConfig struct {
	UploadDir string
}

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Report   ReportConfig
	Storage  StorageConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("SERVER_PORT", "8080"),
			BaseURL: getEnv("SERVER_BASE_URL", "http://localhost:8080"),
		},
		Postgres: PostgresConfig{
			DSN: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			SecretKey:       getEnv("JWT_SECRET_KEY", ""),
			AccessTokenTTL:  getDuration("JWT_ACCESS_TTL", time.Hour*24),
			RefreshTokenTTL: getDuration("JWT_REFRESH_TTL", time.Hour*24*30),
		},
		Report: ReportConfig{
			WeeklyCron: getEnv("REPORT_WEEKLY_CRON", "0 6 * * 1"),
			ArchiveDir: getEnv("REPORT_ARCHIVE_DIR", "reports"),
		},
		Storage: StorageConfig{
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		},
	}
}

// MustValidate fails fast when a backend-touching setting is missing.
func (c *Config) MustValidate() {
	if c.Postgres.DSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if c.JWT.SecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is required")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
