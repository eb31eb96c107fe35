package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort   string
	AppEnv    string
	DBDriver  string
	DBDSN     string
	JWTSecret string
	JWTTTL    time.Duration
	UploadDir string
	LogLevel  string
	LogFormat string
	RedisAddr string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	ReconcileInterval time.Duration
}

// Load membaca konfigurasi dari environment (setelah .env dimuat oleh godotenv).
func Load() *Config {
	return &Config{
		AppPort:   GetEnv("APP_PORT", "3000"),
		AppEnv:    GetEnv("APP_ENV", "production"),
		DBDriver:  GetEnv("DB_DRIVER", "sqlite"),
		DBDSN:     GetEnv("DB_DSN", "panti.db"),
		JWTSecret: GetEnv("JWT_SECRET", "panti-werdha-rahasia"),
		JWTTTL:    time.Duration(GetEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,
		UploadDir: GetEnv("UPLOAD_DIR", "./uploads"),
		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogFormat: GetEnv("LOG_FORMAT", "json"),
		RedisAddr: GetEnv("REDIS_ADDR", ""),

		SMTPHost:     GetEnv("SMTP_HOST", ""),
		SMTPPort:     GetEnvAsInt("SMTP_PORT", 587),
		SMTPUser:     GetEnv("SMTP_USER", ""),
		SMTPPassword: GetEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     GetEnv("SMTP_FROM", "noreply@pantiwk.com"),

		ReconcileInterval: time.Duration(GetEnvAsInt("RECONCILE_INTERVAL_MINUTES", 30)) * time.Minute,
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
