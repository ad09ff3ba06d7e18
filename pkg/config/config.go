package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	ServerPort  string
	Environment string

	// Database: DATABASE_URL selects Postgres; otherwise an embedded
	// SQLite file at DBPath is used.
	DatabaseURL string
	DBPath      string

	// File storage
	UploadDir string
	// S3-compatible object storage (optional; local disk is the fallback)
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Bucket          string
	S3PublicURL       string

	AllowedOrigins []string

	// Prefix used when generating human-facing case numbers.
	CaseNumberPrefix string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBPath:            getEnv("DB_PATH", "db/office.db"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3PublicURL:       getEnv("S3_PUBLIC_URL", ""),
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		CaseNumberPrefix:  getEnv("CASE_NUMBER_PREFIX", "QZ"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
