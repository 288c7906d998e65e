package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST        string
	DbPORT        string
	DbUSER        string
	DbPASSWORD    string
	DbNAME        string
	DbSSLMODE     string
	MigrationsDir string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

// Media describes how stored objects are addressed and where uploads are staged.
type Media struct {
	PublicURL     string
	Folder        string
	UploadDir     string
	MaxUploadSize int64
}

type Log struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type Config struct {
	ServerPort           int
	DB                   DB
	MinIO                MinIO
	Media                Media
	Log                  Log
	JWTSecretKey         string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	CookieSecure         bool
	PublishSweepInterval time.Duration
	CORSAllowedOrigins   []string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		log.Printf("Warning: invalid duration %q for %s, using %s", value, key, fallback)
		return fallback
	}
	return duration
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func LoadDB() DB {
	return DB{
		DbHOST:        getEnv("DB_HOST", "localhost"),
		DbPORT:        getEnv("DB_PORT", "5432"),
		DbUSER:        getEnv("DB_USER", "postgres"),
		DbPASSWORD:    getEnv("DB_PASSWORD", "password"),
		DbNAME:        getEnv("DB_NAME", "socialnet"),
		DbSSLMODE:     getEnv("DB_SSLMODE", "disable"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "media"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadMedia() Media {
	return Media{
		PublicURL:     strings.TrimSuffix(getEnv("MEDIA_PUBLIC_URL", "http://localhost:8080/media"), "/"),
		Folder:        strings.Trim(getEnv("MEDIA_FOLDER", "posts"), "/"),
		UploadDir:     getEnv("UPLOAD_DIR", os.TempDir()),
		MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 10*1024*1024),
	}
}

func LoadLog() Log {
	return Log{
		File:       getEnv("LOG_FILE", ""),
		MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 50),
		MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
		MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:           getEnvAsInt("SERVER_PORT", 8080),
		DB:                   LoadDB(),
		MinIO:                LoadMinIO(),
		Media:                LoadMedia(),
		Log:                  LoadLog(),
		JWTSecretKey:         getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration:  getEnvDuration("ACCESS_TOKEN_DURATION", 24*time.Hour),
		RefreshTokenDuration: getEnvDuration("REFRESH_TOKEN_DURATION", 168*time.Hour),
		CookieSecure:         getEnvBool("COOKIE_SECURE", false),
		PublishSweepInterval: getEnvDuration("PUBLISH_SWEEP_INTERVAL", time.Minute),
		CORSAllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}
