package config

import (
	"os"
	"strconv"
)

// Config holds the process configuration, read from the environment
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	Port          string
	DataDir       string // Local backup location
	AdminCode     string // Access code granting authoring rights
	JWTSecret     string
	PublicBaseURL string // Prefix for generated media URLs
	MaxUploadSize int64  // Bytes
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "courseforge"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Port:          getEnv("PORT", "8080"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		AdminCode:     getEnv("ADMIN_CODE", "admin"),
		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		MaxUploadSize: getEnvInt64("MAX_UPLOAD_SIZE", 50<<20),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}
