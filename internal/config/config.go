package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	RedisURL          string
	Host              string // Public base URL used when composing short URLs
	JWTSecret         string // Secret key for JWT token signing
	SuperuserUsername string // Bootstrap credentials for POST /api/auth/init
	SuperuserPassword string
	AllowPublicSignup bool
	VisitorSalt       string   // Salt mixed into visitor IP hashes
	CORSOrigins       []string // Allowed browser origins
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		Host:              getEnv("HOST", "http://localhost:8080"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		SuperuserUsername: getEnv("SUPERUSER_USERNAME", ""),
		SuperuserPassword: getEnv("SUPERUSER_PASSWORD", ""),
		AllowPublicSignup: getEnvBool("ALLOW_PUBLIC_SIGNUP", false),
		VisitorSalt:       getEnv("VISITOR_SALT", "makemeshort_salt"),
		CORSOrigins:       getEnvList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:4173"}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
