package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	LogLevel        string
	PostgresConnStr string
	MongoURI        string
	MongoDatabase   string
	JWTSecret       string
	AvatarDir       string
}

// Load reads configuration from the environment, with a .env file filling
// in anything unset.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDatabase:   getEnv("MONGO_DATABASE", "board"),
		JWTSecret:       getEnv("JWT_SECRET", "supersecretjwtkey"),
		AvatarDir:       getEnv("AVATAR_DIR", "uploads/avatars"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
