package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	JWTSecret           string
	DBPath              string
	DatabaseURL         string
	Timezone            string
	TokenExpiryDuration string
	SweepSchedule       string
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	AppConfig = Config{
		Port:                getEnvOrDefault("PORT", "3000"),
		JWTSecret:           mustGetEnv("JWT_SECRET"),
		DBPath:              getEnvOrDefault("DB_PATH", "payroll.db"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		Timezone:            getEnvOrDefault("TIMEZONE", "Asia/Vientiane"),
		TokenExpiryDuration: getEnvOrDefault("TOKEN_EXPIRY", "24h"),
		SweepSchedule:       getEnvOrDefault("SWEEP_SCHEDULE", "0 0 * * *"),
	}
}

func mustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
