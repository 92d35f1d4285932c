package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI      string
	DBName        string
	JWTSecret     string
	TokenTTL      time.Duration
	OTPTTL        time.Duration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	MailFrom      string
	AllowedOrigin string
	ErrorLogPath  string
	Port          string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	return Config{
		MongoURI:      mustEnv("MONGO_URI"),
		DBName:        getEnvOrDefault("DB_NAME", "washwithkings"),
		JWTSecret:     mustEnv("JWT_SECRET"),
		TokenTTL:      getDurationEnv("TOKEN_TTL_DAYS", 7, 24*time.Hour),
		OTPTTL:        getDurationEnv("OTP_TTL_MINUTES", 15, time.Minute),
		SMTPHost:      getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnvOrDefault("SMTP_PORT", "465"),
		SMTPUsername:  getEnvOrDefault("SMTP_USERNAME", ""),
		SMTPPassword:  getEnvOrDefault("SMTP_PASSWORD", ""),
		MailFrom:      getEnvOrDefault("MAIL_FROM", "Wash With Kings"),
		AllowedOrigin: getEnvOrDefault("ALLOWED_ORIGIN", "https://www.washwithkings.com"),
		ErrorLogPath:  getEnvOrDefault("ERROR_LOG_PATH", "error.log.txt"),
		Port:          getEnvOrDefault("PORT", "5000"),
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		log.Fatalf("ENV %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
