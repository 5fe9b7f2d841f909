package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration

	RedisURL string
	CartTTL  time.Duration

	PublicDir string

	NotifyURL        string
	NotifyServiceID  string
	NotifyTemplateID string
	NotifyUserID     string

	AdminEmail    string
	AdminPassword string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "storefront"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),

		RedisURL: getEnvOrDefault("REDIS_URL", ""),
		CartTTL:  getDurationEnv("CART_TTL_HOURS", 72, time.Hour),

		PublicDir: getEnvOrDefault("PUBLIC_DIR", "/app/public"),

		NotifyURL:        getEnvOrDefault("NOTIFY_URL", ""),
		NotifyServiceID:  getEnvOrDefault("NOTIFY_SERVICE_ID", ""),
		NotifyTemplateID: getEnvOrDefault("NOTIFY_TEMPLATE_ID", ""),
		NotifyUserID:     getEnvOrDefault("NOTIFY_USER_ID", ""),

		AdminEmail:    getEnvOrDefault("ADMIN_EMAIL", ""),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", ""),
	}
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
