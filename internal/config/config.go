package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	TokenTTLHours int64
	AdminEmail    string
	AdminPassword string
}

var instance *AppConfig
var once sync.Once

func GetAppConfig() *AppConfig {
	once.Do(func() {
		instance = &AppConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Infof("no .env file loaded: %s", err.Error())
		}

		instance.Port = getEnv("PORT", "3000")

		instance.DatabaseURL = getEnv("DATABASE_URL", "")
		if instance.DatabaseURL == "" {
			logrus.Fatal("could not get db url")
		}

		instance.JWTSecret = getEnv("JWT_SECRET", "")
		if instance.JWTSecret == "" {
			logrus.Fatal("could not get jwt secret")
		}

		instance.TokenTTLHours = getEnvAsInt("TOKEN_TTL_HOURS", 12)

		instance.AdminEmail = getEnv("ADMIN_EMAIL", "")
		instance.AdminPassword = getEnv("ADMIN_PASSWORD", "")
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
