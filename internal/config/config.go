package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type SeedUser struct {
	Username string
	Password string
	Role     string
}

type Config struct {
	Port        string
	DatabaseURL string
	SeedUsers   []SeedUser
}

func Load() (Config, error) {
	// .env is optional; system environment wins when both are set.
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL required")
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD required")
	}

	userPassword := os.Getenv("USER_PASSWORD")
	if userPassword == "" {
		return Config{}, fmt.Errorf("USER_PASSWORD required")
	}

	return Config{
		Port:        getEnv("APP_PORT", "8080"),
		DatabaseURL: databaseURL,
		SeedUsers: []SeedUser{
			{
				Username: getEnv("ADMIN_USERNAME", "admin_user"),
				Password: adminPassword,
				Role:     "admin",
			},
			{
				Username: getEnv("USER_USERNAME", "regular_user"),
				Password: userPassword,
				Role:     "user",
			},
		},
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
