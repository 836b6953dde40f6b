// Package config loads application settings from the environment, with a
// .env file honoured for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every externally supplied setting.
//
// RapidAPIKey may legitimately be empty: snippet storage works without it,
// and the execution client reports the missing credential as a recognized
// condition when a run is actually attempted.
type Config struct {
	Port         int
	DBPath       string
	JWTSecret    string
	RapidAPIKey  string
	LanguagesURL string // empty means the hosted default
	SeedUsersURL string // empty means the hosted default
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win
// over values from the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: loading .env file: %w", err)
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("config: invalid PORT %q", portStr)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, errors.New("config: JWT_SECRET must be set")
	}

	return &Config{
		Port:         port,
		DBPath:       getEnv("DB_PATH", "snippets.db"),
		JWTSecret:    jwtSecret,
		RapidAPIKey:  os.Getenv("RAPIDAPI_KEY"),
		LanguagesURL: os.Getenv("LANGUAGES_URL"),
		SeedUsersURL: os.Getenv("SEED_USERS_URL"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
