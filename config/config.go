package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the process settings read from .env and the environment.
type Config struct {
	Port              string
	DatabaseURL       string
	CardsFile         string
	JWTSecret         string
	AllowedOrigins    []string
	DefaultDifficulty int
	NATSURL           string
	NATSSubject       string
	RandSeed          uint64
	LogLevel          string
	LogEncoding       string
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "4000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		CardsFile:      os.Getenv("CARDS_FILE"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),
		NATSURL:        os.Getenv("NATS_URL"),
		NATSSubject:    getenv("NATS_SUBJECT", "jetlag.history"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogEncoding:    getenv("LOG_ENCODING", "json"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required in .env or environment")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required in .env or environment")
	}

	diff, err := strconv.Atoi(getenv("DEFAULT_DIFFICULTY", "5"))
	if err != nil || diff < 3 || diff > 5 {
		return nil, fmt.Errorf("DEFAULT_DIFFICULTY must be 3, 4 or 5, got %q", os.Getenv("DEFAULT_DIFFICULTY"))
	}
	cfg.DefaultDifficulty = diff

	if s := os.Getenv("RAND_SEED"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RAND_SEED: %w", err)
		}
		cfg.RandSeed = seed
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
