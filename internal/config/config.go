package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          string
	DatabaseURL   string // Postgres DSN; empty means records go to the SQLite file
	SQLitePath    string
	SessionTTLMin int // idle sessions are evicted after this many minutes
}

func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getEnv("SQLITE_PATH", "aimtrainer.db"),
		SessionTTLMin: getEnvInt("SESSION_TTL_MIN", 30),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
