package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string
	Seed    bool
}

func Load() Config {
	// Optional .env in the project root; real env always wins.
	_ = godotenv.Load()

	cfg := Config{
		Port:    getEnv("PORT", "8080"),
		DBDSN:   getEnv("DB_DSN", "storefront.db"), // sqlite file in project root
		LogFile: getEnv("LOG_FILE", ""),
		Seed:    getEnv("SEED", "1") != "0",
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s SEED=%v", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.Seed)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
