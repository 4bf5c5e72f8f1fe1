package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	PriceDir   string
	FileMarker string
	OutputHTML string
	OutputDir  string

	LogLevel         string
	WatchIntervalSec int
	TableNameWidth   int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		PriceDir:   getEnv("PRICE_DIR", "."),
		FileMarker: getEnv("PRICE_FILE_MARKER", "price"),
		OutputHTML: getEnv("OUTPUT_HTML", "output.html"),
		OutputDir:  getEnv("OUTPUT_DIR", "out"),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 10),
		TableNameWidth:   getEnvInt("TABLE_NAME_WIDTH", 60),
	}

	if err := cfg.Require("PRICE_FILE_MARKER", cfg.FileMarker); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
