package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	BaseURL      string
	HTTPTimeout  time.Duration
	DataDir      string
	DeviceSecret string
	StubPort     string
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:      getEnv("PUP_BASE_URL", "https://pup.levincore.cloud/api/v1"),
		HTTPTimeout:  getEnvDuration("PUP_HTTP_TIMEOUT_SECONDS", 15) * time.Second,
		DataDir:      getEnv("PUP_DATA_DIR", defaultDataDir()),
		DeviceSecret: getEnv("PUP_DEVICE_SECRET", ""),
		StubPort:     getEnv("PUP_STUB_PORT", "8080"),
	}

	if cfg.BaseURL == "" {
		log.Fatal("PUP_BASE_URL must be set")
	}

	return cfg
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pup"
	}
	return filepath.Join(home, ".pup")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return time.Duration(parsed)
		}
	}
	return time.Duration(fallback)
}
