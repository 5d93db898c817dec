package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment keys. A .env file in the working directory is honored, real
// environment variables win over it (godotenv does not overwrite).
const (
	envAPIBaseURL          = "MEDXSCAN_API_URL"
	envMode                = "MEDXSCAN_MODE"
	envDataDir             = "MEDXSCAN_DATA_DIR"
	envDownloadDir         = "MEDXSCAN_DOWNLOAD_DIR"
	envOnlineCheckInterval = "MEDXSCAN_ONLINE_CHECK_INTERVAL"
)

// parseEnv overlays Config with values from the process environment.
// A missing .env file is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envMode); v != "" {
		cfg.Mode = SourceMode(v)
	}
	if v := os.Getenv(envDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(envDownloadDir); v != "" {
		cfg.DownloadDir = v
	}
	if v := os.Getenv(envOnlineCheckInterval); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.OnlineCheckInterval = time.Duration(secs) * time.Second
		}
	}
}
