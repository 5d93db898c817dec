package config

import "time"

// SourceMode selects where analyses come from: the local mock generator or
// the remote inference API. It is resolved once at composition time.
type SourceMode string

const (
	SourceModeMock   SourceMode = "mock"
	SourceModeRemote SourceMode = "remote"
)

// Config holds runtime settings for the MedXScan CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend (scheme://host:port).
//   - Mode: mock or remote data source.
//   - DataDir: directory holding the local SQLite database.
//   - DownloadDir: directory report files are saved into.
//   - OnlineCheckInterval: how often the client probes backend reachability.
type Config struct {
	APIBaseURL          string
	Mode                SourceMode
	DataDir             string
	DownloadDir         string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.Mode = SourceModeMock
	c.DataDir = "."
	c.DownloadDir = "reports"
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), a JSON file
// (if provided) and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
