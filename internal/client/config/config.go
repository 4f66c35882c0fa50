// Package config loads runtime settings for the effy CLI.
package config

import (
	"time"

	"github.com/effyhq/effy-cli/internal/client/session"
)

// Config holds runtime settings for the effy CLI.
//
// Fields:
//   - BaseURL: root of the backend HTTP API, including the /api prefix.
//   - RequestTimeout: fixed bound on every outbound request.
//   - TokenPath: location of the persisted bearer token.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	TokenPath      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.TokenPath = session.DefaultTokenPath()
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
