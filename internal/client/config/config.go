package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the reconstruction CLI.
//
// Fields:
//   - APIBaseURL: base URL of the reconstruction backend.
//   - AuthBaseURL: base URL of the identity provider.
//   - ClientID: OAuth client id used by the password grant.
//   - DataDir: directory holding the snapshot file and credential store.
//   - RefreshInterval: how often a signed-in session re-syncs in the background.
//
// Units: RefreshInterval is a time.Duration (e.g., 30*time.Second).
type Config struct {
	APIBaseURL      string
	AuthBaseURL     string
	ClientID        string
	DataDir         string
	RefreshInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.AuthBaseURL = "http://127.0.0.1:8000"
	c.ClientID = "building3d-cli"
	c.DataDir = defaultDataDir()
	c.RefreshInterval = 30 * time.Second
}

// defaultDataDir resolves the per-user config directory, falling back to a
// dot directory in the working directory when the platform does not expose one.
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".building3d"
	}
	return filepath.Join(base, "building3d")
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
