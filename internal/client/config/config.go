package config

import "time"

// Config holds runtime settings for the board CLI.
//
// Fields:
//   - APIServerHost: base URL of the board REST API.
//   - RequestTimeout: timeout of a single API call.
//   - RequestsPerSecond: outgoing request throttle; 0 disables it.
//   - SessionDBPath: SQLite file holding the cookie jar.
//   - CookieSecure: Secure attribute of the persisted credential cookie.
//   - CookieTTLDays: lifetime of the persisted credential cookie.
//   - LogoutFlagTTL: how long JustLoggedOut stays set after a logout.
//   - ExpiryCheckInterval: how often the CLI checks the credential's expiry.
//   - LogFormat: "text", "json" or "console".
type Config struct {
	APIServerHost       string
	RequestTimeout      time.Duration
	RequestsPerSecond   float64
	SessionDBPath       string
	CookieSecure        bool
	CookieTTLDays       int
	LogoutFlagTTL       time.Duration
	ExpiryCheckInterval time.Duration
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIServerHost = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.RequestsPerSecond = 0
	c.SessionDBPath = "session.db"
	c.CookieSecure = false
	c.CookieTTLDays = 1
	c.LogoutFlagTTL = 100 * time.Millisecond
	c.ExpiryCheckInterval = 30 * time.Second
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
