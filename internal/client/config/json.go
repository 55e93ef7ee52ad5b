package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/boardkeeper/internal/flagx"
	"github.com/dmitrijs2005/boardkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Fields left out of the file
// keep their earlier value.
type JsonConfig struct {
	APIServerHost       string          `json:"api_server_host"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	RequestsPerSecond   *float64        `json:"requests_per_second"`
	SessionDBPath       string          `json:"session_db"`
	CookieSecure        *bool           `json:"cookie_secure"`
	CookieTTLDays       *int            `json:"cookie_ttl_days"`
	LogoutFlagTTL       *timex.Duration `json:"logout_flag_ttl"`
	ExpiryCheckInterval *timex.Duration `json:"expiry_check_interval"`
	LogFormat           string          `json:"log_format"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIServerHost != "" {
		cfg.APIServerHost = jc.APIServerHost
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *jc.RequestsPerSecond
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.CookieSecure != nil {
		cfg.CookieSecure = *jc.CookieSecure
	}
	if jc.CookieTTLDays != nil {
		cfg.CookieTTLDays = *jc.CookieTTLDays
	}
	if jc.LogoutFlagTTL != nil {
		cfg.LogoutFlagTTL = jc.LogoutFlagTTL.Duration
	}
	if jc.ExpiryCheckInterval != nil {
		cfg.ExpiryCheckInterval = jc.ExpiryCheckInterval.Duration
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
}
