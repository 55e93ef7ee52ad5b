package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded into the process environment before the variables are
// read. Variables already set win over the file.
var envFile = ".env"

const (
	envAPIServerHost  = "BOARD_API_SERVER_HOST"
	envRequestTimeout = "BOARD_REQUEST_TIMEOUT"
	envSessionDB      = "BOARD_SESSION_DB"
	envCookieSecure   = "BOARD_COOKIE_SECURE"
	envLogFormat      = "BOARD_LOG_FORMAT"
)

// parseEnv overlays Config with BOARD_* environment variables. A missing
// .env file is fine; a malformed value panics like a malformed flag.
//
// BOARD_REQUEST_TIMEOUT accepts a duration ("5s") or whole seconds ("5").
func parseEnv(cfg *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(envAPIServerHost); ok && v != "" {
		cfg.APIServerHost = v
	}
	if v, ok := os.LookupEnv(envRequestTimeout); ok && v != "" {
		cfg.RequestTimeout = parseSecondsOrDuration(envRequestTimeout, v)
	}
	if v, ok := os.LookupEnv(envSessionDB); ok && v != "" {
		cfg.SessionDBPath = v
	}
	if v, ok := os.LookupEnv(envCookieSecure); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(errors.New(envCookieSecure + ": " + err.Error()))
		}
		cfg.CookieSecure = b
	}
	if v, ok := os.LookupEnv(envLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
}

func parseSecondsOrDuration(name, v string) time.Duration {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(errors.New(name + ": " + err.Error()))
	}
	return d
}
