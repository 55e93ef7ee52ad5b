// Package config loads runtime configuration for the board CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally read from a .env file
//     (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the board API
//	-t int      request timeout (seconds)
//	-r float    outgoing requests per second, 0 = unlimited
//	-d string   session database path
//	-s          Secure credential cookie
//	-l string   log format (text, json, console)
//
// # Environment
//
//	BOARD_API_SERVER_HOST, BOARD_REQUEST_TIMEOUT, BOARD_SESSION_DB,
//	BOARD_COOKIE_SECURE, BOARD_LOG_FORMAT
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_server_host": "http://localhost:8080",
//	  "request_timeout": "10s",
//	  "requests_per_second": 0,
//	  "session_db": "session.db",
//	  "cookie_secure": false,
//	  "cookie_ttl_days": 1,
//	  "logout_flag_ttl": "100ms",
//	  "expiry_check_interval": "30s",
//	  "log_format": "text"
//	}
package config
