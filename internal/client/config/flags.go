package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/boardkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the board API (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-r float    outgoing requests per second, 0 = unlimited
//	-d string   path of the session database
//	-s          mark the credential cookie Secure
//	-l string   log format: text, json or console
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-r", "-d", "-l"}, "-s")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIServerHost, "a", cfg.APIServerHost, "base URL of the board API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.Float64Var(&cfg.RequestsPerSecond, "r", cfg.RequestsPerSecond, "outgoing requests per second, 0 = unlimited")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "path of the session database")
	fs.BoolVar(&cfg.CookieSecure, "s", cfg.CookieSecure, "mark the credential cookie Secure")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format: text, json or console")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
