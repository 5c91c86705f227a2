// Package config reads server settings from flags, falling back to
// environment variables.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/apex/log"
)

type Config struct {
	Addr         string
	AllowOrigins string
	LogLevel     log.Level
	WSBufferSize int
}

// Load parses args (without the program name) against the CHESS_* environment.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "debug, info, warn, error or fatal")
	buffer := fs.String("ws-buffer", getenv("CHESS_WS_BUFFER", "1024"), "websocket read/write buffer size in bytes")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lvl, err := log.ParseLevel(*level)
	if err != nil {
		return Config{}, fmt.Errorf("log level %q: %w", *level, err)
	}
	size, err := strconv.Atoi(*buffer)
	if err != nil || size <= 0 {
		return Config{}, fmt.Errorf("websocket buffer %q must be a positive integer", *buffer)
	}

	return Config{
		Addr:         *addr,
		AllowOrigins: *origins,
		LogLevel:     lvl,
		WSBufferSize: size,
	}, nil
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
