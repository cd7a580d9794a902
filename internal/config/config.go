// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// HistoryDB is the SQLite DSN for the conversion history. Empty means
	// keep history in memory only.
	HistoryDB string

	// Warehouse and SourceDatabase replace the placeholder tokens in
	// generated Silver queries. Empty keeps the placeholders.
	Warehouse      string
	SourceDatabase string
}

// Load reads configuration from a .env file (if present) and environment
// variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           8080,
		HistoryDB:      os.Getenv("HISTORY_DB"),
		Warehouse:      os.Getenv("SNOWGEN_WAREHOUSE"),
		SourceDatabase: os.Getenv("SNOWGEN_SOURCE_DB"),
	}

	if p := os.Getenv("PORT"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid PORT %q", p)
		}
		cfg.Port = v
	}
	return cfg, nil
}
