// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Config holds all configuration values for the Fahrtenlog API server and importer.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// CSVEncoding is the character encoding of source CSV files.
	// Defaults to "iso-8859-1", the upstream exporter's encoding.
	CSVEncoding string

	// CSVDelimiter is the field delimiter of source CSV files.
	// Defaults to ";". Must be a single character.
	CSVDelimiter rune

	// GapThreshold is the largest tolerated gap between adjacent source files.
	// Set GAP_THRESHOLD_HOURS to override; defaults to 6 hours.
	GapThreshold time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// naming the first malformed value.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		CSVEncoding: getEnv("CSV_ENCODING", "iso-8859-1"),
	}

	delim := getEnv("CSV_DELIMITER", ";")
	if utf8.RuneCountInString(delim) != 1 {
		return Config{}, fmt.Errorf("CSV_DELIMITER must be a single character, got %q", delim)
	}
	cfg.CSVDelimiter, _ = utf8.DecodeRuneInString(delim)

	hours, err := strconv.Atoi(getEnv("GAP_THRESHOLD_HOURS", "6"))
	if err != nil || hours <= 0 {
		return Config{}, fmt.Errorf("GAP_THRESHOLD_HOURS must be a positive integer, got %q", getEnv("GAP_THRESHOLD_HOURS", "6"))
	}
	cfg.GapThreshold = time.Duration(hours) * time.Hour

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
