package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang-exercisetracker/helpers"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port string

	// Store selects the backend: "mongo" (default) or "memory".
	Store         string
	MongoURI      string
	MongoDatabase string

	// RequestTimeout bounds the store calls made by a single request.
	RequestTimeout time.Duration

	// LogFormat is "text" (default) or "json".
	LogFormat string

	// CORSAllowedOrigins defaults to every origin.
	CORSAllowedOrigins []string

	// RateLimitPerMinute limits POST requests per client IP. 0 disables it.
	RateLimitPerMinute int
	// RateLimitBurst is at least 1.
	RateLimitBurst int

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the peer address is the client IP.
	TrustedProxies []string

	// Archive is used by the log archive endpoint when Archive.Bucket is set.
	Archive helpers.S3Options
}

// Load reads the environment, after merging a .env file when one exists.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}

	return Config{
		Port: getEnv("PORT", "8080"),

		Store:         strings.ToLower(getEnv("STORE", StoreMongo)),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "exercise-tracker"),

		RequestTimeout: time.Duration(max(getEnvInt("REQUEST_TIMEOUT_SECONDS", 10), 1)) * time.Second,

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 0),
		RateLimitBurst:     max(getEnvInt("RATE_LIMIT_BURST", 10), 1),

		TrustedProxies: parseList(getEnv("TRUSTED_PROXIES", "")),

		Archive: helpers.S3Options{
			Bucket:    getEnv("ARCHIVE_BUCKET", ""),
			Region:    getEnv("ARCHIVE_REGION", "us-east-1"),
			Endpoint:  getEnv("ARCHIVE_ENDPOINT", ""),
			AccessKey: getEnv("ARCHIVE_ACCESS_KEY", ""),
			SecretKey: getEnv("ARCHIVE_SECRET_KEY", ""),
		},
	}
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when STORE=mongo")
		}
	case StoreMemory:
	default:
		return errors.New("STORE must be mongo or memory")
	}
	return nil
}

// parseList splits a comma-separated list and trims spaces. Empty entries are dropped.
func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
