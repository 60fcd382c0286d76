package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port                string
	GinMode             string
	AppEnv              string
	FirebaseProjectID   string
	FirebaseCredsBase64 string
	FirebaseCredsFile   string
	StorageBucket       string
	FeaturedLimit       int
	ContactRatePerSec   float64
	ContactRateBurst    int
	AllowedOrigins      string
}

// Load reads environment variables into a Config with sensible defaults.
// Firebase settings are optional: without them the service still serves
// public read paths from bundled sample data.
func Load() (Config, error) {
	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "release"),
		AppEnv:              getEnv("APP_ENV", "production"),
		FirebaseProjectID:   strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")),
		FirebaseCredsBase64: strings.TrimSpace(os.Getenv("FIREBASE_CREDS_BASE64")),
		FirebaseCredsFile:   strings.TrimSpace(os.Getenv("FIREBASE_CREDS_FILE")),
		StorageBucket:       strings.TrimSpace(os.Getenv("STORAGE_BUCKET")),
		AllowedOrigins:      strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")),
	}

	limit, err := parseIntEnv("FEATURED_LIMIT", 6)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEATURED_LIMIT: %w", err)
	}
	cfg.FeaturedLimit = limit

	rps, err := parseFloatEnv("CONTACT_RATE_RPS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse CONTACT_RATE_RPS: %w", err)
	}
	cfg.ContactRatePerSec = rps

	burst, err := parseIntEnv("CONTACT_RATE_BURST", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse CONTACT_RATE_BURST: %w", err)
	}
	cfg.ContactRateBurst = burst

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures required fields are present and consistent.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.FeaturedLimit <= 0 {
		return errors.New("FEATURED_LIMIT must be positive")
	}
	if c.FirebaseProjectID != "" && c.FirebaseCredsBase64 == "" && c.FirebaseCredsFile == "" {
		return errors.New("provide FIREBASE_CREDS_BASE64 or FIREBASE_CREDS_FILE when FIREBASE_PROJECT_ID is set")
	}
	return nil
}

// FirebaseConfigured reports whether a Firebase project is set up at all.
func (c Config) FirebaseConfigured() bool {
	return c.FirebaseProjectID != ""
}

// FirebaseCredentialsJSON returns the service account JSON bytes and the source used.
func (c Config) FirebaseCredentialsJSON() ([]byte, string, error) {
	if c.FirebaseCredsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.FirebaseCredsBase64)
		if err != nil {
			return nil, "base64", fmt.Errorf("decode FIREBASE_CREDS_BASE64: %w", err)
		}
		return decoded, "base64", nil
	}
	if c.FirebaseCredsFile != "" {
		data, err := os.ReadFile(c.FirebaseCredsFile)
		if err != nil {
			return nil, "file", fmt.Errorf("read FIREBASE_CREDS_FILE: %w", err)
		}
		return data, "file", nil
	}
	return nil, "", errors.New("no firebase credentials found")
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func parseIntEnv(key string, defaultVal int) (int, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(val)
}

func parseFloatEnv(key string, defaultVal float64) (float64, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	return strconv.ParseFloat(val, 64)
}
