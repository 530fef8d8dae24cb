// Package config loads environment-based settings. A missing required
// variable is a startup failure: the process refuses to serve with a
// partial configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds environment-based settings.
type Config struct {
	Env   string
	Debug bool

	Port    string
	BaseURL string

	// CookieSecret signs the session cookie. Minimum 32 characters.
	CookieSecret string

	DatabaseURL    string
	MigrationsPath string

	EmailHost     string
	EmailPort     int
	EmailSecure   bool
	EmailUser     string
	EmailPassword string
}

// Load reads configuration from the environment, consulting a .env file
// when one is present.
func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Env:            getEnv("ENV", "development"),
		Debug:          os.Getenv("DEBUG") == "true",
		Port:           getEnv("PORT", "3000"),
		BaseURL:        os.Getenv("BASE_URL"),
		CookieSecret:   os.Getenv("COOKIE_SECRET"),
		DatabaseURL:    os.Getenv("POSTGRESQL_URI"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		EmailHost:      os.Getenv("EMAIL_URL"),
		EmailUser:      os.Getenv("EMAIL_USER"),
		EmailPassword:  os.Getenv("EMAIL_PASSWORD"),
	}

	if cfg.Env != "development" && cfg.Env != "production" {
		return nil, fmt.Errorf("ENV must be development or production, got %q", cfg.Env)
	}

	var missing []string
	for _, v := range []struct {
		name, value string
	}{
		{"COOKIE_SECRET", cfg.CookieSecret},
		{"POSTGRESQL_URI", cfg.DatabaseURL},
		{"EMAIL_URL", cfg.EmailHost},
		{"EMAIL_PORT", os.Getenv("EMAIL_PORT")},
		{"EMAIL_SECURE", os.Getenv("EMAIL_SECURE")},
		{"EMAIL_USER", cfg.EmailUser},
		{"EMAIL_PASSWORD", cfg.EmailPassword},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if len(cfg.CookieSecret) < 32 {
		return nil, fmt.Errorf("COOKIE_SECRET must be at least 32 characters")
	}

	port, err := strconv.Atoi(os.Getenv("EMAIL_PORT"))
	if err != nil {
		return nil, fmt.Errorf("EMAIL_PORT must be a number: %w", err)
	}
	cfg.EmailPort = port
	cfg.EmailSecure = os.Getenv("EMAIL_SECURE") == "true"

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
