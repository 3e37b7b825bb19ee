package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-records-api/internal/auth"
)

type AppConfig struct {
	// DatabaseURL is a DSN: sqlite:file:... or postgres://...
	DatabaseURL string

	// MaintenanceInterval controls how often store housekeeping runs.
	MaintenanceInterval time.Duration

	// Users are the configured basic-auth principals.
	Users map[string]auth.User

	// GeocoderAPIKey enables coordinate enrichment on create when set.
	GeocoderAPIKey string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DatabaseURL = getenvDefault("DATABASE_URL", "sqlite:file:weather.sqlite?_pragma=busy_timeout(5000)")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.Port = getenvDefault("PORT", "8080")

	intervalStr := getenvDefault("MAINTENANCE_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid MAINTENANCE_INTERVAL: %w", err)
	}
	cfg.MaintenanceInterval = interval

	cfg.ReadTimeout = getenvDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.WriteTimeout = getenvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second)

	users, err := loadUsers()
	if err != nil {
		return nil, err
	}
	cfg.Users = users

	return cfg, nil
}

// loadUsers builds the two fixed principals: an administrator who may write
// and a regular user who may only read.
func loadUsers() (map[string]auth.User, error) {
	adminName := getenvDefault("ADMIN_USERNAME", "admin")
	adminPass := os.Getenv("ADMIN_PASSWORD")
	userName := getenvDefault("API_USERNAME", "user")
	userPass := os.Getenv("API_PASSWORD")

	if adminPass == "" || userPass == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD and API_PASSWORD must be set")
	}
	if adminName == userName {
		return nil, fmt.Errorf("admin and api usernames must differ")
	}

	return map[string]auth.User{
		adminName: {Password: adminPass, Role: auth.RoleAdmin},
		userName:  {Password: userPass, Role: auth.RoleUser},
	}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
