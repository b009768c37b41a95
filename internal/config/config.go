package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode string
	API     APIConfig
	Client  ClientConfig
	Stub    StubConfig
}

// APIConfig holds the remote booking service configuration
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ClientConfig holds client-side behavior settings
type ClientConfig struct {
	CancelGrace time.Duration // pause between marking an item deleting and issuing the delete
	SessionFile string        // where the file session store keeps the token
}

// StubConfig holds settings for the local stub server
type StubConfig struct {
	Port       string
	JWTSecret  string
	TokenMins  int
	RoomsPerFl int // rooms seeded per floor
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	timeoutSecs, err := getEnvInt("API_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	graceMs, err := getEnvInt("CANCEL_GRACE_MS", 900)
	if err != nil {
		return nil, err
	}
	tokenMins, err := getEnvInt("STUB_TOKEN_MINUTES", 5)
	if err != nil {
		return nil, err
	}
	roomsPerFloor, err := getEnvInt("STUB_ROOMS_PER_FLOOR", 6)
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode: appMode,
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://127.0.0.1:5000"),
			Timeout: time.Duration(timeoutSecs) * time.Second,
		},
		Client: ClientConfig{
			CancelGrace: time.Duration(graceMs) * time.Millisecond,
			SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),
		},
		Stub: StubConfig{
			Port:       getEnv("STUB_PORT", "5000"),
			JWTSecret:  getEnv("STUB_JWT_SECRET", "open-access-secret"),
			TokenMins:  tokenMins,
			RoomsPerFl: roomsPerFloor,
		},
	}

	return config, nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".studyspace-session.json"
	}
	return filepath.Join(home, ".studyspace", "session.json")
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %w", key, err)
	}
	return parsed, nil
}
