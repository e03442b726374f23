package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/jira"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Jira jira.Config

	Project       string
	TrackedStatus string
	FallbackDays  int
	ReportsDir    string
	EnableCharts  bool
}

// Load loads the configuration from .env files and environment variables.
// Jira credentials are mandatory; everything else has defaults.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first
	if exePath, err := os.Executable(); err == nil {
		envPath := filepath.Join(filepath.Dir(exePath), ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	delaySecs, _ := strconv.Atoi(getEnv("JIRA_REQUEST_DELAY_SECONDS", "2"))
	fallbackDays, _ := strconv.Atoi(getEnv("WIP_FALLBACK_DAYS", "30"))

	cfg := &AppConfig{
		Jira: jira.Config{
			BaseURL:      getEnv("JIRA_BASE_URL", ""),
			Email:        getEnv("JIRA_EMAIL", ""),
			APIToken:     getEnv("JIRA_API_TOKEN", ""),
			RequestDelay: time.Duration(delaySecs) * time.Second,
		},
		Project:       getEnv("JIRA_PROJECT", ""),
		TrackedStatus: getEnv("TRACKED_STATUS", "In Progress"),
		FallbackDays:  fallbackDays,
		ReportsDir:    getEnv("REPORTS_FOLDER", "reports"),
		EnableCharts:  getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}

	if cfg.Jira.BaseURL == "" {
		return nil, fmt.Errorf("JIRA_BASE_URL not found in environment")
	}
	if cfg.Jira.Email == "" {
		return nil, fmt.Errorf("JIRA_EMAIL not found in environment")
	}
	if cfg.Jira.APIToken == "" {
		return nil, fmt.Errorf("JIRA_API_TOKEN not found in environment")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
