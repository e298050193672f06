package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/AadSub19/AI-Trading-Journal/internal/adapters/logger" // Import the logger package for LogLevel
)

// Config holds all application configuration.
type Config struct {
	// Journal database
	DBPath string

	// Spreadsheet-style export
	ExportEnabled bool
	ExportPath    string

	// AI analyst
	AIEnabled         bool
	AnthropicAPIKey   string
	AnthropicModel    string
	AnalysisMaxTokens int

	// Matching
	MatcherParallelism int // 0 = one worker per CPU

	// Logging
	LogLevel logger.LogLevel
	LogJSON  bool
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []string // Collect validation errors

	// Journal database
	cfg.DBPath = getEnv("DB_PATH", "./data/trading_journal.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// Export
	cfg.ExportEnabled = getEnvAsBool("EXPORT_ENABLED", true)
	cfg.ExportPath = getEnv("EXPORT_PATH", "./data/trading_journal.csv")
	if cfg.ExportEnabled && cfg.ExportPath == "" {
		errs = append(errs, "EXPORT_PATH must be set when EXPORT_ENABLED is true")
	}

	// AI analyst
	cfg.AIEnabled = getEnvAsBool("AI_ENABLED", false)
	cfg.AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", "")
	cfg.AnthropicModel = getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514")
	if cfg.AIEnabled && cfg.AnthropicAPIKey == "" {
		errs = append(errs, "ANTHROPIC_API_KEY must be set when AI_ENABLED is true")
	}

	cfg.AnalysisMaxTokens = getEnvAsInt("ANALYSIS_MAX_TOKENS", 500)
	if cfg.AnalysisMaxTokens <= 0 {
		errs = append(errs, "ANALYSIS_MAX_TOKENS must be positive")
	}

	// Matching
	cfg.MatcherParallelism = getEnvAsInt("MATCHER_PARALLELISM", 0)
	if cfg.MatcherParallelism < 0 {
		errs = append(errs, "MATCHER_PARALLELISM cannot be negative")
	}

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package
	cfg.LogJSON = strings.EqualFold(getEnv("LOG_FORMAT", "text"), "json")

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
