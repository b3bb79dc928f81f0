// Package config loads importer settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Import ImportConfig
	Log    LogConfig
}

// ImportConfig tunes workbook extraction and transfer-pair matching.
type ImportConfig struct {
	SheetName       string
	AmountTolerance int64
	DateWindowDays  int
	HighThreshold   int
	MediumThreshold int
	MemoSimilarity  float64
}

type LogConfig struct {
	Level string
	JSON  bool
}

// Load reads configuration from environment variables. A missing variable
// falls back to its default; there are no required settings.
func Load() (*Config, error) {
	// Ignore a missing .env file; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Import: ImportConfig{
			SheetName:       getEnv("WONMOA_SHEET_NAME", "가계부 내역"),
			AmountTolerance: int64(getEnvAsInt("WONMOA_AMOUNT_TOLERANCE", 2)),
			DateWindowDays:  getEnvAsInt("WONMOA_DATE_WINDOW_DAYS", 1),
			HighThreshold:   getEnvAsInt("WONMOA_HIGH_THRESHOLD", 7),
			MediumThreshold: getEnvAsInt("WONMOA_MEDIUM_THRESHOLD", 4),
			MemoSimilarity:  getEnvAsFloat("WONMOA_MEMO_SIMILARITY", 0.6),
		},
		Log: LogConfig{
			Level: getEnv("WONMOA_LOG_LEVEL", "info"),
			JSON:  getEnvAsBool("WONMOA_LOG_JSON", false),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
