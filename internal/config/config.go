package config

import (
	"os"
	"strconv"

	"swingstats/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Output     OutputConfig
	Exclusions ExclusionConfig
	Batch      BatchConfig
}

// OutputConfig holds workbook rendering settings
type OutputConfig struct {
	SheetName      string
	MaxColumnWidth int
}

// ExclusionConfig holds exclusion-set validation settings
type ExclusionConfig struct {
	// Strict turns "excluded shot number not found in input" from a logged
	// warning into a hard error.
	Strict bool
}

// BatchConfig holds batch-mode settings
type BatchConfig struct {
	Parallelism int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Output: OutputConfig{
			SheetName:      getEnvOrDefault("SWINGSTATS_SHEET_NAME", "Golf Stats"),
			MaxColumnWidth: getEnvIntOrDefault("SWINGSTATS_MAX_COLUMN_WIDTH", 20),
		},
		Exclusions: ExclusionConfig{
			Strict: getEnvBoolOrDefault("SWINGSTATS_STRICT_EXCLUSIONS", false),
		},
		Batch: BatchConfig{
			Parallelism: getEnvIntOrDefault("SWINGSTATS_BATCH_PARALLELISM", 4),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks configuration constraints
func (c *Config) Validate() error {
	if c.Output.SheetName == "" {
		return errors.ConfigInvalid("sheet name must not be empty")
	}
	if c.Output.MaxColumnWidth < 1 {
		return errors.ConfigInvalid("max column width must be at least 1")
	}
	if c.Batch.Parallelism < 1 {
		return errors.ConfigInvalid("batch parallelism must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
