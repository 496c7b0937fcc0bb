package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig
	Source  SourceConfig
	Import  ImportConfig
	RunLog  RunLogConfig
	Segment SegmentConfig
}

// APIConfig holds parts-API client configuration
type APIConfig struct {
	BaseURL     string
	HTTPTimeout time.Duration
}

// SourceConfig holds document-source configuration
type SourceConfig struct {
	PDFPath   string
	CachePath string
}

// ImportConfig holds bulk-import behavior configuration
type ImportConfig struct {
	Verify     bool
	BatchSize  int
	BatchPause time.Duration
	MaxErrors  int
}

// RunLogConfig holds the optional SQLite run-ledger configuration
type RunLogConfig struct {
	Path string
}

// SegmentConfig holds segmenter vocabulary configuration
type SegmentConfig struct {
	VocabPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     getEnv("PARTS_API_URL", "http://localhost:3001/api"),
			HTTPTimeout: getEnvAsDuration("PARTS_API_TIMEOUT", 30*time.Second),
		},
		Source: SourceConfig{
			PDFPath:   getEnv("CATALOG_PDF_PATH", "CTC Item Lists.pdf"),
			CachePath: getEnv("CATALOG_TEXT_CACHE", "pdf_extracted_text.txt"),
		},
		Import: ImportConfig{
			Verify:     getEnvAsBool("IMPORT_VERIFY", false),
			BatchSize:  getEnvAsInt("IMPORT_BATCH_SIZE", 50),
			BatchPause: getEnvAsDuration("IMPORT_BATCH_PAUSE", 100*time.Millisecond),
			MaxErrors:  getEnvAsInt("IMPORT_MAX_ERROR_SAMPLES", 20),
		},
		RunLog: RunLogConfig{
			Path: getEnv("RUNLOG_PATH", ""),
		},
		Segment: SegmentConfig{
			VocabPath: getEnv("SEGMENT_VOCAB_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "PARTS_API_URL is required", ErrInvalidInput)
	}
	if c.Import.BatchSize <= 0 {
		return NewAppError("CONFIG_ERROR", "IMPORT_BATCH_SIZE must be positive", ErrInvalidInput)
	}
	return nil
}
