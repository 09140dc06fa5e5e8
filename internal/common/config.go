package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerlens/receipt-engine/constants"
)

// Config holds all application configuration
type Config struct {
	Image  ImageConfig
	Vision VisionConfig
	Gating GatingConfig
}

// ImageConfig holds image gate configuration
type ImageConfig struct {
	MaxBytes     int64
	AllowedTypes []string
	MaxDimension int
}

// VisionConfig holds vision client configuration
type VisionConfig struct {
	BaseURL         string
	APIKey          string
	Model           string
	Temperature     float32
	Timeout         time.Duration
	DefaultCurrency string
}

// GatingConfig holds the caller-side minimum-confidence thresholds.
// Overall acceptance is distinct from the per-field auto-population
// thresholds, which are typically higher.
type GatingConfig struct {
	MinOverall  float64
	MinAmount   float64
	MinDate     float64
	MinVendor   float64
	MinCategory float64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Image: ImageConfig{
			MaxBytes:     getEnvAsInt64("OCR_MAX_IMAGE_BYTES", constants.MaxImageBytesDefault),
			AllowedTypes: getEnvAsList("OCR_ALLOWED_TYPES", constants.AllowedContentTypes),
			MaxDimension: getEnvAsInt("OCR_MAX_DIMENSION", constants.MaxImageDimensionDefault),
		},
		Vision: VisionConfig{
			BaseURL:         getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:          getEnv("OPENAI_API_KEY", ""),
			Model:           getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature:     getEnvAsFloat32("OPENAI_TEMPERATURE", 0.1),
			Timeout:         getEnvAsDuration("OCR_REQUEST_TIMEOUT", 30*time.Second),
			DefaultCurrency: getEnv("OCR_DEFAULT_CURRENCY", "COP"),
		},
		Gating: GatingConfig{
			MinOverall:  getEnvAsFloat64("GATE_MIN_OVERALL", 0.3),
			MinAmount:   getEnvAsFloat64("GATE_MIN_AMOUNT", 0.6),
			MinDate:     getEnvAsFloat64("GATE_MIN_DATE", 0.5),
			MinVendor:   getEnvAsFloat64("GATE_MIN_VENDOR", 0.5),
			MinCategory: getEnvAsFloat64("GATE_MIN_CATEGORY", 0.5),
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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Vision.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.Image.MaxBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_MAX_IMAGE_BYTES must be positive", ErrInvalidInput)
	}
	if len(c.Image.AllowedTypes) == 0 {
		return NewAppError("CONFIG_ERROR", "OCR_ALLOWED_TYPES must not be empty", ErrInvalidInput)
	}
	if c.Vision.Timeout <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_REQUEST_TIMEOUT must be positive", ErrInvalidInput)
	}
	return nil
}
