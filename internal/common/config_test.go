package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, int64(10<<20), cfg.Image.MaxBytes)
	assert.Equal(t, []string{"image/jpeg", "image/png", "image/webp"}, cfg.Image.AllowedTypes)
	assert.Equal(t, 2000, cfg.Image.MaxDimension)
	assert.Equal(t, 30*time.Second, cfg.Vision.Timeout)
	assert.Equal(t, "COP", cfg.Vision.DefaultCurrency)
	assert.InDelta(t, 0.3, cfg.Gating.MinOverall, 1e-9)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OCR_MAX_IMAGE_BYTES", "1048576")
	t.Setenv("OCR_ALLOWED_TYPES", "image/jpeg, image/png")
	t.Setenv("OCR_REQUEST_TIMEOUT", "10s")
	t.Setenv("GATE_MIN_OVERALL", "0.5")

	cfg := LoadConfig()
	assert.Equal(t, int64(1<<20), cfg.Image.MaxBytes)
	assert.Equal(t, []string{"image/jpeg", "image/png"}, cfg.Image.AllowedTypes)
	assert.Equal(t, 10*time.Second, cfg.Vision.Timeout)
	assert.InDelta(t, 0.5, cfg.Gating.MinOverall, 1e-9)
}

func TestValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.Vision.APIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.Vision.APIKey = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAppError(t *testing.T) {
	err := NewAppError("IMAGE_SIZE_ERROR", "too big", ErrSizeExceeded)
	assert.ErrorIs(t, err, ErrSizeExceeded)
	assert.Contains(t, err.Error(), "IMAGE_SIZE_ERROR")
	assert.Contains(t, err.Error(), "too big")
}
