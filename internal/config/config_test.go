package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1.0, cfg.Pipeline.MinSkewAngle)
	assert.Equal(t, 10, cfg.Pipeline.MinBlobArea)
	assert.Equal(t, 127, cfg.Pipeline.FixedThreshold)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.False(t, cfg.OCR.Enabled)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "loud" },
			wantErr: "invalid log level",
		},
		{
			name:    "threshold out of range",
			mutate:  func(c *Config) { c.Pipeline.FixedThreshold = 300 },
			wantErr: "fixed threshold",
		},
		{
			name: "ocr enabled without language",
			mutate: func(c *Config) {
				c.OCR.Enabled = true
				c.OCR.Language = ""
			},
			wantErr: "ocr language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "imgprep.yaml")
	content := []byte(`log_level: debug
pipeline:
  min_blob_area: 25
  workers: 2
ocr:
  enabled: false
  language: deu
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 25, cfg.Pipeline.MinBlobArea)
	assert.Equal(t, 2, cfg.Pipeline.Workers)
	assert.Equal(t, "deu", cfg.OCR.Language)
	// untouched keys keep their defaults
	assert.Equal(t, 1.0, cfg.Pipeline.MinSkewAngle)
}

func TestLoadWithMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadWithInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "imgprep.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: shouting\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("IMGPREP_LOG_LEVEL", "warn")
	t.Setenv("IMGPREP_PIPELINE_MIN_BLOB_AREA", "42")

	l := NewLoader()
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 42, cfg.Pipeline.MinBlobArea)
}

func TestToEnhanceRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pipeline.MinBlobArea = 99
	cfg.Pipeline.FixedThreshold = 200

	e := cfg.ToEnhance()
	assert.Equal(t, 99, e.MinBlobArea)
	assert.Equal(t, uint8(200), e.FixedThreshold)
	assert.Equal(t, cfg.Pipeline.DenoiseStrength, e.DenoiseStrength)
}
