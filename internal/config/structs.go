package config

import (
	"fmt"

	"github.com/veritas-tools/imgprep/internal/enhance"
)

// Config represents the complete configuration for the imgprep application,
// loadable from configuration files, environment variables, and flags.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`
	Batch    BatchConfig    `mapstructure:"batch" yaml:"batch" json:"batch"`
	OCR      OCRConfig      `mapstructure:"ocr" yaml:"ocr" json:"ocr"`
}

// PipelineConfig mirrors the enhancement pipeline constants.
type PipelineConfig struct {
	TempDir      string  `mapstructure:"temp_dir" yaml:"temp_dir" json:"temp_dir"`
	Workers      int     `mapstructure:"workers" yaml:"workers" json:"workers"`
	MinSkewAngle float64 `mapstructure:"min_skew_angle" yaml:"min_skew_angle" json:"min_skew_angle"`
	MinBlobArea  int     `mapstructure:"min_blob_area" yaml:"min_blob_area" json:"min_blob_area"`

	CloseKernel      int `mapstructure:"close_kernel" yaml:"close_kernel" json:"close_kernel"`
	OpenKernelSmall  int `mapstructure:"open_kernel_small" yaml:"open_kernel_small" json:"open_kernel_small"`
	CloseKernelLarge int `mapstructure:"close_kernel_large" yaml:"close_kernel_large" json:"close_kernel_large"`
	LineKernelLength int `mapstructure:"line_kernel_length" yaml:"line_kernel_length" json:"line_kernel_length"`

	DenoiseStrength       float64 `mapstructure:"denoise_strength" yaml:"denoise_strength" json:"denoise_strength"`
	DenoiseTemplateWindow int     `mapstructure:"denoise_template_window" yaml:"denoise_template_window" json:"denoise_template_window"`
	DenoiseSearchWindow   int     `mapstructure:"denoise_search_window" yaml:"denoise_search_window" json:"denoise_search_window"`
	ClaheClipLimit        float64 `mapstructure:"clahe_clip_limit" yaml:"clahe_clip_limit" json:"clahe_clip_limit"`
	ClaheTiles            int     `mapstructure:"clahe_tiles" yaml:"clahe_tiles" json:"clahe_tiles"`
	AdaptiveWindow        int     `mapstructure:"adaptive_window" yaml:"adaptive_window" json:"adaptive_window"`
	AdaptiveBias          int     `mapstructure:"adaptive_bias" yaml:"adaptive_bias" json:"adaptive_bias"`

	FixedThreshold     int     `mapstructure:"fixed_threshold" yaml:"fixed_threshold" json:"fixed_threshold"`
	RescaleAlpha       float64 `mapstructure:"rescale_alpha" yaml:"rescale_alpha" json:"rescale_alpha"`
	RescaleBeta        float64 `mapstructure:"rescale_beta" yaml:"rescale_beta" json:"rescale_beta"`
	BilateralDiameter  int     `mapstructure:"bilateral_diameter" yaml:"bilateral_diameter" json:"bilateral_diameter"`
	BilateralSigma     float64 `mapstructure:"bilateral_sigma" yaml:"bilateral_sigma" json:"bilateral_sigma"`
	CloseKernelExtreme int     `mapstructure:"close_kernel_extreme" yaml:"close_kernel_extreme" json:"close_kernel_extreme"`
	ContrastFactor     float64 `mapstructure:"contrast_factor" yaml:"contrast_factor" json:"contrast_factor"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers       int  `mapstructure:"workers" yaml:"workers" json:"workers"`
	Recursive     bool `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	KeepArtifacts bool `mapstructure:"keep_artifacts" yaml:"keep_artifacts" json:"keep_artifacts"`
}

// OCRConfig contains OCR collaborator settings.
type OCRConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Language string `mapstructure:"language" yaml:"language" json:"language"`
}

// DefaultConfig returns application defaults derived from the pipeline
// defaults.
func DefaultConfig() *Config {
	e := enhance.DefaultConfig()
	return &Config{
		LogLevel: "info",
		Pipeline: PipelineConfig{
			TempDir:               e.TempDir,
			Workers:               e.Workers,
			MinSkewAngle:          e.MinSkewAngle,
			MinBlobArea:           e.MinBlobArea,
			CloseKernel:           e.CloseKernel,
			OpenKernelSmall:       e.OpenKernelSmall,
			CloseKernelLarge:      e.CloseKernelLarge,
			LineKernelLength:      e.LineKernelLength,
			DenoiseStrength:       e.DenoiseStrength,
			DenoiseTemplateWindow: e.DenoiseTemplateWindow,
			DenoiseSearchWindow:   e.DenoiseSearchWindow,
			ClaheClipLimit:        e.ClaheClipLimit,
			ClaheTiles:            e.ClaheTiles,
			AdaptiveWindow:        e.AdaptiveWindow,
			AdaptiveBias:          e.AdaptiveBias,
			FixedThreshold:        int(e.FixedThreshold),
			RescaleAlpha:          e.RescaleAlpha,
			RescaleBeta:           e.RescaleBeta,
			BilateralDiameter:     e.BilateralDiameter,
			BilateralSigma:        e.BilateralSigma,
			CloseKernelExtreme:    e.CloseKernelExtreme,
			ContrastFactor:        e.ContrastFactor,
		},
		Batch: BatchConfig{
			Workers: e.Workers,
		},
		OCR: OCRConfig{
			Enabled:  false,
			Language: "eng",
		},
	}
}

// ToEnhance converts the pipeline section into the enhancement config.
func (c *Config) ToEnhance() enhance.Config {
	p := c.Pipeline
	return enhance.Config{
		TempDir:               p.TempDir,
		Workers:               p.Workers,
		MinSkewAngle:          p.MinSkewAngle,
		MinBlobArea:           p.MinBlobArea,
		CloseKernel:           p.CloseKernel,
		OpenKernelSmall:       p.OpenKernelSmall,
		CloseKernelLarge:      p.CloseKernelLarge,
		LineKernelLength:      p.LineKernelLength,
		DenoiseStrength:       p.DenoiseStrength,
		DenoiseTemplateWindow: p.DenoiseTemplateWindow,
		DenoiseSearchWindow:   p.DenoiseSearchWindow,
		ClaheClipLimit:        p.ClaheClipLimit,
		ClaheTiles:            p.ClaheTiles,
		AdaptiveWindow:        p.AdaptiveWindow,
		AdaptiveBias:          p.AdaptiveBias,
		FixedThreshold:        uint8(p.FixedThreshold),
		RescaleAlpha:          p.RescaleAlpha,
		RescaleBeta:           p.RescaleBeta,
		BilateralDiameter:     p.BilateralDiameter,
		BilateralSigma:        p.BilateralSigma,
		CloseKernelExtreme:    p.CloseKernelExtreme,
		ContrastFactor:        p.ContrastFactor,
	}
}

// Validate checks application-level and pipeline-level constraints.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.LogLevel)
	}
	if c.Pipeline.FixedThreshold < 0 || c.Pipeline.FixedThreshold > 255 {
		return fmt.Errorf("fixed threshold must be in [0,255], got %d", c.Pipeline.FixedThreshold)
	}
	if c.OCR.Enabled && c.OCR.Language == "" {
		return fmt.Errorf("ocr language must be set when ocr is enabled")
	}
	return c.ToEnhance().Validate()
}
