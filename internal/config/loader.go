package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name of the config file (without extension).
	ConfigFileName = "imgprep"
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "IMGPREP"
)

// Loader handles configuration loading from files and environment variables.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a configured loader with the standard search paths.
func NewLoader() *Loader {
	v := viper.New()

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "imgprep"))
	}
	v.AddConfigPath("/etc/imgprep")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load reads configuration from the search paths, falling back to defaults
// when no config file exists.
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return l.unmarshal()
}

// LoadWithFile reads configuration from an explicit file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	l.setDefaults()

	l.v.SetConfigFile(configFile)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
	}

	return l.unmarshal()
}

// ConfigFileUsed returns the path of the config file that was loaded, or an
// empty string when only defaults and environment were used.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) unmarshal() (*Config, error) {
	cfg := DefaultConfig()
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (l *Loader) setDefaults() {
	d := DefaultConfig()

	l.v.SetDefault("log_level", d.LogLevel)
	l.v.SetDefault("verbose", d.Verbose)

	l.v.SetDefault("pipeline.temp_dir", d.Pipeline.TempDir)
	l.v.SetDefault("pipeline.workers", d.Pipeline.Workers)
	l.v.SetDefault("pipeline.min_skew_angle", d.Pipeline.MinSkewAngle)
	l.v.SetDefault("pipeline.min_blob_area", d.Pipeline.MinBlobArea)
	l.v.SetDefault("pipeline.close_kernel", d.Pipeline.CloseKernel)
	l.v.SetDefault("pipeline.open_kernel_small", d.Pipeline.OpenKernelSmall)
	l.v.SetDefault("pipeline.close_kernel_large", d.Pipeline.CloseKernelLarge)
	l.v.SetDefault("pipeline.line_kernel_length", d.Pipeline.LineKernelLength)
	l.v.SetDefault("pipeline.denoise_strength", d.Pipeline.DenoiseStrength)
	l.v.SetDefault("pipeline.denoise_template_window", d.Pipeline.DenoiseTemplateWindow)
	l.v.SetDefault("pipeline.denoise_search_window", d.Pipeline.DenoiseSearchWindow)
	l.v.SetDefault("pipeline.clahe_clip_limit", d.Pipeline.ClaheClipLimit)
	l.v.SetDefault("pipeline.clahe_tiles", d.Pipeline.ClaheTiles)
	l.v.SetDefault("pipeline.adaptive_window", d.Pipeline.AdaptiveWindow)
	l.v.SetDefault("pipeline.adaptive_bias", d.Pipeline.AdaptiveBias)
	l.v.SetDefault("pipeline.fixed_threshold", d.Pipeline.FixedThreshold)
	l.v.SetDefault("pipeline.rescale_alpha", d.Pipeline.RescaleAlpha)
	l.v.SetDefault("pipeline.rescale_beta", d.Pipeline.RescaleBeta)
	l.v.SetDefault("pipeline.bilateral_diameter", d.Pipeline.BilateralDiameter)
	l.v.SetDefault("pipeline.bilateral_sigma", d.Pipeline.BilateralSigma)
	l.v.SetDefault("pipeline.close_kernel_extreme", d.Pipeline.CloseKernelExtreme)
	l.v.SetDefault("pipeline.contrast_factor", d.Pipeline.ContrastFactor)

	l.v.SetDefault("batch.workers", d.Batch.Workers)
	l.v.SetDefault("batch.recursive", d.Batch.Recursive)
	l.v.SetDefault("batch.keep_artifacts", d.Batch.KeepArtifacts)

	l.v.SetDefault("ocr.enabled", d.OCR.Enabled)
	l.v.SetDefault("ocr.language", d.OCR.Language)
}

// Load is a convenience wrapper: explicit file when given, search paths
// otherwise.
func Load(configFile string) (*Config, error) {
	l := NewLoader()
	if configFile != "" {
		return l.LoadWithFile(configFile)
	}
	return l.Load()
}
