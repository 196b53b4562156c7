package enhance

import (
	"fmt"
	"runtime"
)

// Config holds every tunable constant of the enhancement pipeline. The values
// are empirical; behavior parity with prior tooling matters more than
// optimality, so they are carried as defaults rather than re-derived.
type Config struct {
	// Deskew
	MinSkewAngle float64 // degrees; smaller estimated skews pass through unrotated

	// Military-grade path
	CloseKernel int // square closing element after Otsu
	MinBlobArea int // foreground components below this pixel area are erased

	// Messaging-specialized path
	DenoiseStrength       float64 // non-local-means filtering strength
	DenoiseTemplateWindow int
	DenoiseSearchWindow   int
	ClaheClipLimit        float64
	ClaheTiles            int // tile grid is ClaheTiles x ClaheTiles
	AdaptiveWindow        int // local threshold window (odd)
	AdaptiveBias          int // constant subtracted from the local mean
	OpenKernelSmall       int // speckle removal element
	CloseKernelLarge      int // gap reconnection element
	LineKernelLength      int // ruling-removal element length (25x1 and 1x25)

	// Conservative path
	FixedThreshold uint8

	// Extreme-enhancement path
	RescaleAlpha       float64
	RescaleBeta        float64
	BilateralDiameter  int
	BilateralSigma     float64 // shared by color and space weighting
	CloseKernelExtreme int

	// Contrast helper
	ContrastFactor float64

	// Artifact placement and parallelism
	TempDir string // empty means current working directory
	Workers int    // parallel candidate generation; <=0 means NumCPU
}

// DefaultConfig returns the pipeline defaults.
func DefaultConfig() Config {
	return Config{
		MinSkewAngle:          1.0,
		CloseKernel:           3,
		MinBlobArea:           10,
		DenoiseStrength:       10,
		DenoiseTemplateWindow: 7,
		DenoiseSearchWindow:   21,
		ClaheClipLimit:        3.0,
		ClaheTiles:            8,
		AdaptiveWindow:        11,
		AdaptiveBias:          2,
		OpenKernelSmall:       2,
		CloseKernelLarge:      5,
		LineKernelLength:      25,
		FixedThreshold:        127,
		RescaleAlpha:          2.5,
		RescaleBeta:           50,
		BilateralDiameter:     15,
		BilateralSigma:        80,
		CloseKernelExtreme:    7,
		ContrastFactor:        2.0,
		TempDir:               "",
		Workers:               runtime.NumCPU(),
	}
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.MinSkewAngle < 0 {
		return fmt.Errorf("min skew angle must be non-negative, got %v", c.MinSkewAngle)
	}
	if c.AdaptiveWindow < 3 || c.AdaptiveWindow%2 == 0 {
		return fmt.Errorf("adaptive window must be odd and >= 3, got %d", c.AdaptiveWindow)
	}
	if c.MinBlobArea < 0 {
		return fmt.Errorf("min blob area must be non-negative, got %d", c.MinBlobArea)
	}
	for _, k := range []struct {
		name string
		v    int
	}{
		{"close kernel", c.CloseKernel},
		{"open kernel", c.OpenKernelSmall},
		{"large close kernel", c.CloseKernelLarge},
		{"extreme close kernel", c.CloseKernelExtreme},
		{"line kernel length", c.LineKernelLength},
		{"denoise template window", c.DenoiseTemplateWindow},
		{"denoise search window", c.DenoiseSearchWindow},
		{"bilateral diameter", c.BilateralDiameter},
	} {
		if k.v < 1 {
			return fmt.Errorf("%s must be positive, got %d", k.name, k.v)
		}
	}
	if c.ClaheTiles < 1 {
		return fmt.Errorf("clahe tile count must be positive, got %d", c.ClaheTiles)
	}
	if c.ClaheClipLimit <= 0 {
		return fmt.Errorf("clahe clip limit must be positive, got %v", c.ClaheClipLimit)
	}
	return nil
}
