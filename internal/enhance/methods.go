package enhance

import (
	"log/slog"

	"github.com/veritas-tools/imgprep/internal/artifact"
	"github.com/veritas-tools/imgprep/internal/utils"
)

// Each method reads the source image fresh, runs one enhancement pipeline,
// and writes one artifact. The run* variants surface errors for inspection;
// the exported wrappers degrade to the original source path so no failure
// escapes the pipeline boundary.

func writeArtifact(r *Raster, path string) (string, error) {
	if err := utils.SavePNG(path, r.ToGray()); err != nil {
		return "", &IOError{Path: path, Err: err}
	}
	return path, nil
}

// runMilitary: deskew, inverted Otsu, 3x3 closing, small-blob removal.
// Targets compression-damaged document scans.
func runMilitary(cfg Config, sourcePath string) (string, error) {
	gray, err := LoadGrayscale(sourcePath)
	if err != nil {
		return "", err
	}
	straightened, angle, err := Deskew(gray, cfg.MinSkewAngle)
	if err != nil {
		return "", &TransformError{Stage: "deskew", Err: err}
	}
	slog.Debug("deskew estimate", "path", sourcePath, "angle", angle)

	binary := BinarizeOtsuInv(straightened)
	closed := Close(binary, cfg.CloseKernel, cfg.CloseKernel)
	cleaned := RemoveSmallBlobs(closed, cfg.MinBlobArea)

	return writeArtifact(cleaned, artifact.MilitaryPath(cfg.TempDir, sourcePath))
}

// runMessaging: denoise, local contrast equalization, dual binarization
// combined by OR, open/close, ruling removal. Targets messaging-app
// screenshots with uneven bubble backgrounds and UI chrome.
func runMessaging(cfg Config, sourcePath string) (string, error) {
	gray, err := LoadGrayscale(sourcePath)
	if err != nil {
		return "", err
	}
	denoised := DenoiseNLMeans(gray, cfg.DenoiseStrength, cfg.DenoiseTemplateWindow, cfg.DenoiseSearchWindow)
	equalized := EqualizeCLAHE(denoised, cfg.ClaheClipLimit, cfg.ClaheTiles)

	global := BinarizeOtsu(equalized)
	local := BinarizeAdaptiveGaussian(equalized, cfg.AdaptiveWindow, cfg.AdaptiveBias)
	combined := BitwiseOr(global, local)

	// open before close: speckle removal first, then gap reconnection
	opened := Open(combined, cfg.OpenKernelSmall, cfg.OpenKernelSmall)
	closed := Close(opened, cfg.CloseKernelLarge, cfg.CloseKernelLarge)
	cleaned := RemoveRuledLines(closed, cfg.LineKernelLength)

	return writeArtifact(cleaned, artifact.MessagingPath(cfg.TempDir, sourcePath))
}

// runConservative: a single fixed threshold for already-clean scans where
// aggressive processing would degrade clarity.
func runConservative(cfg Config, sourcePath string) (string, error) {
	gray, err := LoadGrayscale(sourcePath)
	if err != nil {
		return "", err
	}
	binary := BinarizeFixed(gray, cfg.FixedThreshold)
	return writeArtifact(binary, artifact.ConservativePath(cfg.TempDir, sourcePath))
}

// runExtreme: heavy intensity rescale, bilateral denoise, Otsu, large
// closing. A last resort for very poor captures.
func runExtreme(cfg Config, sourcePath string) (string, error) {
	gray, err := LoadGrayscale(sourcePath)
	if err != nil {
		return "", err
	}
	rescaled := RescaleIntensity(gray, cfg.RescaleAlpha, cfg.RescaleBeta)
	smoothed := FilterBilateral(rescaled, cfg.BilateralDiameter, cfg.BilateralSigma)
	binary := BinarizeOtsu(smoothed)
	closed := Close(binary, cfg.CloseKernelExtreme, cfg.CloseKernelExtreme)
	return writeArtifact(closed, artifact.ExtremePath(cfg.TempDir, sourcePath))
}

// runContrast: plain contrast doubling about the mean, for screenshots with
// washed-out text. Not part of the generator's candidate sequence.
func runContrast(cfg Config, sourcePath string) (string, error) {
	gray, err := LoadGrayscale(sourcePath)
	if err != nil {
		return "", err
	}
	stretched := StretchContrast(gray, cfg.ContrastFactor)
	return writeArtifact(stretched, artifact.ContrastPath(cfg.TempDir, sourcePath))
}

// fallback runs a method and returns the original path when it fails.
func fallback(name string, run func(Config, string) (string, error), cfg Config, sourcePath string) string {
	out, err := run(cfg, sourcePath)
	if err != nil {
		slog.Warn("preprocessing failed, falling back to original",
			"method", name, "path", sourcePath, "error", err)
		return sourcePath
	}
	return out
}

// MilitaryGrade enhances sourcePath with the military-grade pipeline and
// returns the artifact path, or sourcePath unchanged when any stage fails.
func MilitaryGrade(cfg Config, sourcePath string) string {
	return fallback(artifact.MethodMilitary, runMilitary, cfg, sourcePath)
}

// MessagingSpecialized enhances sourcePath with the messaging-screenshot
// pipeline; falls back to sourcePath on failure.
func MessagingSpecialized(cfg Config, sourcePath string) string {
	return fallback(artifact.MethodMessaging, runMessaging, cfg, sourcePath)
}

// Conservative applies the fixed-threshold pipeline; falls back to sourcePath.
func Conservative(cfg Config, sourcePath string) string {
	return fallback(artifact.MethodConservative, runConservative, cfg, sourcePath)
}

// ExtremeEnhancement applies the extreme pipeline; falls back to sourcePath.
func ExtremeEnhancement(cfg Config, sourcePath string) string {
	return fallback(artifact.MethodExtreme, runExtreme, cfg, sourcePath)
}

// EnhanceContrast applies the contrast helper; falls back to sourcePath.
func EnhanceContrast(cfg Config, sourcePath string) string {
	return fallback(artifact.MethodContrast, runContrast, cfg, sourcePath)
}
