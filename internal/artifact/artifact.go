// Package artifact names and manages the transient files the enhancement
// pipeline writes for the OCR collaborator. Naming templates are fixed:
// downstream tooling matches on them.
package artifact

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/veritas-tools/imgprep/internal/utils"
)

// Method tags used in artifact names and candidate results.
const (
	MethodMilitary     = "military_grade"
	MethodMessaging    = "messaging_specialized"
	MethodConservative = "conservative"
	MethodExtreme      = "extreme_enhancement"
	MethodContrast     = "contrast_enhanced"
	MethodOriginal     = "original"
)

// MilitaryPath returns the artifact path for the military-grade method.
func MilitaryPath(dir, sourcePath string) string {
	return filepath.Join(dir, fmt.Sprintf("temp_military_processed_%s_ocr.png", utils.SourceStem(sourcePath)))
}

// MessagingPath returns the artifact path for the messaging-specialized method.
func MessagingPath(dir, sourcePath string) string {
	return filepath.Join(dir, fmt.Sprintf("temp_messaging_processed_%s_ocr.png", utils.SourceStem(sourcePath)))
}

// ConservativePath returns the artifact path for the conservative method.
func ConservativePath(dir, sourcePath string) string {
	return filepath.Join(dir, fmt.Sprintf("temp_%s_conservative.png", utils.SourceStem(sourcePath)))
}

// ExtremePath returns the artifact path for the extreme-enhancement method.
func ExtremePath(dir, sourcePath string) string {
	return filepath.Join(dir, fmt.Sprintf("temp_%s_extreme.png", utils.SourceStem(sourcePath)))
}

// ContrastPath returns the artifact path for the contrast helper.
func ContrastPath(dir, sourcePath string) string {
	return filepath.Join(dir, fmt.Sprintf("temp_enhanced_%s.png", utils.SourceStem(sourcePath)))
}

// SiblingPaths lists every artifact name the pipeline can produce for the
// given source, within dir.
func SiblingPaths(dir, sourcePath string) []string {
	return []string{
		MilitaryPath(dir, sourcePath),
		MessagingPath(dir, sourcePath),
		ConservativePath(dir, sourcePath),
		ExtremePath(dir, sourcePath),
		ContrastPath(dir, sourcePath),
	}
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err1 := os.Stat(a)
	bi, err2 := os.Stat(b)
	return err1 == nil && err2 == nil && os.SameFile(ai, bi)
}

// Remove deletes a single temp artifact when it exists and is not the source
// file. Failures are warnings only; repeated calls are no-ops.
func Remove(path, sourcePath string) {
	if path == "" {
		return
	}
	removeIfPresent(path, sourcePath)
}

// removeIfPresent deletes path when it exists and is not the source file.
// Failures are warnings only.
func removeIfPresent(path, sourcePath string) {
	if samePath(path, sourcePath) {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.Remove(path); err != nil {
		slog.Warn("could not clean up temp file", "path", path, "error", err)
	}
}

// Cleanup removes a temp artifact and sweeps sibling artifacts derived from
// the source stem. The source file itself is never deleted. All deletions are
// best-effort: calling Cleanup twice, or on a path that never existed, is a
// safe no-op.
func Cleanup(tempPath, sourcePath string) {
	if tempPath == "" || samePath(tempPath, sourcePath) {
		return
	}
	removeIfPresent(tempPath, sourcePath)
	for _, sibling := range SiblingPaths(filepath.Dir(tempPath), sourcePath) {
		removeIfPresent(sibling, sourcePath)
	}
}

// SweepDir removes every artifact in dir belonging to sourcePath. Used by the
// clean command after the caller has kept whichever candidate it wanted.
func SweepDir(dir, sourcePath string) {
	for _, sibling := range SiblingPaths(dir, sourcePath) {
		removeIfPresent(sibling, sourcePath)
	}
}

// IsArtifactName reports whether name (a base name, no directory) matches one
// of the pipeline's artifact templates, regardless of the source stem.
func IsArtifactName(name string) bool {
	if !strings.HasPrefix(name, "temp_") || !strings.HasSuffix(name, ".png") {
		return false
	}
	switch {
	case strings.HasPrefix(name, "temp_military_processed_") && strings.HasSuffix(name, "_ocr.png"):
		return true
	case strings.HasPrefix(name, "temp_messaging_processed_") && strings.HasSuffix(name, "_ocr.png"):
		return true
	case strings.HasSuffix(name, "_conservative.png"):
		return true
	case strings.HasSuffix(name, "_extreme.png"):
		return true
	case strings.HasPrefix(name, "temp_enhanced_"):
		return true
	}
	return false
}

// CleanDir removes every leftover artifact directly in dir and returns how
// many files were deleted. Non-artifact files are never touched.
func CleanDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !IsArtifactName(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			slog.Warn("could not clean up temp file", "path", path, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
