// Package ocr is the client for the external text-recognition collaborator.
// The pipeline itself never depends on it; callers use it to score candidate
// artifacts and keep the winner.
package ocr

import (
	"errors"
	"log/slog"

	"github.com/veritas-tools/imgprep/internal/enhance"
)

// ErrUnavailable is returned when the binary was built without Tesseract
// support (no cgo).
var ErrUnavailable = errors.New("ocr engine unavailable: built without cgo/tesseract")

// Result holds recognized text and a mean word confidence in [0, 1].
type Result struct {
	Method     string
	Path       string
	Text       string
	Confidence float64
}

// PickBest recognizes every candidate and returns the one with the highest
// mean confidence. Per-candidate failures are logged and skipped; an error is
// returned only when no candidate could be recognized at all.
func PickBest(candidates []enhance.Candidate, language string) (Result, error) {
	if !Available() {
		return Result{}, ErrUnavailable
	}
	best := Result{Confidence: -1}
	var lastErr error
	for _, c := range candidates {
		res, err := Recognize(c.Path, language)
		if err != nil {
			slog.Warn("ocr failed for candidate", "method", c.Method, "path", c.Path, "error", err)
			lastErr = err
			continue
		}
		res.Method = c.Method
		slog.Debug("ocr candidate scored", "method", c.Method, "confidence", res.Confidence)
		if res.Confidence > best.Confidence {
			best = res
		}
	}
	if best.Confidence < 0 {
		if lastErr != nil {
			return Result{}, lastErr
		}
		return Result{}, errors.New("no candidates to recognize")
	}
	return best, nil
}
