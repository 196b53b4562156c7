//go:build cgo

package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Available reports whether the Tesseract engine is compiled in.
func Available() bool { return true }

// Recognize runs Tesseract on the image at path and returns the recognized
// text with the mean word confidence.
func Recognize(path, language string) (Result, error) {
	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			return Result{}, fmt.Errorf("set language: %w", err)
		}
	}
	if err := client.SetImage(path); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognize: %w", err)
	}

	confidence := 0.0
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil && len(boxes) > 0 {
		sum := 0.0
		n := 0
		for _, b := range boxes {
			if b.Word == "" {
				continue
			}
			sum += b.Confidence
			n++
		}
		if n > 0 {
			confidence = sum / float64(n) / 100.0
		}
	}

	return Result{Path: path, Text: text, Confidence: confidence}, nil
}
