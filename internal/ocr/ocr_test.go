package ocr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritas-tools/imgprep/internal/enhance"
)

func TestPickBestWithoutEngine(t *testing.T) {
	if Available() {
		t.Skip("tesseract support compiled in")
	}
	_, err := PickBest([]enhance.Candidate{{Method: "conservative", Path: "x.png"}}, "eng")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestRecognizeWithoutEngine(t *testing.T) {
	if Available() {
		t.Skip("tesseract support compiled in")
	}
	_, err := Recognize("x.png", "eng")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPickBestSkipsUnreadableCandidates(t *testing.T) {
	if !Available() {
		t.Skip("requires tesseract")
	}
	_, err := PickBest([]enhance.Candidate{
		{Method: "conservative", Path: "does-not-exist.png"},
	}, "eng")
	assert.Error(t, err, "all candidates failing surfaces the last error")
}
