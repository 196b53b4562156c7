package utils

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.png", true},
		{"a.PNG", true},
		{"a.jpg", true},
		{"a.jpeg", true},
		{"a.bmp", true},
		{"a.tif", true},
		{"a.tiff", true},
		{"a.gif", false},
		{"a.txt", false},
		{"a", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSupportedImage(tt.path), tt.path)
	}
}

func TestLoadImageErrors(t *testing.T) {
	_, _, err := LoadImage("")
	require.Error(t, err)

	_, _, err = LoadImage("nope.txt")
	require.Error(t, err)

	_, _, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	var ipe *ImageProcessingError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, "load", ipe.Operation)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 12, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 256)
	}
	img.SetGray(3, 3, color.Gray{Y: 200})

	path := filepath.Join(t.TempDir(), "round.png")
	require.NoError(t, SavePNG(path, img))

	got, meta, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, "png", meta.Format)
	assert.Equal(t, 12, meta.Width)
	assert.Equal(t, 8, meta.Height)
	require.NotNil(t, got)
	r, g, b, _ := got.At(3, 3).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
	assert.Equal(t, uint32(200), r>>8)
}

func TestSourceStem(t *testing.T) {
	assert.Equal(t, "scan_001", SourceStem("/data/in/scan_001.png"))
	assert.Equal(t, "msg", SourceStem("msg.jpeg"))
	assert.Equal(t, "noext", SourceStem("noext"))
	assert.Equal(t, "a.b", SourceStem("dir/a.b.png"))
}
