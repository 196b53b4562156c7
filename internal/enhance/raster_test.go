package enhance

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritas-tools/imgprep/internal/testutil"
)

func TestRasterAtReplicatesBorders(t *testing.T) {
	r := rasterFromRows([][]uint8{
		{1, 2},
		{3, 4},
	})
	assert.EqualValues(t, 1, r.At(-5, -5))
	assert.EqualValues(t, 2, r.At(10, -1))
	assert.EqualValues(t, 3, r.At(-1, 10))
	assert.EqualValues(t, 4, r.At(10, 10))
}

func TestRasterSetIgnoresOutOfBounds(t *testing.T) {
	r := NewRaster(2, 2)
	r.Set(-1, 0, 9)
	r.Set(0, 5, 9)
	for _, v := range r.Pix {
		assert.EqualValues(t, 0, v)
	}
}

func TestRasterCloneIsIndependent(t *testing.T) {
	r := NewRaster(3, 3)
	r.Set(1, 1, 7)
	c := r.Clone()
	c.Set(1, 1, 200)
	assert.EqualValues(t, 7, r.At(1, 1))
}

func TestFromImageGrayRoundTrip(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x*10 + y)})
		}
	}
	r := FromImage(img)
	require.Equal(t, 4, r.W)
	require.Equal(t, 3, r.H)

	back := r.ToGray()
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, img.GrayAt(x, y).Y, back.GrayAt(x, y).Y)
		}
	}
}

func TestLoadGrayscale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")
	testutil.SaveImage(t, testutil.GenerateGradientImage(16, 8), path)

	r, err := LoadGrayscale(path)
	require.NoError(t, err)
	assert.Equal(t, 16, r.W)
	assert.Equal(t, 8, r.H)
}

func TestLoadGrayscaleMissingFile(t *testing.T) {
	_, err := LoadGrayscale(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}
