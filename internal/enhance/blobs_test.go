package enhance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBlock(r *Raster, x0, y0, side int) {
	for dy := 0; dy < side; dy++ {
		for dx := 0; dx < side; dx++ {
			r.Set(x0+dx, y0+dy, 255)
		}
	}
}

func TestRemoveSmallBlobsThreshold(t *testing.T) {
	r := NewRaster(40, 20)
	setBlock(r, 2, 2, 3)   // 9 px, below the default minimum of 10
	setBlock(r, 10, 2, 4)  // 16 px, kept
	setBlock(r, 20, 2, 2)  // 4 px, removed
	out := RemoveSmallBlobs(r, 10)

	assert.EqualValues(t, 0, out.At(3, 3), "9px blob removed")
	assert.EqualValues(t, 255, out.At(11, 3), "16px blob kept")
	assert.EqualValues(t, 0, out.At(20, 2), "4px blob removed")
}

func TestRemoveSmallBlobsExactAreaKept(t *testing.T) {
	// a 2x5 block has exactly minArea pixels and must survive
	r := NewRaster(20, 20)
	for dy := 0; dy < 5; dy++ {
		for dx := 0; dx < 2; dx++ {
			r.Set(5+dx, 5+dy, 255)
		}
	}
	out := RemoveSmallBlobs(r, 10)
	assert.EqualValues(t, 255, out.At(5, 5))
}

func TestRemoveSmallBlobsDiagonalNotConnected(t *testing.T) {
	// two 5px pieces touching only diagonally are separate 4-connected
	// components, each below a minimum of 6
	r := NewRaster(20, 20)
	for i := 0; i < 5; i++ {
		r.Set(2+i, 2, 255)
	}
	for i := 0; i < 5; i++ {
		r.Set(7+i, 3, 255)
	}
	out := RemoveSmallBlobs(r, 6)
	for _, v := range out.Pix {
		assert.EqualValues(t, 0, v)
	}
}

func TestRemoveSmallBlobsMinAreaOneKeepsAll(t *testing.T) {
	r := NewRaster(10, 10)
	r.Set(4, 4, 255)
	out := RemoveSmallBlobs(r, 1)
	assert.EqualValues(t, 255, out.At(4, 4))
}

func TestRemoveSmallBlobsDoesNotMutateInput(t *testing.T) {
	r := NewRaster(10, 10)
	r.Set(4, 4, 255)
	_ = RemoveSmallBlobs(r, 5)
	assert.EqualValues(t, 255, r.At(4, 4))
}
