package enhance

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/veritas-tools/imgprep/internal/utils"
)

// Raster is a single-channel 8-bit intensity plane. Each pipeline stage owns
// the raster it is handed and produces a new one; rasters are never shared
// mutably across stages.
type Raster struct {
	Pix []uint8
	W   int
	H   int
}

// NewRaster allocates a zeroed raster of the given dimensions.
func NewRaster(w, h int) *Raster {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Raster{Pix: make([]uint8, w*h), W: w, H: h}
}

// At returns the intensity at (x, y). Out-of-range coordinates are clamped to
// the nearest edge pixel, which gives replicate-border semantics to samplers.
func (r *Raster) At(x, y int) uint8 {
	if x < 0 {
		x = 0
	} else if x >= r.W {
		x = r.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= r.H {
		y = r.H - 1
	}
	return r.Pix[y*r.W+x]
}

// Set writes the intensity at (x, y); out-of-range coordinates are ignored.
func (r *Raster) Set(x, y int, v uint8) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.Pix[y*r.W+x] = v
}

// Clone returns a deep copy.
func (r *Raster) Clone() *Raster {
	out := &Raster{Pix: make([]uint8, len(r.Pix)), W: r.W, H: r.H}
	copy(out.Pix, r.Pix)
	return out
}

// Empty reports whether the raster has no pixels.
func (r *Raster) Empty() bool { return r == nil || r.W == 0 || r.H == 0 }

// FromImage converts any decoded image to a grayscale raster using the
// standard luminance weights.
func FromImage(img image.Image) *Raster {
	if img == nil {
		return NewRaster(0, 0)
	}
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	out := NewRaster(b.Dx(), b.Dy())
	// imaging.Grayscale yields NRGBA with R=G=B; take the red channel.
	for y := 0; y < out.H; y++ {
		src := gray.Pix[y*gray.Stride:]
		for x := 0; x < out.W; x++ {
			out.Pix[y*out.W+x] = src[x*4]
		}
	}
	return out
}

// ToGray converts the raster to an image.Gray for encoding.
func (r *Raster) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.W, r.H))
	copy(img.Pix, r.Pix)
	return img
}

// LoadGrayscale reads the image at path and converts it to a grayscale raster.
func LoadGrayscale(path string) (*Raster, error) {
	img, _, err := utils.LoadImage(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	r := FromImage(img)
	if r.Empty() {
		return nil, &LoadError{Path: path, Err: errEmptyImage}
	}
	return r, nil
}
