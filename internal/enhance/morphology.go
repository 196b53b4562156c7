package enhance

import (
	"github.com/veritas-tools/imgprep/internal/mempool"
)

// Morphological operations over intensity rasters with rectangular
// structuring elements. For a kw x kh element the window spans
// [-(k-1)/2, k/2] around the anchor, matching the usual even-kernel anchor.
// Pixels outside the image are ignored rather than padded.

func morphScan(src, dst []uint8, w, h, kw, kh int, dilate bool) {
	if kw < 1 {
		kw = 1
	}
	if kh < 1 {
		kh = 1
	}
	lx, hx := -(kw-1)/2, kw/2
	ly, hy := -(kh-1)/2, kh/2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var best uint8
			if !dilate {
				best = 255
			}
			for ky := ly; ky <= hy; ky++ {
				ny := y + ky
				if ny < 0 || ny >= h {
					continue
				}
				row := src[ny*w:]
				for kx := lx; kx <= hx; kx++ {
					nx := x + kx
					if nx < 0 || nx >= w {
						continue
					}
					v := row[nx]
					if dilate {
						if v > best {
							best = v
						}
					} else if v < best {
						best = v
					}
				}
			}
			dst[y*w+x] = best
		}
	}
}

// Erode shrinks foreground regions with a kw x kh element.
func Erode(r *Raster, kw, kh int) *Raster {
	out := NewRaster(r.W, r.H)
	morphScan(r.Pix, out.Pix, r.W, r.H, kw, kh, false)
	return out
}

// Dilate grows foreground regions with a kw x kh element.
func Dilate(r *Raster, kw, kh int) *Raster {
	out := NewRaster(r.W, r.H)
	morphScan(r.Pix, out.Pix, r.W, r.H, kw, kh, true)
	return out
}

// Open erodes then dilates, removing speckle noise smaller than the element.
func Open(r *Raster, kw, kh int) *Raster {
	tmp := mempool.GetUint8(len(r.Pix))
	defer mempool.PutUint8(tmp)
	morphScan(r.Pix, tmp, r.W, r.H, kw, kh, false)
	out := NewRaster(r.W, r.H)
	morphScan(tmp, out.Pix, r.W, r.H, kw, kh, true)
	return out
}

// Close dilates then erodes, filling gaps and reconnecting broken strokes
// narrower than the element.
func Close(r *Raster, kw, kh int) *Raster {
	tmp := mempool.GetUint8(len(r.Pix))
	defer mempool.PutUint8(tmp)
	morphScan(r.Pix, tmp, r.W, r.H, kw, kh, true)
	out := NewRaster(r.W, r.H)
	morphScan(tmp, out.Pix, r.W, r.H, kw, kh, false)
	return out
}

// Subtract computes the pixel-wise saturating difference a-b.
// Mismatched sizes return a copy of a.
func Subtract(a, b *Raster) *Raster {
	if a.W != b.W || a.H != b.H {
		return a.Clone()
	}
	out := NewRaster(a.W, a.H)
	for i := range a.Pix {
		if a.Pix[i] > b.Pix[i] {
			out.Pix[i] = a.Pix[i] - b.Pix[i]
		}
	}
	return out
}
