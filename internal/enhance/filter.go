package enhance

import (
	"math"

	"github.com/veritas-tools/imgprep/internal/mempool"
)

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// DenoiseNLMeans applies non-local-means denoising: each output pixel is a
// weighted average of search-window pixels, weighted by the similarity of the
// template patches around them. strength controls how aggressively dissimilar
// patches are down-weighted. Borders replicate.
func DenoiseNLMeans(r *Raster, strength float64, templateWindow, searchWindow int) *Raster {
	if r.Empty() || strength <= 0 {
		return r.Clone()
	}
	if templateWindow < 1 {
		templateWindow = 1
	}
	if searchWindow < templateWindow {
		searchWindow = templateWindow
	}
	tr := templateWindow / 2
	sr := searchWindow / 2
	patchSize := float64((2*tr + 1) * (2*tr + 1))
	h2 := strength * strength

	out := NewRaster(r.W, r.H)
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			var sum, wsum float64
			for qy := y - sr; qy <= y+sr; qy++ {
				for qx := x - sr; qx <= x+sr; qx++ {
					var d2 float64
					for ty := -tr; ty <= tr; ty++ {
						for tx := -tr; tx <= tr; tx++ {
							d := float64(r.At(x+tx, y+ty)) - float64(r.At(qx+tx, qy+ty))
							d2 += d * d
						}
					}
					w := math.Exp(-d2 / (h2 * patchSize))
					sum += w * float64(r.At(qx, qy))
					wsum += w
				}
			}
			out.Pix[y*r.W+x] = clampU8(sum / wsum)
		}
	}
	return out
}

// EqualizeCLAHE performs contrast-limited adaptive histogram equalization over
// a tiles x tiles grid. Each tile's histogram is clipped at
// clipLimit * tileArea / 256 with the excess redistributed uniformly; output
// pixels bilinearly interpolate between the four surrounding tile mappings.
func EqualizeCLAHE(r *Raster, clipLimit float64, tiles int) *Raster {
	if r.Empty() || tiles < 1 {
		return r.Clone()
	}
	if tiles > r.W {
		tiles = r.W
	}
	if tiles > r.H {
		tiles = r.H
	}
	tileW := (r.W + tiles - 1) / tiles
	tileH := (r.H + tiles - 1) / tiles

	// Per-tile lookup tables.
	luts := make([][256]uint8, tiles*tiles)
	for ty := 0; ty < tiles; ty++ {
		for tx := 0; tx < tiles; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := min(x0+tileW, r.W), min(y0+tileH, r.H)
			luts[ty*tiles+tx] = claheTileLUT(r, x0, y0, x1, y1, clipLimit)
		}
	}

	out := NewRaster(r.W, r.H)
	for y := 0; y < r.H; y++ {
		// tile-space position of the pixel center
		fy := (float64(y)+0.5)/float64(tileH) - 0.5
		ty0 := int(math.Floor(fy))
		wy := fy - float64(ty0)
		ty1 := ty0 + 1
		ty0 = clampTile(ty0, tiles)
		ty1 = clampTile(ty1, tiles)
		for x := 0; x < r.W; x++ {
			fx := (float64(x)+0.5)/float64(tileW) - 0.5
			tx0 := int(math.Floor(fx))
			wx := fx - float64(tx0)
			tx1 := tx0 + 1
			tx0 = clampTile(tx0, tiles)
			tx1 = clampTile(tx1, tiles)

			v := r.Pix[y*r.W+x]
			top := (1-wx)*float64(luts[ty0*tiles+tx0][v]) + wx*float64(luts[ty0*tiles+tx1][v])
			bot := (1-wx)*float64(luts[ty1*tiles+tx0][v]) + wx*float64(luts[ty1*tiles+tx1][v])
			out.Pix[y*r.W+x] = clampU8((1-wy)*top + wy*bot)
		}
	}
	return out
}

func clampTile(t, tiles int) int {
	if t < 0 {
		return 0
	}
	if t >= tiles {
		return tiles - 1
	}
	return t
}

func claheTileLUT(r *Raster, x0, y0, x1, y1 int, clipLimit float64) [256]uint8 {
	var hist [256]int
	area := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[r.Pix[y*r.W+x]]++
			area++
		}
	}
	var lut [256]uint8
	if area == 0 {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	clip := int(clipLimit * float64(area) / 256)
	if clip < 1 {
		clip = 1
	}
	excess := 0
	for i := range hist {
		if hist[i] > clip {
			excess += hist[i] - clip
			hist[i] = clip
		}
	}
	// redistribute clipped mass uniformly
	share := excess / 256
	rem := excess % 256
	for i := range hist {
		hist[i] += share
		if i < rem {
			hist[i]++
		}
	}

	cdf := 0
	for i := range hist {
		cdf += hist[i]
		lut[i] = clampU8(float64(cdf) * 255 / float64(area))
	}
	return lut
}

// FilterBilateral applies edge-preserving bilateral filtering over a
// diameter x diameter window with shared spatial and intensity sigma.
func FilterBilateral(r *Raster, diameter int, sigma float64) *Raster {
	if r.Empty() || diameter < 3 || sigma <= 0 {
		return r.Clone()
	}
	rad := diameter / 2
	twoSigma2 := 2 * sigma * sigma

	// spatial weights are fixed per offset
	spatial := mempool.GetFloat32(diameter * diameter)
	defer mempool.PutFloat32(spatial)
	for dy := -rad; dy <= rad; dy++ {
		for dx := -rad; dx <= rad; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+rad)*diameter+(dx+rad)] = float32(math.Exp(-d2 / twoSigma2))
		}
	}

	out := NewRaster(r.W, r.H)
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			center := float64(r.Pix[y*r.W+x])
			var sum, wsum float64
			for dy := -rad; dy <= rad; dy++ {
				for dx := -rad; dx <= rad; dx++ {
					v := float64(r.At(x+dx, y+dy))
					dI := v - center
					w := float64(spatial[(dy+rad)*diameter+(dx+rad)]) * math.Exp(-dI*dI/twoSigma2)
					sum += w * v
					wsum += w
				}
			}
			out.Pix[y*r.W+x] = clampU8(sum / wsum)
		}
	}
	return out
}

// RescaleIntensity maps every pixel through alpha*v + beta, clamped to [0,255].
func RescaleIntensity(r *Raster, alpha, beta float64) *Raster {
	out := NewRaster(r.W, r.H)
	for i, v := range r.Pix {
		out.Pix[i] = clampU8(alpha*float64(v) + beta)
	}
	return out
}

// StretchContrast scales intensities away from the image mean by factor,
// clamped to [0,255]. factor 1 is the identity; 2 doubles contrast.
func StretchContrast(r *Raster, factor float64) *Raster {
	if r.Empty() {
		return r.Clone()
	}
	var sum float64
	for _, v := range r.Pix {
		sum += float64(v)
	}
	mean := sum / float64(len(r.Pix))

	out := NewRaster(r.W, r.H)
	for i, v := range r.Pix {
		out.Pix[i] = clampU8(mean + factor*(float64(v)-mean))
	}
	return out
}
