package enhance

import (
	"math"

	"github.com/veritas-tools/imgprep/internal/utils"
)

// foregroundPoints collects the coordinates of all non-zero pixels. The set
// exists only for skew estimation and is discarded afterwards.
func foregroundPoints(r *Raster) []utils.Point {
	pts := make([]utils.Point, 0, 1024)
	for y := 0; y < r.H; y++ {
		row := r.Pix[y*r.W : (y+1)*r.W]
		for x, v := range row {
			if v > 0 {
				pts = append(pts, utils.Point{X: float64(x), Y: float64(y)})
			}
		}
	}
	return pts
}

// EstimateSkew measures the rotation of the raster's content in degrees,
// normalized to (-45, 45]. The minimum-area rectangle over all foreground
// pixels provides the raw orientation; a raw estimate below -45 degrees is
// folded with -(90+raw), everything else with -raw. The branch is asymmetric
// on purpose: it decides whether content counts as mostly horizontal or
// mostly vertical.
func EstimateSkew(r *Raster) (float64, error) {
	pts := foregroundPoints(r)
	if len(pts) == 0 {
		return 0, &EmptyContentError{}
	}
	rect, ok := utils.MinimumAreaRectangle(pts)
	if !ok {
		return 0, &EmptyContentError{}
	}
	theta := rect.LongSideAngle() // (-90, 90]
	raw := theta
	if raw > 0 {
		raw -= 90 // (-90, 0], the convention the fold expects
	}
	if raw < -45 {
		return -(90 + raw), nil
	}
	return -raw, nil
}

// Deskew straightens the raster's content. The returned raster has identical
// dimensions. When no foreground exists an EmptyContentError is returned with
// the input untouched; when the estimated skew is within minAngle the input
// passes through unrotated.
func Deskew(r *Raster, minAngle float64) (*Raster, float64, error) {
	angle, err := EstimateSkew(r)
	if err != nil {
		return r, 0, err
	}
	if math.Abs(angle) <= minAngle {
		return r, angle, nil
	}
	return rotateBicubic(r, angle), angle, nil
}

// rotateBicubic rotates content by angle degrees about the image center with
// Catmull-Rom interpolation. Samples outside the source replicate the nearest
// edge pixel so no artificial black borders appear.
func rotateBicubic(r *Raster, angle float64) *Raster {
	rad := angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	cx := float64(r.W) / 2
	cy := float64(r.H) / 2

	out := NewRaster(r.W, r.H)
	for y := 0; y < r.H; y++ {
		yc := float64(y) - cy
		for x := 0; x < r.W; x++ {
			xc := float64(x) - cx
			sx := xc*cos + yc*sin + cx
			sy := -xc*sin + yc*cos + cy
			out.Pix[y*r.W+x] = sampleBicubic(r, sx, sy)
		}
	}
	return out
}

// catmullRom is the bicubic interpolation kernel with a = -0.5.
func catmullRom(d float64) float64 {
	d = math.Abs(d)
	switch {
	case d <= 1:
		return ((1.5*d-2.5)*d)*d + 1
	case d < 2:
		return ((-0.5*d+2.5)*d-4)*d + 2
	default:
		return 0
	}
}

func sampleBicubic(r *Raster, sx, sy float64) uint8 {
	ix := int(math.Floor(sx))
	iy := int(math.Floor(sy))
	fx := sx - float64(ix)
	fy := sy - float64(iy)

	var acc float64
	for j := -1; j <= 2; j++ {
		wy := catmullRom(float64(j) - fy)
		if wy == 0 {
			continue
		}
		var row float64
		for i := -1; i <= 2; i++ {
			wx := catmullRom(float64(i) - fx)
			if wx == 0 {
				continue
			}
			row += wx * float64(r.At(ix+i, iy+j))
		}
		acc += wy * row
	}
	return clampU8(acc)
}
