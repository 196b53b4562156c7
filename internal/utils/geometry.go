package utils

import "math"

// Point represents a 2D coordinate in float space.
type Point struct {
	X float64
	Y float64
}

// ConvexHull computes the convex hull of a set of points using the
// monotone chain algorithm. Returns the hull in CCW order without
// duplicating the first point at the end.
func ConvexHull(pts []Point) []Point {
	n := len(pts)
	if n <= 1 {
		return append([]Point(nil), pts...)
	}
	p := make([]Point, n)
	copy(p, pts)
	sortPoints(p)
	p = dedupPoints(p)
	if len(p) <= 1 {
		return append([]Point(nil), p...)
	}
	lower := buildHalfHull(p, false)
	upper := buildHalfHull(p, true)
	hull := make([]Point, 0, len(lower)+len(upper)-2)
	hull = append(hull, lower[:len(lower)-1]...)
	hull = append(hull, upper[:len(upper)-1]...)
	return hull
}

func dedupPoints(p []Point) []Point {
	q := p[:0]
	var last Point
	hasLast := false
	for _, pt := range p {
		if !hasLast || pt.X != last.X || pt.Y != last.Y {
			q = append(q, pt)
			last = pt
			hasLast = true
		}
	}
	return q
}

func buildHalfHull(p []Point, reversed bool) []Point {
	half := make([]Point, 0, len(p))
	for i := range p {
		pt := p[i]
		if reversed {
			pt = p[len(p)-1-i]
		}
		for len(half) >= 2 && cross(half[len(half)-2], half[len(half)-1], pt) <= 0 {
			half = half[:len(half)-1]
		}
		half = append(half, pt)
	}
	return half
}

func sortPoints(p []Point) {
	// insertion sort; hulls here are built from small point sets
	for i := 1; i < len(p); i++ {
		v := p[i]
		j := i - 1
		for j >= 0 && (p[j].X > v.X || (p[j].X == v.X && p[j].Y > v.Y)) {
			p[j+1] = p[j]
			j--
		}
		p[j+1] = v
	}
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// MinAreaRect is a rotated rectangle enclosing a point set with minimum area.
// Corners are ordered so that Corners[0]->Corners[1] and Corners[0]->Corners[3]
// are the two edge directions.
type MinAreaRect struct {
	Corners [4]Point
}

// LongSideAngle returns the orientation of the rectangle's longer side in
// degrees, normalized to (-90, 90]. For squares the first edge is used.
func (r MinAreaRect) LongSideAngle() float64 {
	e1x, e1y := r.Corners[1].X-r.Corners[0].X, r.Corners[1].Y-r.Corners[0].Y
	e2x, e2y := r.Corners[3].X-r.Corners[0].X, r.Corners[3].Y-r.Corners[0].Y
	dx, dy := e1x, e1y
	if math.Hypot(e2x, e2y) > math.Hypot(e1x, e1y) {
		dx, dy = e2x, e2y
	}
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	for deg <= -90 {
		deg += 180
	}
	for deg > 90 {
		deg -= 180
	}
	return deg
}

// MinimumAreaRectangle computes the minimum-area enclosing rotated rectangle
// using rotating calipers over the convex hull. Degenerate inputs (a single
// point or a collinear pair) fall back to unit-thickness rectangles.
func MinimumAreaRectangle(pts []Point) (MinAreaRect, bool) {
	if len(pts) == 0 {
		return MinAreaRect{}, false
	}
	hull := ConvexHull(pts)
	switch len(hull) {
	case 0:
		return MinAreaRect{}, false
	case 1:
		p := hull[0]
		return MinAreaRect{Corners: [4]Point{p, {p.X + 1, p.Y}, {p.X + 1, p.Y + 1}, {p.X, p.Y + 1}}}, true
	case 2:
		a, b := hull[0], hull[1]
		return MinAreaRect{Corners: [4]Point{a, b, {b.X, b.Y + 1}, {a.X, a.Y + 1}}}, true
	}
	return calipersRect(hull), true
}

func calipersRect(hull []Point) MinAreaRect {
	bestArea := math.Inf(1)
	var bu, bv Point
	var bMinS, bMaxS, bMinT, bMaxT float64
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		ux, uy := dx/l, dy/l
		vx, vy := -uy, ux
		minS, maxS := math.Inf(1), math.Inf(-1)
		minT, maxT := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			s := p.X*ux + p.Y*uy
			t := p.X*vx + p.Y*vy
			minS = math.Min(minS, s)
			maxS = math.Max(maxS, s)
			minT = math.Min(minT, t)
			maxT = math.Max(maxT, t)
		}
		area := (maxS - minS) * (maxT - minT)
		if area < bestArea {
			bestArea = area
			bu = Point{ux, uy}
			bv = Point{vx, vy}
			bMinS, bMaxS, bMinT, bMaxT = minS, maxS, minT, maxT
		}
	}
	at := func(s, t float64) Point {
		return Point{X: bu.X*s + bv.X*t, Y: bu.Y*s + bv.Y*t}
	}
	return MinAreaRect{Corners: [4]Point{
		at(bMinS, bMinT), at(bMaxS, bMinT), at(bMaxS, bMaxT), at(bMinS, bMaxT),
	}}
}
