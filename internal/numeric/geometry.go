package numeric

import "math"

// Point is a 2D point; the flux-surface engine uses X for the major
// radius R and Y for the vertical coordinate Z.
type Point struct {
	X float64
	Y float64
}

func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// SegmentIntersections returns every intersection point between the
// segments of polyline a and the segments of polyline b. Pairs that do
// not intersect contribute nothing.
func SegmentIntersections(a, b []Point) []Point {
	var pts []Point
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if p, ok := segmentIntersect(a[i], a[i+1], b[j], b[j+1]); ok {
				pts = append(pts, p)
			}
		}
	}
	return pts
}

// segmentIntersect reports whether segments p1p2 and p3p4 intersect,
// using the orientation test, and solves the 2x2 determinant system for
// the intersection point.
func segmentIntersect(p1, p2, p3, p4 Point) (Point, bool) {
	o1 := orientation(p1, p2, p3)
	o2 := orientation(p1, p2, p4)
	o3 := orientation(p3, p4, p1)
	o4 := orientation(p3, p4, p2)
	if o1*o2 > 0 || o3*o4 > 0 {
		return Point{}, false
	}
	d1x, d1y := p2.X-p1.X, p2.Y-p1.Y
	d2x, d2y := p4.X-p3.X, p4.Y-p3.Y
	det := d1x*d2y - d1y*d2x
	if det == 0 {
		return Point{}, false
	}
	t := ((p3.X-p1.X)*d2y - (p3.Y-p1.Y)*d2x) / det
	return Point{X: p1.X + t*d1x, Y: p1.Y + t*d1y}, true
}

func orientation(a, b, c Point) float64 {
	v := (b.Y-a.Y)*(c.X-b.X) - (b.X-a.X)*(c.Y-b.Y)
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

// MinDistance returns the closest-point distance between two polylines
// by brute force over all point pairs.
func MinDistance(a, b []Point) float64 {
	d, _, _ := minDistance(a, b)
	return d
}

// MinDistanceIndices returns the indices of the closest point pair.
func MinDistanceIndices(a, b []Point) (int, int) {
	_, i, j := minDistance(a, b)
	return i, j
}

func minDistance(a, b []Point) (float64, int, int) {
	best := math.Inf(1)
	bi, bj := -1, -1
	for i, p := range a {
		for j, q := range b {
			if d := p.DistanceTo(q); d < best {
				best, bi, bj = d, i, j
			}
		}
	}
	return best, bi, bj
}

// ArcLength returns the cumulative arc length along a polyline; the
// result has the same length as pts with first entry 0.
func ArcLength(pts []Point) []float64 {
	s := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		s[i] = s[i-1] + pts[i].DistanceTo(pts[i-1])
	}
	return s
}

// ResampleLine reparametrizes a polyline to uniform arc-length spacing.
// A step <= 0 keeps the original point count.
func ResampleLine(pts []Point, step float64) []Point {
	if len(pts) < 2 {
		return append([]Point(nil), pts...)
	}
	s := ArcLength(pts)
	total := s[len(s)-1]
	n := len(pts)
	if step > 0 {
		n = int(total/step) + 1
		if n < 2 {
			n = 2
		}
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}
	ix, _ := Interp1D(s, xs, SchemeLinear)
	iy, _ := Interp1D(s, ys, SchemeLinear)
	sq := make([]float64, n)
	for i := range sq {
		sq[i] = total * float64(i) / float64(n-1)
	}
	rx := ix.EvalAll(sq)
	ry := iy.EvalAll(sq)
	out := make([]Point, n)
	for i := range out {
		out[i] = Point{X: rx[i], Y: ry[i]}
	}
	return out
}

// PolygonArea returns the absolute shoelace area of a polygon. The
// polygon may be open or explicitly closed.
func PolygonArea(pts []Point) float64 {
	area := 0.0
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(area) / 2.0
}

// Centroid returns the arithmetic mean of the polyline points.
func Centroid(pts []Point) Point {
	var c Point
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(pts))
	c.Y /= float64(len(pts))
	return c
}

// PointInPolygon reports whether p lies inside the polygon by ray
// crossing.
func PointInPolygon(p Point, poly []Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if (poly[i].Y > p.Y) != (poly[j].Y > p.Y) &&
			p.X < (poly[j].X-poly[i].X)*(p.Y-poly[i].Y)/(poly[j].Y-poly[i].Y)+poly[i].X {
			inside = !inside
		}
	}
	return inside
}
