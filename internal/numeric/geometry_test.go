package numeric

import (
	"math"
	"testing"
)

func TestSegmentIntersections(t *testing.T) {
	a := []Point{{0, 0}, {2, 2}}
	b := []Point{{0, 2}, {2, 0}}
	pts := SegmentIntersections(a, b)
	if len(pts) != 1 {
		t.Fatalf("expected 1 intersection, got %d", len(pts))
	}
	if math.Abs(pts[0].X-1) > 1e-12 || math.Abs(pts[0].Y-1) > 1e-12 {
		t.Errorf("expected (1,1), got %+v", pts[0])
	}
}

func TestSegmentIntersectionsNone(t *testing.T) {
	a := []Point{{0, 0}, {1, 0}}
	b := []Point{{0, 1}, {1, 1}}
	if pts := SegmentIntersections(a, b); len(pts) != 0 {
		t.Errorf("expected no intersections, got %v", pts)
	}
}

func TestMinDistance(t *testing.T) {
	a := []Point{{0, 0}, {1, 0}, {2, 0}}
	b := []Point{{1, 3}, {2, 1}}
	if d := MinDistance(a, b); math.Abs(d-1.0) > 1e-12 {
		t.Errorf("expected 1, got %g", d)
	}
	i, j := MinDistanceIndices(a, b)
	if i != 2 || j != 1 {
		t.Errorf("expected indices (2,1), got (%d,%d)", i, j)
	}
}

func TestResampleLineUniformSpacing(t *testing.T) {
	pts := []Point{{0, 0}, {1, 0}, {1, 1}, {1, 3}}
	out := ResampleLine(pts, 0.5)
	s := ArcLength(out)
	step := s[1] - s[0]
	for i := 2; i < len(s); i++ {
		if math.Abs((s[i]-s[i-1])-step) > 1e-9 {
			t.Fatalf("non-uniform spacing at %d", i)
		}
	}
	if out[0] != pts[0] || out[len(out)-1] != pts[len(pts)-1] {
		t.Error("endpoints not preserved")
	}
}

func TestResampleLineSameCount(t *testing.T) {
	pts := []Point{{0, 0}, {3, 0}, {3, 4}}
	out := ResampleLine(pts, 0)
	if len(out) != len(pts) {
		t.Errorf("expected %d points, got %d", len(pts), len(out))
	}
}

func TestPolygonAreaAndInside(t *testing.T) {
	square := []Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	if a := PolygonArea(square); math.Abs(a-4.0) > 1e-12 {
		t.Errorf("expected area 4, got %g", a)
	}
	if !PointInPolygon(Point{1, 1}, square) {
		t.Error("(1,1) should be inside")
	}
	if PointInPolygon(Point{3, 1}, square) {
		t.Error("(3,1) should be outside")
	}
}
