package export

import (
	"math"
	"strings"
	"testing"
)

func circle(n int, r0, a, kappa float64) [2][]float64 {
	r := make([]float64, n)
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		r[i] = r0 + a*math.Cos(th)
		z[i] = kappa * a * math.Sin(th)
	}
	return [2][]float64{r, z}
}

func TestOutlineSVG(t *testing.T) {
	svg := OutlineSVG([][2][]float64{circle(64, 1.67, 0.45, 1.8)}, 400, 600)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, "<polygon") {
		t.Error("missing outline polygon")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("missing closing tag")
	}
	if strings.Contains(svg, "NaN") {
		t.Error("SVG contains NaN coordinates")
	}
}

func TestOutlineSVGMultiple(t *testing.T) {
	svg := OutlineSVG([][2][]float64{
		circle(64, 1.67, 0.45, 1.8),
		circle(64, 1.67, 0.22, 1.8),
	}, 400, 600)

	if got := strings.Count(svg, "<polygon"); got != 2 {
		t.Errorf("expected 2 polygons, got %d", got)
	}
}

func TestOutlineSVGEmpty(t *testing.T) {
	if svg := OutlineSVG(nil, 400, 600); svg != "" {
		t.Errorf("expected empty string, got %q", svg)
	}
}
