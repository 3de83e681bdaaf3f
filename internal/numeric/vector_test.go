package numeric

import (
	"math"
	"testing"
)

func TestGradientLinear(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 2, 4, 6, 8}
	g := Gradient(x, y)
	for i, v := range g {
		if math.Abs(v-2.0) > 1e-12 {
			t.Errorf("index %d: expected gradient 2, got %g", i, v)
		}
	}
}

func TestGradientNonUniform(t *testing.T) {
	// y = x^2, non-uniform grid; interior points should be exact for a
	// second-order scheme.
	x := []float64{0, 0.1, 0.3, 0.7, 1.0}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = v * v
	}
	g := Gradient(x, y)
	for i := 1; i < len(x)-1; i++ {
		if math.Abs(g[i]-2*x[i]) > 1e-10 {
			t.Errorf("index %d: expected %g, got %g", i, 2*x[i], g[i])
		}
	}
}

func TestIntegrate(t *testing.T) {
	x := []float64{0, 0.25, 0.5, 0.75, 1.0}
	y := []float64{1, 1, 1, 1, 1}
	if got := Integrate(x, y); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected 1, got %g", got)
	}
}

func TestCumIntegrateStartsAtZero(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{3, 3, 3}
	c := CumIntegrate(x, y)
	if c[0] != 0 {
		t.Errorf("expected first entry 0, got %g", c[0])
	}
	if math.Abs(c[2]-6.0) > 1e-12 {
		t.Errorf("expected 6, got %g", c[2])
	}
}

func TestGradientCumIntegrateRoundTrip(t *testing.T) {
	// gradient(cumintegrate(y)) must recover y to within discretization
	// error on a smooth profile.
	n := 201
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i) / float64(n-1)
		y[i] = math.Sin(3 * x[i])
	}
	rec := Gradient(x, CumIntegrate(x, y))
	for i := 1; i < n-1; i++ {
		if math.Abs(rec[i]-y[i]) > 1e-3 {
			t.Fatalf("index %d: expected %g, got %g", i, y[i], rec[i])
		}
	}
}

func TestGradient2D(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 0.5, 1.0}
	f := make([][]float64, len(x))
	for i := range f {
		f[i] = make([]float64, len(y))
		for j := range f[i] {
			f[i][j] = 2*x[i] + 3*y[j]
		}
	}
	dfdx, dfdy := Gradient2D(x, y, f)
	for i := range x {
		for j := range y {
			if math.Abs(dfdx[i][j]-2) > 1e-12 {
				t.Fatalf("dfdx[%d][%d] = %g, expected 2", i, j, dfdx[i][j])
			}
			if math.Abs(dfdy[i][j]-3) > 1e-12 {
				t.Fatalf("dfdy[%d][%d] = %g, expected 3", i, j, dfdy[i][j])
			}
		}
	}
}
