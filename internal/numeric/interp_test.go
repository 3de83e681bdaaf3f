package numeric

import (
	"errors"
	"math"
	"testing"
)

func TestInterp1DSchemes(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 1, 4, 9, 16} // x^2

	tests := []struct {
		scheme Scheme
		at     float64
		want   float64
		tol    float64
	}{
		{SchemeConstant, 1.7, 1.0, 1e-12},
		{SchemeLinear, 1.5, 2.5, 1e-12},
		{SchemeQuadratic, 1.5, 2.25, 1e-10},
		{SchemeCubic, 2.0, 4.0, 1e-12},
		{SchemeLagrange, 2.5, 6.25, 1e-9},
	}
	for _, tt := range tests {
		it, err := Interp1D(x, y, tt.scheme)
		if err != nil {
			t.Fatalf("%s: %v", tt.scheme, err)
		}
		if got := it.Eval(tt.at); math.Abs(got-tt.want) > tt.tol {
			t.Errorf("%s at %g: expected %g, got %g", tt.scheme, tt.at, tt.want, got)
		}
	}
}

func TestInterp1DUnsupportedScheme(t *testing.T) {
	_, err := Interp1D([]float64{0, 1}, []float64{0, 1}, Scheme("akima"))
	var schemeErr UnsupportedSchemeError
	if !errors.As(err, &schemeErr) {
		t.Fatalf("expected UnsupportedSchemeError, got %v", err)
	}
}

func TestInterp1DHitsSamples(t *testing.T) {
	x := []float64{0, 0.3, 1.1, 2.0}
	y := []float64{5, -2, 7, 1}
	for _, scheme := range []Scheme{SchemeLinear, SchemeCubic, SchemeLagrange} {
		it, err := Interp1D(x, y, scheme)
		if err != nil {
			t.Fatal(err)
		}
		for i := range x {
			if got := it.Eval(x[i]); math.Abs(got-y[i]) > 1e-9 {
				t.Errorf("%s at sample %d: expected %g, got %g", scheme, i, y[i], got)
			}
		}
	}
}

func TestEvalAllMatchesEval(t *testing.T) {
	it, err := Interp1D([]float64{0, 1, 2, 3}, []float64{1, 3, 2, 5}, SchemeCubic)
	if err != nil {
		t.Fatal(err)
	}
	xq := []float64{0.25, 1.0, 2.9}
	got := it.EvalAll(xq)
	for i, q := range xq {
		if got[i] != it.Eval(q) {
			t.Errorf("EvalAll[%d] = %g, Eval(%g) = %g", i, got[i], q, it.Eval(q))
		}
	}
}

func TestToRange(t *testing.T) {
	r, err := ToRange([]float64{0.0, 0.5, 1.0})
	if err != nil {
		t.Fatal(err)
	}
	if r.Start != 0 || r.Stop != 1 || r.N != 3 {
		t.Errorf("unexpected range %+v", r)
	}
	if math.Abs(r.Step()-0.5) > 1e-15 {
		t.Errorf("expected step 0.5, got %g", r.Step())
	}
}

func TestToRangeNonUniform(t *testing.T) {
	_, err := ToRange([]float64{0.0, 0.3, 1.0})
	var spacingErr NonUniformSpacingError
	if !errors.As(err, &spacingErr) {
		t.Fatalf("expected NonUniformSpacingError, got %v", err)
	}
}

func TestInterp2DReproducesBilinear(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 1, 2, 3}
	f := make([][]float64, len(x))
	for i := range f {
		f[i] = make([]float64, len(y))
		for j := range f[i] {
			f[i][j] = 2*x[i] - y[j]
		}
	}
	it, err := NewInterp2D(x, y, f)
	if err != nil {
		t.Fatal(err)
	}
	v, dx, dy := it.EvalGrad(1.5, 2.25)
	if math.Abs(v-(2*1.5-2.25)) > 1e-10 {
		t.Errorf("value: expected %g, got %g", 2*1.5-2.25, v)
	}
	if math.Abs(dx-2) > 1e-10 || math.Abs(dy+1) > 1e-10 {
		t.Errorf("gradient: expected (2,-1), got (%g,%g)", dx, dy)
	}
}

func TestInterp2DLinearInEdgeCells(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 1, 2, 3}
	f := make([][]float64, len(x))
	for i := range f {
		f[i] = make([]float64, len(y))
		for j := range f[i] {
			f[i][j] = 2*x[i] - y[j]
		}
	}
	it, err := NewInterp2D(x, y, f)
	if err != nil {
		t.Fatal(err)
	}
	// Queries inside the first and last cells of each axis: the 4x4
	// stencil overhangs the grid there and must still reproduce a
	// linear field and its gradient exactly.
	tests := []struct{ xq, yq float64 }{
		{0.5, 1.5},
		{3.5, 1.5},
		{2.0, 0.25},
		{1.5, 2.75},
		{0.25, 0.25},
		{3.75, 2.75},
	}
	for _, tt := range tests {
		v, dx, dy := it.EvalGrad(tt.xq, tt.yq)
		want := 2*tt.xq - tt.yq
		if math.Abs(v-want) > 1e-10 {
			t.Errorf("value at (%g,%g): expected %g, got %g", tt.xq, tt.yq, want, v)
		}
		if math.Abs(dx-2) > 1e-10 || math.Abs(dy+1) > 1e-10 {
			t.Errorf("gradient at (%g,%g): expected (2,-1), got (%g,%g)", tt.xq, tt.yq, dx, dy)
		}
	}
}

func TestInterp2DRejectsNonUniformAxis(t *testing.T) {
	_, err := NewInterp2D([]float64{0, 0.3, 1}, []float64{0, 1}, [][]float64{{0, 0}, {0, 0}, {0, 0}})
	var spacingErr NonUniformSpacingError
	if !errors.As(err, &spacingErr) {
		t.Fatalf("expected NonUniformSpacingError, got %v", err)
	}
}
