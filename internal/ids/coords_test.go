package ids

import (
	"errors"
	"math"
	"testing"
)

func TestSetWithImplicitCoordinate(t *testing.T) {
	root := NewRoot()
	eq := root.EnsureChild("equilibrium")
	slices := eq.EnsureStructArray("time_slice")
	slices.Resize(1)
	p1d := slices.At(0).EnsureChild("profiles_1d")
	// psi has only an implicit 1..N coordinate, so assignment succeeds
	// without any coordinate data in the tree.
	if err := p1d.Set("psi", []float64{0, 1, 2}); err != nil {
		t.Fatal(err)
	}
}

func TestSetCoordinateNotSet(t *testing.T) {
	root := NewRoot()
	eq := root.EnsureChild("equilibrium")
	slices := eq.EnsureStructArray("time_slice")
	slices.Resize(1)
	p1d := slices.At(0).EnsureChild("profiles_1d")
	// q's coordinate is psi, which is unset.
	err := p1d.Set("q", []float64{1, 2, 3})
	var coordErr CoordinateNotSetError
	if !errors.As(err, &coordErr) {
		t.Fatalf("expected CoordinateNotSetError, got %v", err)
	}
	if coordErr.Coordinate != "equilibrium.time_slice[:].profiles_1d.psi" {
		t.Errorf("unexpected coordinate %q", coordErr.Coordinate)
	}
}

func TestSetCoordinateLengthMismatch(t *testing.T) {
	_, p1d := buildEquilibrium(t)
	err := p1d.Set("q", []float64{1, 2, 3})
	var lenErr CoordinateLengthError
	if !errors.As(err, &lenErr) {
		t.Fatalf("expected CoordinateLengthError, got %v", err)
	}
}

func TestCoordinateLengthInvariantAfterMutation(t *testing.T) {
	_, p1d := buildEquilibrium(t)
	if err := p1d.Set("q", []float64{1, 1, 1, 1, 1}); err != nil {
		t.Fatal(err)
	}
	// Mutating data in place must keep lengths equal.
	q := p1d.Array("q")
	if err := q.SetAt(2, 3.5); err != nil {
		t.Fatal(err)
	}
	coords, err := p1d.Coordinates("q")
	if err != nil {
		t.Fatal(err)
	}
	if len(coords[0].Values) != q.Len() {
		t.Error("coordinate/data length invariant broken")
	}
}

func TestCoordinatesStates(t *testing.T) {
	root := NewRoot()
	eq := root.EnsureChild("equilibrium")
	slices := eq.EnsureStructArray("time_slice")
	slices.Resize(1)
	p1d := slices.At(0).EnsureChild("profiles_1d")

	// psi: implicit index only.
	coords, err := p1d.Coordinates("psi")
	if err != nil {
		t.Fatal(err)
	}
	if coords[0].State != CoordAbsent {
		t.Errorf("expected CoordAbsent for psi, got %v", coords[0].State)
	}

	// q before psi is set: missing.
	coords, err = p1d.Coordinates("q")
	if err != nil {
		t.Fatal(err)
	}
	if coords[0].State != CoordMissing {
		t.Errorf("expected CoordMissing for q, got %v", coords[0].State)
	}

	// After psi is set: present, shared backing.
	psi := []float64{0, 0.5, 1.0}
	if err := p1d.Set("psi", psi); err != nil {
		t.Fatal(err)
	}
	coords, err = p1d.Coordinates("q")
	if err != nil {
		t.Fatal(err)
	}
	if coords[0].State != CoordPresent {
		t.Fatalf("expected CoordPresent for q, got %v", coords[0].State)
	}
	psi[1] = 0.6
	if coords[0].Values[1] != 0.6 {
		t.Error("coordinate values should share backing with the data")
	}
}

func TestCoordinateAcrossIDSLevels(t *testing.T) {
	root := NewRoot()
	eq := root.EnsureChild("equilibrium")
	vac := eq.EnsureChild("vacuum_toroidal_field")
	// b0's coordinate is equilibrium.time, resolved via an upward walk.
	err := vac.Set("b0", []float64{2.0, 2.1})
	var coordErr CoordinateNotSetError
	if !errors.As(err, &coordErr) {
		t.Fatalf("expected CoordinateNotSetError, got %v", err)
	}
	if err := eq.Set("time", []float64{0.0, 1.0}); err != nil {
		t.Fatal(err)
	}
	if err := vac.Set("b0", []float64{2.0, 2.1}); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyticFieldArray(t *testing.T) {
	_, p1d := buildEquilibrium(t)
	psi := p1d.Floats("psi")
	q := NewAnalyticArray(func(x float64) float64 { return 1 + 2*x }, psi)
	if err := p1d.Set("q", q); err != nil {
		t.Fatal(err)
	}
	if got := q.At(2); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("expected 2, got %g", got)
	}
	err := q.SetAt(0, 5.0)
	var immErr ImmutableFieldError
	if !errors.As(err, &immErr) {
		t.Fatalf("expected ImmutableFieldError, got %v", err)
	}
	// Lazy: evaluation tracks in-place coordinate mutation.
	psi[2] = 0.6
	if got := q.At(2); math.Abs(got-2.2) > 1e-12 {
		t.Errorf("expected 2.2 after coordinate change, got %g", got)
	}
}

func TestSet2DValidatesBothCoordinates(t *testing.T) {
	root := NewRoot()
	eq := root.EnsureChild("equilibrium")
	slices := eq.EnsureStructArray("time_slice")
	slices.Resize(1)
	p2ds := slices.At(0).EnsureStructArray("profiles_2d")
	p2ds.Resize(1)
	p2d := p2ds.At(0)
	grid := p2d.EnsureChild("grid")
	if err := grid.Set("dim1", []float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := grid.Set("dim2", []float64{-1, 0, 1, 2}); err != nil {
		t.Fatal(err)
	}
	good := make([][]float64, 3)
	for i := range good {
		good[i] = make([]float64, 4)
	}
	if err := p2d.Set("psi", NewArray2D(good)); err != nil {
		t.Fatal(err)
	}
	bad := make([][]float64, 3)
	for i := range bad {
		bad[i] = make([]float64, 2)
	}
	err := p2d.Set("psi", NewArray2D(bad))
	var lenErr CoordinateLengthError
	if !errors.As(err, &lenErr) {
		t.Fatalf("expected CoordinateLengthError, got %v", err)
	}
}
