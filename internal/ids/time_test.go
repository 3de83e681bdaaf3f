package ids

import (
	"errors"
	"math"
	"testing"
)

func newVacuumField(t *testing.T) (*Node, *Node) {
	t.Helper()
	root := NewRoot()
	eq := root.EnsureChild("equilibrium")
	return root, eq.EnsureChild("vacuum_toroidal_field")
}

func TestSetTimeArrayAppendsAndOverwrites(t *testing.T) {
	_, vac := newVacuumField(t)

	if err := vac.SetTimeArray("b0", 0.0, 2.0); err != nil {
		t.Fatal(err)
	}
	if err := vac.SetTimeArray("b0", 1.0, 2.1); err != nil {
		t.Fatal(err)
	}
	top, _ := vac.Top()
	times := top.Floats("time")
	if len(times) != 2 || times[1] != 1.0 {
		t.Fatalf("unexpected time array %v", times)
	}
	b0 := vac.Floats("b0")
	if len(b0) != 2 || b0[1] != 2.1 {
		t.Fatalf("unexpected b0 %v", b0)
	}

	// Exact time match overwrites in place.
	if err := vac.SetTimeArray("b0", 1.0, 2.5); err != nil {
		t.Fatal(err)
	}
	if got := vac.Floats("b0"); len(got) != 2 || got[1] != 2.5 {
		t.Fatalf("expected overwrite, got %v", got)
	}
}

func TestSetTimeArrayOrdering(t *testing.T) {
	_, vac := newVacuumField(t)
	if err := vac.SetTimeArray("b0", 0.0, 2.0); err != nil {
		t.Fatal(err)
	}
	if err := vac.SetTimeArray("b0", 2.0, 2.2); err != nil {
		t.Fatal(err)
	}
	err := vac.SetTimeArray("b0", 1.0, 2.1)
	var ordErr TimeOrderingError
	if !errors.As(err, &ordErr) {
		t.Fatalf("expected TimeOrderingError, got %v", err)
	}
	if ordErr.Requested != 1.0 || ordErr.Max != 2.0 {
		t.Errorf("unexpected error payload %+v", ordErr)
	}
}

func TestSetTimeArraySyncsSiblings(t *testing.T) {
	root, vac := newVacuumField(t)
	eq := root.Child("equilibrium")
	if err := vac.SetTimeArray("b0", 0.0, 2.0); err != nil {
		t.Fatal(err)
	}
	slices := eq.EnsureStructArray("time_slice")
	slices.Resize(1)

	// Appending a new time point must extend b0 (repeating the last
	// value) and grow the time_slice array, keeping lengths in sync.
	if err := vac.SetTimeArray("b0", 1.0, 2.1); err != nil {
		t.Fatal(err)
	}
	if slices.Len() != 2 {
		t.Errorf("expected time_slice to grow to 2, got %d", slices.Len())
	}

	// A second time-dependent scalar introduced later appends through
	// the same contract.
	if err := vac.SetTimeArray("b0", 2.0, 2.2); err != nil {
		t.Fatal(err)
	}
	times := eq.Floats("time")
	b0 := vac.Floats("b0")
	if len(times) != len(b0) {
		t.Fatalf("lengths out of sync: time %d, b0 %d", len(times), len(b0))
	}
}

func TestGetTimeArrayNearest(t *testing.T) {
	_, vac := newVacuumField(t)
	for i, v := range []float64{2.0, 2.1, 2.2} {
		if err := vac.SetTimeArray("b0", float64(i), v); err != nil {
			t.Fatal(err)
		}
	}
	got, err := vac.GetTimeArray("b0", 1.9)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-2.2) > 1e-12 {
		t.Errorf("expected 2.2 (nearest sample), got %g", got)
	}
}

func TestGlobalTime(t *testing.T) {
	root, vac := newVacuumField(t)
	root.SetGlobalTime(1.5)
	if got := vac.GlobalTime(); got != 1.5 {
		t.Errorf("expected 1.5 from any node, got %g", got)
	}
}
