package storage

import (
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetRun(t *testing.T) {
	s := openTestStore(t)

	rec := &RunRecord{
		Preset:        "standard",
		GridSize:      129,
		ProfilePoints: 65,
		Slices:        1,
		QAxis:         1.1,
		Q95:           3.8,
		Ip:            1.2e6,
		BetaNormal:    1.9,
		Li3:           0.9,
		Volume:        19.5,
	}
	profiles := map[string][]float64{
		"q":            {1.1, 1.5, 2.2, 3.8},
		"rho_tor_norm": {0.0, 0.33, 0.66, 1.0},
	}
	if err := s.SaveRun(rec, profiles); err != nil {
		t.Fatalf("save: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("SaveRun left the ID empty")
	}
	if rec.CreatedAt == 0 {
		t.Fatal("SaveRun left the timestamp empty")
	}

	got, err := s.GetRun(rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.QAxis != rec.QAxis || got.Preset != rec.Preset {
		t.Errorf("got %+v, want %+v", got, rec)
	}

	q, err := s.Profile(rec.ID, "q")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(q) != 4 || q[3] != 3.8 {
		t.Errorf("profile q = %v", q)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)

	for i, ts := range []int64{100, 300, 200} {
		rec := &RunRecord{CreatedAt: ts, Preset: "fast", Slices: i}
		if err := s.SaveRun(rec, nil); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].CreatedAt > runs[i-1].CreatedAt {
			t.Errorf("runs not newest first: %v", runs)
		}
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetRun("no-such-run"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestProfileNotFound(t *testing.T) {
	s := openTestStore(t)
	rec := &RunRecord{Preset: "fast"}
	if err := s.SaveRun(rec, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Profile(rec.ID, "q"); err == nil {
		t.Error("expected error for missing profile")
	}
}
