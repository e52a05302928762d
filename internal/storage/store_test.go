package storage

import (
	"math"
	"testing"

	"github.com/indigodrigo/rk4-wind-solution/internal/wind"
)

func testModel(t *testing.T) *wind.Model {
	t.Helper()
	m, err := wind.NewModel(wind.SunParameters())
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	return m
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	m := testModel(t)
	opts := wind.DefaultOptions()
	opts.OuterRadius = 5 * m.CriticalRadius()

	sols := []wind.Solution{
		{Branch: wind.TransonicWind, Points: []wind.Point{
			{R: 1e9, V: 5e4}, {R: 2e9, V: 1.2e5}, {R: 4e9, V: 2.1e5},
		}},
		{Branch: wind.SubsonicBreezeLow, Points: []wind.Point{
			{R: 1e9, V: 3e4}, {R: 4e9, V: 2e4},
		}, Truncated: true},
	}

	runID, err := st.Save(m, opts, sols)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("id mismatch: %s vs %s", meta.ID, runID)
	}
	if meta.CriticalRadius != m.CriticalRadius() {
		t.Errorf("critical radius not persisted")
	}
	if len(meta.Branches) != 2 {
		t.Fatalf("expected 2 branch entries, got %d", len(meta.Branches))
	}
	if meta.Branches[0].Samples != 3 || meta.Branches[1].Truncated != true {
		t.Error("branch metadata wrong")
	}

	loaded, err := st.LoadSolutions(runID)
	if err != nil {
		t.Fatalf("load solutions: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 solutions, got %d", len(loaded))
	}
	if loaded[0].Branch != wind.TransonicWind || loaded[1].Branch != wind.SubsonicBreezeLow {
		t.Error("branch kinds lost")
	}
	if !loaded[1].Truncated {
		t.Error("truncation flag lost")
	}
	for i, p := range loaded[0].Points {
		if math.Abs(p.R-sols[0].Points[i].R) > 1e-3 {
			t.Errorf("point %d radius drifted: %v vs %v", i, p.R, sols[0].Points[i].R)
		}
		if relErr(p.V, sols[0].Points[i].V) > 1e-9 {
			t.Errorf("point %d velocity drifted: %v vs %v", i, p.V, sols[0].Points[i].V)
		}
	}
}

func relErr(a, b float64) float64 {
	if b == 0 {
		return math.Abs(a)
	}
	return math.Abs(a-b) / math.Abs(b)
}

func TestListEmpty(t *testing.T) {
	st := New(t.TempDir() + "/nonexistent")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("wind_0"); err == nil {
		t.Error("expected error for unknown run")
	}
}
