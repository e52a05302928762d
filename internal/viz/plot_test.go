package viz

import (
	"strings"
	"testing"

	"github.com/indigodrigo/rk4-wind-solution/internal/wind"
)

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)

	if !c.IsSet(0, 0) || !c.IsSet(7, 7) {
		t.Error("pixels not set")
	}
	if c.IsSet(1, 0) {
		t.Error("unexpected pixel")
	}

	// Out-of-bounds writes are ignored.
	c.Set(-1, 0)
	c.Set(100, 100)

	out := c.String()
	if len(strings.Split(out, "\n")) != 2 {
		t.Errorf("expected 2 rows, got %q", out)
	}

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("clear did not reset canvas")
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39)

	if !c.IsSet(0, 0) || !c.IsSet(19, 39) {
		t.Error("line endpoints not set")
	}
}

func TestPlotSolutions(t *testing.T) {
	m, err := wind.NewModel(wind.SunParameters())
	if err != nil {
		t.Fatalf("model: %v", err)
	}

	rc := m.CriticalRadius()
	a := m.SoundSpeed()
	sols := []wind.Solution{
		{Branch: wind.TransonicWind, Points: []wind.Point{
			{R: 0.5 * rc, V: 0.3 * a},
			{R: rc, V: a},
			{R: 2 * rc, V: 1.8 * a},
			{R: 100 * rc, V: a}, // outside the window, skipped
		}},
	}

	out := PlotSolutions(m, sols, true, 40, 12)
	if !strings.Contains(out, "r/R_c") {
		t.Error("normalized axis caption missing")
	}
	if len(out) == 0 {
		t.Fatal("empty plot")
	}

	raw := PlotSolutions(m, sols, false, 40, 12)
	if !strings.Contains(raw, "km/s") {
		t.Error("raw axis caption missing")
	}

	legend := Legend(sols)
	if !strings.Contains(legend, "transonic") {
		t.Errorf("legend missing branch label: %q", legend)
	}
}
