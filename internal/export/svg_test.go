package export

import (
	"strings"
	"testing"

	"github.com/indigodrigo/rk4-wind-solution/internal/wind"
)

func TestSolutionsToSVG(t *testing.T) {
	m, err := wind.NewModel(wind.SunParameters())
	if err != nil {
		t.Fatalf("model: %v", err)
	}

	rc := m.CriticalRadius()
	a := m.SoundSpeed()
	sols := []wind.Solution{
		{Branch: wind.TransonicWind, Points: []wind.Point{
			{R: 0.5 * rc, V: 0.2 * a}, {R: rc, V: a}, {R: 3 * rc, V: 2 * a},
		}},
		{Branch: wind.SupersonicHigh, Points: []wind.Point{
			{R: 0.5 * rc, V: 2.5 * a}, {R: 3 * rc, V: 2.2 * a},
		}},
	}

	svg := SolutionsToSVG(m, sols, 800, 600)

	if !strings.HasPrefix(svg, `<?xml`) || !strings.Contains(svg, "</svg>") {
		t.Error("not a well-formed svg document")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected 2 paths, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, branchColors[wind.TransonicWind]) {
		t.Error("wind branch color missing")
	}
	if !strings.Contains(svg, "sonic point") {
		t.Error("sonic point label missing")
	}
}
