package viz

import (
	"fmt"
	"strings"

	"github.com/indigodrigo/rk4-wind-solution/internal/wind"
)

// Plot window in sonic units, matching the classic presentation of the
// Parker solution topology.
const (
	RMaxNorm = 5.0 // r/r_c
	VMaxNorm = 4.0 // v/a
)

// PlotSolutions renders all solution curves onto one braille canvas, with
// the sonic point marked. width and height are in character cells.
// Axis labels follow the unit mode: sonic units or km / km/s.
func PlotSolutions(m *wind.Model, sols []wind.Solution, normalized bool, width, height int) string {
	canvas := NewCanvas(width, height)
	subW := width * 2
	subH := height * 4

	for _, sol := range sols {
		clamped := wind.ClampNegative(sol)
		for _, p := range clamped.Points {
			n := m.Normalize(p)
			if n.R < 0 || n.R > RMaxNorm || n.V < 0 || n.V > VMaxNorm {
				continue
			}
			x := int(n.R / RMaxNorm * float64(subW-1))
			y := subH - 1 - int(n.V/VMaxNorm*float64(subH-1))
			canvas.Set(x, y)
		}
	}

	// Sonic point marker at (1, 1) in sonic units.
	sx := int(1.0 / RMaxNorm * float64(subW-1))
	sy := subH - 1 - int(1.0/VMaxNorm*float64(subH-1))
	canvas.DrawLine(sx-2, sy, sx+2, sy)
	canvas.DrawLine(sx, sy-2, sx, sy+2)

	var sb strings.Builder
	sb.WriteString(canvas.String())
	sb.WriteByte('\n')

	if normalized {
		sb.WriteString(fmt.Sprintf("r/R_c: 0 .. %.0f   v/a: 0 .. %.0f   + sonic point (1, 1)\n",
			RMaxNorm, VMaxNorm))
	} else {
		rc := m.CriticalRadius() / 1000.0 // km
		a := m.SoundSpeed() / 1000.0      // km/s
		sb.WriteString(fmt.Sprintf("r: 0 .. %.3e km   v: 0 .. %.3e km/s   + sonic point (%.3e, %.3e)\n",
			RMaxNorm*rc, VMaxNorm*a, rc, a))
	}

	return sb.String()
}

// Legend lists the plotted branches in canonical order.
func Legend(sols []wind.Solution) string {
	var sb strings.Builder
	for _, sol := range sols {
		mark := " "
		if sol.Truncated {
			mark = "!"
		}
		sb.WriteString(fmt.Sprintf("  %s %-36s %d samples\n", mark, sol.Branch, len(sol.Points)))
	}
	return sb.String()
}
