package export

import (
	"fmt"
	"strings"

	"github.com/indigodrigo/rk4-wind-solution/internal/viz"
	"github.com/indigodrigo/rk4-wind-solution/internal/wind"
)

// branchColors mirrors the classic presentation: wind blue, accretion-type
// red, breezes green/cyan, supersonic curves magenta/yellow.
var branchColors = map[wind.BranchKind]string{
	wind.TransonicWind:      "#4169e1",
	wind.TransonicAccretion: "#e14141",
	wind.SubsonicBreezeHigh: "#2e8b57",
	wind.SubsonicBreezeLow:  "#20b2aa",
	wind.SupersonicLow:      "#ba55d3",
	wind.SupersonicHigh:     "#d4a017",
}

// SolutionsToSVG renders every branch as a polyline over the sonic-unit
// window (0..5 r/r_c, 0..4 v/a), with a marker at the sonic point.
func SolutionsToSVG(m *wind.Model, sols []wind.Solution, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	toPixel := func(p wind.Point) (float64, float64, bool) {
		n := m.Normalize(p)
		if n.R < 0 || n.R > viz.RMaxNorm || n.V < 0 || n.V > viz.VMaxNorm {
			return 0, 0, false
		}
		x := n.R / viz.RMaxNorm * float64(width)
		y := float64(height) - n.V/viz.VMaxNorm*float64(height)
		return x, y, true
	}

	for _, sol := range sols {
		color, ok := branchColors[sol.Branch]
		if !ok {
			color = "#888888"
		}

		clamped := wind.ClampNegative(sol)
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, color))

		pen := false
		for _, p := range clamped.Points {
			x, y, in := toPixel(p)
			if !in {
				pen = false
				continue
			}
			if !pen {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
				pen = true
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	// Sonic point.
	sx := 1.0 / viz.RMaxNorm * float64(width)
	sy := float64(height) - 1.0/viz.VMaxNorm*float64(height)
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="#000000"/>
<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="12">sonic point</text>
`, sx, sy, sx+8, sy-6))

	sb.WriteString("</svg>\n")
	return sb.String()
}
