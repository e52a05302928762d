package wind

import "math"

// MonotonicV reports whether v never decreases (+1), never increases (-1),
// or neither (0) along the solution's increasing-r order.
func MonotonicV(sol Solution) int {
	rising, falling := false, false
	for i := 1; i < len(sol.Points); i++ {
		d := sol.Points[i].V - sol.Points[i-1].V
		if d > 0 {
			rising = true
		} else if d < 0 {
			falling = true
		}
	}
	switch {
	case rising && !falling:
		return 1
	case falling && !rising:
		return -1
	default:
		return 0
	}
}

// CrossesSonic reports whether the curve crosses v = a anywhere outside the
// relative tolerance window around r_c. A non-transonic branch crossing the
// sound speed away from the critical point indicates a defective run.
func CrossesSonic(sol Solution, a, rc, tol float64) bool {
	for i := 1; i < len(sol.Points); i++ {
		p0, p1 := sol.Points[i-1], sol.Points[i]
		if (p0.V-a)*(p1.V-a) >= 0 {
			continue
		}
		if math.Abs(p0.R-rc) > tol*rc && math.Abs(p1.R-rc) > tol*rc {
			return true
		}
	}
	return false
}

// Nearest returns the sample closest in radius to r. ok is false for an
// empty solution.
func Nearest(sol Solution, r float64) (Point, bool) {
	if len(sol.Points) == 0 {
		return Point{}, false
	}
	best := sol.Points[0]
	for _, p := range sol.Points[1:] {
		if math.Abs(p.R-r) < math.Abs(best.R-r) {
			best = p
		}
	}
	return best, true
}

// ClampNegative returns a copy with sub-zero velocities rounded up to zero.
// The fixed-step scheme can undershoot slightly where a breeze decays
// toward v = 0; clamping is applied on output, never during integration.
func ClampNegative(sol Solution) Solution {
	out := Solution{Branch: sol.Branch, Truncated: sol.Truncated}
	out.Points = make([]Point, len(sol.Points))
	copy(out.Points, sol.Points)
	for i := range out.Points {
		if out.Points[i].V < 0 {
			out.Points[i].V = 0
		}
	}
	return out
}

// VelocityRange returns the minimum and maximum wind speed of the curve.
func VelocityRange(sol Solution) (min, max float64) {
	if len(sol.Points) == 0 {
		return 0, 0
	}
	min, max = sol.Points[0].V, sol.Points[0].V
	for _, p := range sol.Points[1:] {
		if p.V < min {
			min = p.V
		}
		if p.V > max {
			max = p.V
		}
	}
	return min, max
}
