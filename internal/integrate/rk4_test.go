package integrate

import (
	"errors"
	"math"
	"testing"
)

func expGrowth(x, y float64) float64 { return y }

func TestRK4MatchesExp(t *testing.T) {
	traj, err := Integrate(NewRK4(), expGrowth, Spec{X0: 0, Y0: 1, H: 0.01, Steps: 100, Direction: 1})
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	if traj.Len() != 101 {
		t.Fatalf("expected 101 samples, got %d", traj.Len())
	}

	got := traj.Ys[traj.Len()-1]
	want := math.E
	if math.Abs(got-want) > 1e-8 {
		t.Errorf("y(1) = %.10f, want %.10f", got, want)
	}
}

func TestRK4ConvergenceOrder(t *testing.T) {
	// Halving h should shrink the global error by roughly 2^4.
	errAt := func(h float64) float64 {
		steps := int(1.0/h + 0.5)
		traj, err := Integrate(NewRK4(), expGrowth, Spec{X0: 0, Y0: 1, H: h, Steps: steps, Direction: 1})
		if err != nil {
			t.Fatalf("integrate failed: %v", err)
		}
		return math.Abs(traj.Ys[traj.Len()-1] - math.E)
	}

	coarse := errAt(0.1)
	fine := errAt(0.05)

	ratio := coarse / fine
	if ratio < 10 || ratio > 25 {
		t.Errorf("error ratio %.2f, expected ~16 for fourth order", ratio)
	}
}

func TestBackwardIntegration(t *testing.T) {
	// Integrate dy/dx = y from x=1, y=e down to x=0; should recover 1.
	traj, err := Integrate(NewRK4(), expGrowth, Spec{X0: 1, Y0: math.E, H: 0.01, Steps: 100, Direction: -1})
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	lastX := traj.Xs[traj.Len()-1]
	lastY := traj.Ys[traj.Len()-1]
	if math.Abs(lastX) > 1e-9 {
		t.Errorf("final x = %v, want 0", lastX)
	}
	if math.Abs(lastY-1.0) > 1e-8 {
		t.Errorf("y(0) = %.10f, want 1", lastY)
	}
}

func TestTruncationOnNonFinite(t *testing.T) {
	// Blows up once x passes 0.5.
	f := func(x, y float64) float64 {
		if x > 0.5 {
			return math.Inf(1)
		}
		return y
	}

	traj, err := Integrate(NewRK4(), f, Spec{X0: 0, Y0: 1, H: 0.1, Steps: 100, Direction: 1})
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	if !traj.Truncated {
		t.Error("expected truncated trajectory")
	}
	if traj.Len() == 0 || traj.Len() > 7 {
		t.Errorf("unexpected sample count %d", traj.Len())
	}
	for _, y := range traj.Ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			t.Error("truncated trajectory contains non-finite sample")
		}
	}
}

func TestSpecValidation(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"zero step", Spec{H: 0, Steps: 10, Direction: 1}},
		{"negative step", Spec{H: -0.1, Steps: 10, Direction: 1}},
		{"zero count", Spec{H: 0.1, Steps: 0, Direction: 1}},
		{"bad direction", Spec{H: 0.1, Steps: 10, Direction: 0}},
	}

	for _, tt := range tests {
		_, err := Integrate(NewRK4(), expGrowth, tt.spec)
		if !errors.Is(err, ErrBadSpec) {
			t.Errorf("%s: expected ErrBadSpec, got %v", tt.name, err)
		}
	}
}

func TestDeterminism(t *testing.T) {
	spec := Spec{X0: 0, Y0: 1, H: 0.02, Steps: 50, Direction: 1}
	a, _ := Integrate(NewRK4(), expGrowth, spec)
	b, _ := Integrate(NewRK4(), expGrowth, spec)

	for i := range a.Ys {
		if a.Ys[i] != b.Ys[i] {
			t.Fatalf("sample %d differs between identical runs", i)
		}
	}
}

func TestEulerFirstOrder(t *testing.T) {
	traj, err := Integrate(NewEuler(), expGrowth, Spec{X0: 0, Y0: 1, H: 0.001, Steps: 1000, Direction: 1})
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	got := traj.Ys[traj.Len()-1]
	if math.Abs(got-math.E) > 0.01 {
		t.Errorf("euler y(1) = %.6f, too far from e", got)
	}

	rk4, _ := Integrate(NewRK4(), expGrowth, Spec{X0: 0, Y0: 1, H: 0.001, Steps: 1000, Direction: 1})
	if math.Abs(rk4.Ys[rk4.Len()-1]-math.E) > math.Abs(got-math.E) {
		t.Error("rk4 should be more accurate than euler at equal step size")
	}
}

func TestReverse(t *testing.T) {
	traj := Trajectory{Xs: []float64{3, 2, 1}, Ys: []float64{30, 20, 10}}
	traj.Reverse()

	if traj.Xs[0] != 1 || traj.Xs[2] != 3 || traj.Ys[0] != 10 {
		t.Errorf("reverse produced %v / %v", traj.Xs, traj.Ys)
	}
}
