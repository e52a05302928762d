package integrate

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadSpec indicates an integration spec that cannot be run.
var ErrBadSpec = errors.New("integrate: invalid spec")

// Func is the right-hand side of a scalar ODE dy/dx = f(x, y).
type Func func(x, y float64) float64

// Spec describes one integration sweep. It is consumed once and not
// retained by the driver.
type Spec struct {
	X0        float64
	Y0        float64
	H         float64 // unsigned step size
	Steps     int
	Direction int // +1 grows x, -1 shrinks x
}

func (s Spec) validate() error {
	if s.H <= 0 || math.IsNaN(s.H) || math.IsInf(s.H, 0) {
		return fmt.Errorf("%w: step size %v", ErrBadSpec, s.H)
	}
	if s.Steps <= 0 {
		return fmt.Errorf("%w: step count %d", ErrBadSpec, s.Steps)
	}
	if s.Direction != 1 && s.Direction != -1 {
		return fmt.Errorf("%w: direction %d", ErrBadSpec, s.Direction)
	}
	return nil
}

// Trajectory is an ordered sequence of (x, y) samples. Truncated is set
// when the sweep stopped before its nominal step count because the ODE
// produced a non-finite value.
type Trajectory struct {
	Xs        []float64
	Ys        []float64
	Truncated bool
}

// Len returns the number of samples.
func (t Trajectory) Len() int { return len(t.Xs) }

// Reverse flips the sample order in place, so an inward sweep can be
// stitched in increasing-x order.
func (t Trajectory) Reverse() {
	for i, j := 0, len(t.Xs)-1; i < j; i, j = i+1, j-1 {
		t.Xs[i], t.Xs[j] = t.Xs[j], t.Xs[i]
		t.Ys[i], t.Ys[j] = t.Ys[j], t.Ys[i]
	}
}

// Stepper advances a scalar ODE by one signed step h.
type Stepper interface {
	Step(f Func, x, y, h float64) float64
}

// RK4 is the classical explicit fourth-order Runge-Kutta stepper.
type RK4 struct{}

func NewRK4() *RK4 { return &RK4{} }

func (*RK4) Step(f Func, x, y, h float64) float64 {
	k1 := f(x, y)
	k2 := f(x+0.5*h, y+0.5*h*k1)
	k3 := f(x+0.5*h, y+0.5*h*k2)
	k4 := f(x+h, y+h*k3)
	return y + h/6.0*(k1+2*k2+2*k3+k4)
}

// Integrate walks spec.Steps steps of size spec.H in spec.Direction and
// returns the sampled trajectory, spec.Steps+1 points long when the sweep
// completes. If the stepper produces a non-finite value the partial
// trajectory is returned with Truncated set; blow-up never raises.
func Integrate(st Stepper, f Func, spec Spec) (Trajectory, error) {
	if err := spec.validate(); err != nil {
		return Trajectory{}, err
	}

	h := spec.H * float64(spec.Direction)
	traj := Trajectory{
		Xs: make([]float64, 0, spec.Steps+1),
		Ys: make([]float64, 0, spec.Steps+1),
	}
	traj.Xs = append(traj.Xs, spec.X0)
	traj.Ys = append(traj.Ys, spec.Y0)

	x, y := spec.X0, spec.Y0
	for i := 0; i < spec.Steps; i++ {
		next := st.Step(f, x, y, h)
		if math.IsNaN(next) || math.IsInf(next, 0) {
			traj.Truncated = true
			break
		}
		x += h
		y = next
		traj.Xs = append(traj.Xs, x)
		traj.Ys = append(traj.Ys, y)
	}

	return traj, nil
}
