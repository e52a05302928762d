package integrate

// Euler is the first-order explicit stepper. It is far less accurate than
// RK4 at the same step size and exists for accuracy comparisons.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (*Euler) Step(f Func, x, y, h float64) float64 {
	return y + h*f(x, y)
}
