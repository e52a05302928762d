package wind

import (
	"fmt"
	"math"
	"sync"

	"github.com/indigodrigo/rk4-wind-solution/internal/integrate"
)

// Options are the numerical knobs of the classifier.
//
// Epsilon is the relative offset of the transonic seed points from the
// critical point. It trades two floating-point failure modes against each
// other: too small and the cancellation in v² − a² dominates the first
// derivative evaluations; too large and the straight-line seed visibly
// departs from the true curve near r_c. Values around 1e-6..1e-4 of r_c
// behave well for solar-like parameters.
type Options struct {
	Epsilon     float64 // relative seed offset from (r_c, a)
	SonicTol    float64 // relative half-width of the slope-substitution window
	Steps       int     // steps per half-run
	OuterRadius float64 // outer integration bound (m); 0 means 5·r_c
	Stepper     integrate.Stepper
}

// DefaultOptions mirrors the original solver: 1e-6 seed offset, 50000 steps
// per half-run, outer bound at five critical radii.
func DefaultOptions() Options {
	return Options{
		Epsilon:  1e-6,
		SonicTol: 1e-8,
		Steps:    50000,
	}
}

// Classifier drives one RK4 half-run pair per solution branch.
type Classifier struct {
	model *Model
	opts  Options
}

// NewClassifier validates opts against the model geometry.
func NewClassifier(m *Model, opts Options) (*Classifier, error) {
	if opts.Stepper == nil {
		opts.Stepper = integrate.NewRK4()
	}
	if opts.OuterRadius == 0 {
		opts.OuterRadius = 5 * m.CriticalRadius()
	}
	if opts.Epsilon <= 0 || opts.Epsilon >= 1 {
		return nil, fmt.Errorf("%w: epsilon = %v", ErrInvalidParameter, opts.Epsilon)
	}
	if opts.SonicTol < 0 {
		return nil, fmt.Errorf("%w: sonic tolerance = %v", ErrInvalidParameter, opts.SonicTol)
	}
	if opts.Steps <= 0 {
		return nil, fmt.Errorf("%w: steps = %d", ErrInvalidParameter, opts.Steps)
	}
	if m.Params.Radius >= m.CriticalRadius() {
		return nil, fmt.Errorf("%w: stellar radius %.3e not below critical radius %.3e",
			ErrInvalidParameter, m.Params.Radius, m.CriticalRadius())
	}
	if opts.OuterRadius <= m.CriticalRadius() {
		return nil, fmt.Errorf("%w: outer radius %.3e not beyond critical radius %.3e",
			ErrInvalidParameter, opts.OuterRadius, m.CriticalRadius())
	}
	return &Classifier{model: m, opts: opts}, nil
}

// seed holds the per-branch starting conditions. Transonic branches start
// displaced from (r_c, a) along the signed critical slope; the others start
// exactly at r_c on one side of v = a and never approach the singularity.
type seed struct {
	rIn, vIn   float64 // inward half-run start
	rOut, vOut float64 // outward half-run start
	slopeSign  int     // 0: never substitute the critical slope
}

func (c *Classifier) seedFor(b BranchKind) seed {
	a := c.model.SoundSpeed()
	rc := c.model.CriticalRadius()
	eps := c.opts.Epsilon

	switch b {
	case TransonicWind:
		return seed{
			rIn: rc * (1 - eps), vIn: a * (1 - eps),
			rOut: rc * (1 + eps), vOut: a * (1 + eps),
			slopeSign: 1,
		}
	case TransonicAccretion:
		return seed{
			rIn: rc * (1 - eps), vIn: a * (1 + eps),
			rOut: rc * (1 + eps), vOut: a * (1 - eps),
			slopeSign: -1,
		}
	case SubsonicBreezeHigh:
		return seed{rIn: rc, vIn: 0.75 * a, rOut: rc, vOut: 0.75 * a}
	case SubsonicBreezeLow:
		return seed{rIn: rc, vIn: 0.4 * a, rOut: rc, vOut: 0.4 * a}
	case SupersonicLow:
		return seed{rIn: rc, vIn: 1.25 * a, rOut: rc, vOut: 1.25 * a}
	default: // SupersonicHigh
		return seed{rIn: rc, vIn: 1.6 * a, rOut: rc, vOut: 1.6 * a}
	}
}

// rhs wraps the model derivative, substituting the signed analytic slope
// whenever a sample lands inside the indeterminate neighborhood of the
// critical point.
func (c *Classifier) rhs(slopeSign int) integrate.Func {
	m := c.model
	tol := c.opts.SonicTol
	a, rc := m.SoundSpeed(), m.CriticalRadius()

	return func(r, v float64) float64 {
		if slopeSign != 0 && math.Abs(r-rc) <= tol*rc && math.Abs(v-a) <= tol*a {
			return float64(slopeSign) * m.CriticalSlope()
		}
		return m.Derivative(r, v)
	}
}

// SolveBranch integrates one branch: inward to the stellar surface, outward
// to the configured outer radius, stitched in increasing-r order with the
// inward seed sample dropped so the curve is continuous.
func (c *Classifier) SolveBranch(b BranchKind) (Solution, error) {
	s := c.seedFor(b)
	f := c.rhs(s.slopeSign)
	rc := c.model.CriticalRadius()

	inward, err := integrate.Integrate(c.opts.Stepper, f, integrate.Spec{
		X0:        s.rIn,
		Y0:        s.vIn,
		H:         (s.rIn - c.model.Params.Radius) / float64(c.opts.Steps),
		Steps:     c.opts.Steps,
		Direction: -1,
	})
	if err != nil {
		return Solution{}, fmt.Errorf("branch %s inward from r=%.4e: %w", b.Slug(), s.rIn/rc, err)
	}

	outward, err := integrate.Integrate(c.opts.Stepper, f, integrate.Spec{
		X0:        s.rOut,
		Y0:        s.vOut,
		H:         (c.opts.OuterRadius - s.rOut) / float64(c.opts.Steps),
		Steps:     c.opts.Steps,
		Direction: 1,
	})
	if err != nil {
		return Solution{}, fmt.Errorf("branch %s outward from r=%.4e: %w", b.Slug(), s.rOut/rc, err)
	}

	inward.Reverse()

	points := make([]Point, 0, inward.Len()+outward.Len()-1)
	for i := 0; i < inward.Len()-1; i++ {
		points = append(points, Point{R: inward.Xs[i], V: inward.Ys[i]})
	}
	for i := 0; i < outward.Len(); i++ {
		points = append(points, Point{R: outward.Xs[i], V: outward.Ys[i]})
	}

	return Solution{
		Branch:    b,
		Points:    points,
		Truncated: inward.Truncated || outward.Truncated,
	}, nil
}

// Solve computes all six branches. The runs share no mutable state and are
// executed concurrently; results come back in canonical branch order.
func (c *Classifier) Solve() ([]Solution, error) {
	sols := make([]Solution, numBranches)
	errs := make([]error, numBranches)

	var wg sync.WaitGroup
	for i, b := range Branches {
		wg.Add(1)
		go func(idx int, branch BranchKind) {
			defer wg.Done()
			sols[idx], errs[idx] = c.SolveBranch(branch)
		}(i, b)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sols, nil
}
