package wind

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter indicates a physical parameter outside its valid range.
var ErrInvalidParameter = errors.New("wind: invalid parameter")

// Physical constants in SI units. Defaults describe the Sun; the molar mass
// is the coronal mean molecular weight (0.6) times the molar mass of
// hydrogen.
const (
	GravitationalConstant = 6.674e-11 // m^3 kg^-1 s^-2
	UniversalGasConstant  = 8.314     // J K^-1 mol^-1
	SolarMass             = 1.989e30  // kg
	SolarRadius           = 6.957e8   // m
	SolarCoronaTemp       = 1.5e6     // K
	SolarPhotosphereTemp  = 5772      // K
	CoronalMolarMass      = 0.6 * 1.008e-3 // kg/mol
)

// Parameters holds the physical configuration of one stellar model.
// Immutable for a run; pass by value.
type Parameters struct {
	G           float64 // gravitational constant
	Mass        float64 // stellar mass (kg)
	Temperature float64 // coronal temperature (K)
	MolarMass   float64 // mean molecular weight (kg/mol)
	GasConstant float64 // universal gas constant
	Radius      float64 // stellar radius (m), the inner integration bound
}

// SunParameters returns Sun-like defaults with a coronal temperature.
func SunParameters() Parameters {
	return Parameters{
		G:           GravitationalConstant,
		Mass:        SolarMass,
		Temperature: SolarCoronaTemp,
		MolarMass:   CoronalMolarMass,
		GasConstant: UniversalGasConstant,
		Radius:      SolarRadius,
	}
}

// Validate rejects any non-positive parameter before integration begins.
func (p Parameters) Validate() error {
	checks := []struct {
		name string
		val  float64
	}{
		{"G", p.G},
		{"mass", p.Mass},
		{"temperature", p.Temperature},
		{"molar mass", p.MolarMass},
		{"gas constant", p.GasConstant},
		{"radius", p.Radius},
	}
	for _, c := range checks {
		if c.val <= 0 || math.IsNaN(c.val) || math.IsInf(c.val, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidParameter, c.name, c.val)
		}
	}
	return nil
}

// Model caches the derived sonic quantities for one parameter set.
type Model struct {
	Params Parameters

	a  float64 // isothermal sound speed
	rc float64 // critical radius
}

// NewModel validates params and precomputes the sound speed and critical
// radius.
func NewModel(params Parameters) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	a := math.Sqrt(params.GasConstant * params.Temperature / params.MolarMass)
	rc := params.G * params.Mass / (2 * a * a)

	return &Model{Params: params, a: a, rc: rc}, nil
}

// SoundSpeed returns the isothermal sound speed a = sqrt(R·T/μ) in m/s.
func (m *Model) SoundSpeed() float64 { return m.a }

// CriticalRadius returns r_c = GM/2a² in m.
func (m *Model) CriticalRadius() float64 { return m.rc }

// Derivative evaluates dv/dr away from the critical point. Exactly at
// (r_c, a) the expression is 0/0; use CriticalSlope there instead. A
// vanishing denominator yields ±Inf, which the integration driver treats
// as branch termination.
func (m *Model) Derivative(r, v float64) float64 {
	num := v * (2*m.a*m.a/r - m.Params.G*m.Params.Mass/(r*r))
	den := v*v - m.a*m.a
	return num / den
}

// CriticalSlope returns the magnitude a/r_c of the L'Hôpital limit of
// dv/dr at the critical point. The accelerating transonic branch takes
// +a/r_c, the decelerating one −a/r_c.
func (m *Model) CriticalSlope() float64 {
	return m.a / m.rc
}

// Normalize maps a sample to sonic units (r/r_c, v/a). Presentation only:
// integration always runs in SI.
func (m *Model) Normalize(p Point) Point {
	return Point{R: p.R / m.rc, V: p.V / m.a}
}

// Denormalize is the inverse of Normalize.
func (m *Model) Denormalize(p Point) Point {
	return Point{R: p.R * m.rc, V: p.V * m.a}
}
