package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/indigodrigo/rk4-wind-solution/internal/wind"
)

const (
	DefaultEpsilon     = 1e-6
	DefaultSonicTol    = 1e-8
	DefaultSteps       = 50000
	DefaultOuterFactor = 5.0
)

type Config struct {
	Star     StarConfig     `yaml:"star"`
	Numerics NumericsConfig `yaml:"numerics"`
	Output   OutputConfig   `yaml:"output"`
}

type StarConfig struct {
	Mass        float64 `yaml:"mass"`        // kg
	Temperature float64 `yaml:"temperature"` // K
	Mu          float64 `yaml:"mu"`          // mean molecular weight, in units of the molar mass of hydrogen
	Radius      float64 `yaml:"radius"`      // m
}

type NumericsConfig struct {
	Epsilon     float64 `yaml:"epsilon"`      // transonic seed offset, fraction of r_c
	SonicTol    float64 `yaml:"sonic_tol"`    // slope-substitution window, relative
	Steps       int     `yaml:"steps"`        // steps per half-run
	OuterFactor float64 `yaml:"outer_factor"` // outer bound in units of r_c
}

type OutputConfig struct {
	Normalized bool `yaml:"normalized"` // (r/r_c, v/a) instead of km, km/s
}

func Default() *Config {
	return &Config{
		Star: StarConfig{
			Mass:        wind.SolarMass,
			Temperature: wind.SolarCoronaTemp,
			Mu:          0.6,
			Radius:      wind.SolarRadius,
		},
		Numerics: NumericsConfig{
			Epsilon:     DefaultEpsilon,
			SonicTol:    DefaultSonicTol,
			Steps:       DefaultSteps,
			OuterFactor: DefaultOuterFactor,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Parameters converts the star section to SI physical parameters. Mu is
// stored dimensionless and scaled by the molar mass of hydrogen here.
func (c *Config) Parameters() wind.Parameters {
	return wind.Parameters{
		G:           wind.GravitationalConstant,
		Mass:        c.Star.Mass,
		Temperature: c.Star.Temperature,
		MolarMass:   c.Star.Mu * 1.008e-3,
		GasConstant: wind.UniversalGasConstant,
		Radius:      c.Star.Radius,
	}
}

// Options converts the numerics section to classifier options for a model
// with the given critical radius.
func (c *Config) Options(criticalRadius float64) wind.Options {
	return wind.Options{
		Epsilon:     c.Numerics.Epsilon,
		SonicTol:    c.Numerics.SonicTol,
		Steps:       c.Numerics.Steps,
		OuterRadius: c.Numerics.OuterFactor * criticalRadius,
	}
}
