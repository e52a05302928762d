package config

import (
	"sort"

	"github.com/indigodrigo/rk4-wind-solution/internal/wind"
)

// Presets are ready-made stellar models. Temperatures are coronal unless
// noted; "sun-photosphere" reproduces the cold-wind toy case where the
// critical radius sits thousands of stellar radii out.
var Presets = map[string]*Config{
	"sun-corona": Default(),
	"sun-photosphere": {
		Star: StarConfig{
			Mass:        wind.SolarMass,
			Temperature: wind.SolarPhotosphereTemp,
			Mu:          0.6,
			Radius:      wind.SolarRadius,
		},
		Numerics: Default().Numerics,
	},
	"hot-corona": {
		Star: StarConfig{
			Mass:        wind.SolarMass,
			Temperature: 3e6,
			Mu:          0.6,
			Radius:      wind.SolarRadius,
		},
		Numerics: Default().Numerics,
	},
	"red-dwarf": {
		Star: StarConfig{
			Mass:        0.3 * wind.SolarMass,
			Temperature: 1e6,
			Mu:          0.6,
			Radius:      0.35 * wind.SolarRadius,
		},
		Numerics: Default().Numerics,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
