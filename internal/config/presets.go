package config

import "sort"

var Presets = map[string]*Config{
	// Matches the short reference run used by the regression tests.
	"reference": {
		Dt: 0.01, Steps: 1000, SampleEvery: 10,
	},
	// The classical long benchmark: a million steps at dt=0.01.
	"benchmark": {
		Dt: 0.01, Steps: 1_000_000, SampleEvery: 10_000,
	},
	// Coarse step for quick visual runs; expect visible energy drift.
	"coarse": {
		Dt: 0.1, Steps: 200, SampleEvery: 1,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
