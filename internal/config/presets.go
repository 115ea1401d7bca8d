package config

import "sort"

// Presets holds Sternheimer density-effect parameter sets for water.
var Presets = map[string]DensityConfig{
	"liquid": {
		A: 0.09116, X0: 0.24, X1: 2.8004, C: 3.5017, M: 3.4773,
	},
	"vapor": {
		A: 0.08101, X0: 1.7952, X1: 4.3437, C: 10.5962, M: 3.5901,
	},
}

func GetPreset(name string) *DensityConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
