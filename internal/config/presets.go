package config

import "sort"

// Presets are named variations of the reference circulation.
var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"hypertension": func() *Config {
		c := DefaultConfig()
		c.Name = "hypertension"
		c.Resistances.SystemicArterial = 4.0
		c.Capacitances.SystemicArterial = 0.25
		return c
	},
	"heart_failure": func() *Config {
		c := DefaultConfig()
		c.Name = "heart_failure"
		c.LeftVentricle.Ees = 3.0
		c.StressedVolume = 320
		return c
	},
	"tachycardia": func() *Config {
		c := DefaultConfig()
		c.Name = "tachycardia"
		c.HeartRate = 140
		return c
	},
	"stiff_ventricle": func() *Config {
		c := DefaultConfig()
		c.Name = "stiff_ventricle"
		c.LeftVentricle.A = 0.14
		return c
	},
	"quick": func() *Config {
		c := DefaultConfig()
		c.Name = "quick"
		c.Solver.Samples = 1000
		return c
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
