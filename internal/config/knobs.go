package config

import (
	"fmt"
	"sort"
)

// knobs are the scalar settings that sweeps and scenarios may vary.
var knobs = map[string]func(c *Config) *float64{
	"heart_rate":          func(c *Config) *float64 { return &c.HeartRate },
	"stressed_volume":     func(c *Config) *float64 { return &c.StressedVolume },
	"svr":                 func(c *Config) *float64 { return &c.Resistances.SystemicArterial },
	"aortic_valve":        func(c *Config) *float64 { return &c.Resistances.AorticValve },
	"arterial_compliance": func(c *Config) *float64 { return &c.Capacitances.SystemicArterial },
	"lv_ees":              func(c *Config) *float64 { return &c.LeftVentricle.Ees },
	"lv_a":                func(c *Config) *float64 { return &c.LeftVentricle.A },
	"rv_a":                func(c *Config) *float64 { return &c.RightVentricle.A },
}

// Set assigns one named knob.
func (c *Config) Set(name string, v float64) error {
	fn, ok := knobs[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s (available: %v)", name, Knobs())
	}
	*fn(c) = v
	return nil
}

// Get reads one named knob.
func (c *Config) Get(name string) (float64, error) {
	fn, ok := knobs[name]
	if !ok {
		return 0, fmt.Errorf("unknown parameter: %s (available: %v)", name, Knobs())
	}
	return *fn(c), nil
}

// Knobs lists the settable parameter names.
func Knobs() []string {
	names := make([]string, 0, len(knobs))
	for name := range knobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
